package domain

// Student is a learner assigned to a counselor by username.
//
// ID is optional. Older SIS deployments only return the name, in which case
// Key falls back to it and two students with the same name collapse into one
// identity for crisis matching.
type Student struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Grade     string `json:"grade"`
	Counselor string `json:"counselor"`
}

// Key returns the identifier used to join the student against messages.
func (s Student) Key() string {
	if s.ID != "" {
		return s.ID
	}
	return s.Name
}
