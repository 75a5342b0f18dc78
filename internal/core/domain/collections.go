package domain

// Collections is the merged result of one fetch cycle.
type Collections struct {
	Counselors []Counselor
	Students   []Student
	Messages   []Message
}

// EmptyCollections returns non-nil empty slices so callers can render them
// without nil checks.
func EmptyCollections() Collections {
	return Collections{
		Counselors: []Counselor{},
		Students:   []Student{},
		Messages:   []Message{},
	}
}

// CrisisMessages returns the messages whose urgency is the crisis value, in
// their original order.
func (c Collections) CrisisMessages() []Message {
	out := make([]Message, 0)
	for _, m := range c.Messages {
		if m.Urgency.IsCrisis() {
			out = append(out, m)
		}
	}
	return out
}
