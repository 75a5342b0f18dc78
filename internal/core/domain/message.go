package domain

import "strings"

// Urgency is the free-form urgency string submitted with a student message.
type Urgency string

// UrgencyCrisis is the urgency value that puts a message on the crisis monitor.
const UrgencyCrisis Urgency = "I’m in Crisis"

// asciiCrisis is UrgencyCrisis typed with a plain apostrophe, which some
// clients submit instead of the typographic one.
const asciiCrisis Urgency = "I'm in Crisis"

// IsCrisis reports whether the urgency denotes an active crisis.
func (u Urgency) IsCrisis() bool {
	return u == UrgencyCrisis || u == asciiCrisis
}

// Message is a student-submitted request routed to a counselor.
type Message struct {
	ID        string  `json:"id,omitempty"`
	StudentID string  `json:"studentId,omitempty"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Grade     string  `json:"grade"`
	Counselor string  `json:"counselor"`
	Urgency   Urgency `json:"urgency"`
}

// FullName joins first and last name the way student records store names.
func (m Message) FullName() string {
	return m.FirstName + " " + m.LastName
}

// Key identifies the message for review-status tracking. Without an upstream
// ID it falls back to first|last|counselor.
func (m Message) Key() string {
	if m.ID != "" {
		return m.ID
	}
	return strings.Join([]string{m.FirstName, m.LastName, m.Counselor}, "|")
}

// ConcernsStudent reports whether the message was written by the student.
// Stable IDs are compared when both sides carry one; otherwise the full name
// is matched against the student name.
func (m Message) ConcernsStudent(s Student) bool {
	if m.StudentID != "" && s.ID != "" {
		return m.StudentID == s.ID
	}
	return m.FullName() == s.Name
}

// CrisisStatus is the triage state of a crisis message.
type CrisisStatus string

const (
	CrisisUnseen    CrisisStatus = "Unseen"
	CrisisReviewed  CrisisStatus = "Reviewed"
	CrisisEscalated CrisisStatus = "Escalated"
)
