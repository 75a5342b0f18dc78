package ports

import "context"

// AddCounselorInput carries the add-counselor form.
type AddCounselorInput struct {
	Name  string
	Email string
}

// AddStudentInput carries the add-student form.
type AddStudentInput struct {
	Name      string
	Grade     string
	Counselor string
}

// RemoveCounselorInput carries the remove-counselor request. Confirmed must
// be true or nothing is sent upstream.
type RemoveCounselorInput struct {
	Username  string
	Confirmed bool
}

// Acknowledgment is returned by every action, including the inert ones.
type Acknowledgment struct {
	Message    string `json:"message"`
	Audited    bool   `json:"audited"`
	Reloaded   bool   `json:"reloaded"`
	Persistent bool   `json:"persistent"`
}

// MutationService performs admin actions against the SIS.
type MutationService interface {
	AddCounselor(ctx context.Context, in AddCounselorInput) (*Acknowledgment, error)
	RemoveCounselor(ctx context.Context, in RemoveCounselorInput) (*Acknowledgment, error)
	AddStudent(ctx context.Context, in AddStudentInput) (*Acknowledgment, error)

	ManageCounselor(ctx context.Context, username string) (*Acknowledgment, error)
	AssignStudent(ctx context.Context, name string) (*Acknowledgment, error)
	ArchiveStudent(ctx context.Context, name string) (*Acknowledgment, error)

	MarkReviewed(ctx context.Context, messageKey string) (*Acknowledgment, error)
	Escalate(ctx context.Context, messageKey string) (*Acknowledgment, error)
}
