package handler

import "github.com/schoolcare/counselor-dashboard/internal/core/ports"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type addCounselorRequest struct {
	Name  string `json:"name"  form:"name"  validate:"required"`
	Email string `json:"email" form:"email" validate:"required"`
}

type addStudentRequest struct {
	Name      string `json:"name"      form:"name"      validate:"required"`
	Grade     string `json:"grade"     form:"grade"     validate:"required"`
	Counselor string `json:"counselor" form:"counselor" validate:"required"`
}

type removeCounselorRequest struct {
	Username string `param:"username" validate:"required"`
	Confirm  bool   `query:"confirm"`
}

type ackResponse struct {
	Message    string `json:"message"`
	Audited    bool   `json:"audited"`
	Reloaded   bool   `json:"reloaded"`
	Persistent bool   `json:"persistent"`
}

func toAckResponse(a *ports.Acknowledgment) ackResponse {
	return ackResponse{
		Message:    a.Message,
		Audited:    a.Audited,
		Reloaded:   a.Reloaded,
		Persistent: a.Persistent,
	}
}
