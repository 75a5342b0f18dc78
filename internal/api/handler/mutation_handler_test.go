package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
	"github.com/schoolcare/counselor-dashboard/internal/core/ports"
)

func TestMutationHandler_AddCounselor_Success(t *testing.T) {
	muts := &stubMutations{
		addCounselorFn: func(ctx context.Context, in ports.AddCounselorInput) (*ports.Acknowledgment, error) {
			if in.Name != "Jane Doe" || in.Email != "jdoe@school.org" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.Acknowledgment{Message: "Added counselor Jane Doe", Audited: true, Reloaded: true, Persistent: true}, nil
		},
	}
	e := newTestEcho(&stubDashboard{}, muts)

	rec := serve(e, http.MethodPost, "/api/admin/counselors", strings.NewReader(`{"name":"Jane Doe","email":"jdoe@school.org"}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	resp := decode(t, rec)
	if resp["message"] != "Added counselor Jane Doe" || resp["audited"] != true || resp["reloaded"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestMutationHandler_AddCounselor_MissingFields(t *testing.T) {
	muts := &stubMutations{
		addCounselorFn: func(ctx context.Context, in ports.AddCounselorInput) (*ports.Acknowledgment, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	e := newTestEcho(&stubDashboard{}, muts)

	rec := serve(e, http.MethodPost, "/api/admin/counselors", strings.NewReader(`{"name":"Jane"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decode(t, rec); resp["error"] != "Enter all fields" {
		t.Fatalf("unexpected error: %+v", resp)
	}
}

func TestMutationHandler_AddCounselor_InvalidPayload(t *testing.T) {
	muts := &stubMutations{
		addCounselorFn: func(ctx context.Context, in ports.AddCounselorInput) (*ports.Acknowledgment, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	e := newTestEcho(&stubDashboard{}, muts)

	rec := serve(e, http.MethodPost, "/api/admin/counselors", strings.NewReader("not-json"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMutationHandler_AddCounselor_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantAlert string
	}{
		{
			name:      "rejected",
			err:       &domain.ActionError{Alert: "Failed to add counselor", Err: domain.ErrApplicationFailure},
			wantCode:  http.StatusUnprocessableEntity,
			wantAlert: "Failed to add counselor",
		},
		{
			name:      "network",
			err:       &domain.ActionError{Alert: "Network error", Err: fmt.Errorf("post: %w", domain.ErrNetworkFailure)},
			wantCode:  http.StatusBadGateway,
			wantAlert: "Network error",
		},
		{
			name:      "duplicate",
			err:       fmt.Errorf("add_counselor:jdoe: %w", domain.ErrDuplicateRequest),
			wantCode:  http.StatusConflict,
			wantAlert: "request already in progress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			muts := &stubMutations{
				addCounselorFn: func(ctx context.Context, in ports.AddCounselorInput) (*ports.Acknowledgment, error) {
					return nil, tt.err
				},
			}
			e := newTestEcho(&stubDashboard{}, muts)

			rec := serve(e, http.MethodPost, "/api/admin/counselors", strings.NewReader(`{"name":"Jane","email":"jdoe@school.org"}`))

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if resp := decode(t, rec); resp["error"] != tt.wantAlert {
				t.Fatalf("expected alert %q, got %+v", tt.wantAlert, resp)
			}
		})
	}
}

func TestMutationHandler_RemoveCounselor_PassesConfirmation(t *testing.T) {
	var got ports.RemoveCounselorInput
	muts := &stubMutations{
		removeCounselorFn: func(ctx context.Context, in ports.RemoveCounselorInput) (*ports.Acknowledgment, error) {
			got = in
			if !in.Confirmed {
				return nil, domain.ErrConfirmationRequired
			}
			return &ports.Acknowledgment{Message: "Removed counselor jdoe"}, nil
		},
	}
	e := newTestEcho(&stubDashboard{}, muts)

	rec := serve(e, http.MethodDelete, "/api/admin/counselors/jdoe", nil)
	if rec.Code != http.StatusPreconditionRequired {
		t.Fatalf("expected 428 without confirm, got %d", rec.Code)
	}

	rec = serve(e, http.MethodDelete, "/api/admin/counselors/jdoe?confirm=true", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with confirm, got %d (%s)", rec.Code, rec.Body.String())
	}
	if got.Username != "jdoe" || !got.Confirmed {
		t.Fatalf("unexpected input: %+v", got)
	}
}

func TestMutationHandler_RemoveCounselor_UnescapesUsername(t *testing.T) {
	var got ports.RemoveCounselorInput
	muts := &stubMutations{
		removeCounselorFn: func(ctx context.Context, in ports.RemoveCounselorInput) (*ports.Acknowledgment, error) {
			got = in
			return &ports.Acknowledgment{Message: "Removed counselor " + in.Username}, nil
		},
	}
	e := newTestEcho(&stubDashboard{}, muts)

	rec := serve(e, http.MethodDelete, "/api/admin/counselors/j%2Fdoe?confirm=true", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if got.Username != "j/doe" {
		t.Fatalf("expected unescaped username, got %q", got.Username)
	}
}

func TestMutationHandler_AddStudent(t *testing.T) {
	muts := &stubMutations{
		addStudentFn: func(ctx context.Context, in ports.AddStudentInput) (*ports.Acknowledgment, error) {
			if in.Name != "Jo Lee" || in.Grade != "10" || in.Counselor != "jdoe" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.Acknowledgment{Message: "Added student Jo Lee to jdoe"}, nil
		},
	}
	e := newTestEcho(&stubDashboard{}, muts)

	rec := serve(e, http.MethodPost, "/api/admin/students", strings.NewReader(`{"name":"Jo Lee","grade":"10","counselor":"jdoe"}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = serve(e, http.MethodPost, "/api/admin/students", strings.NewReader(`{"name":"Jo Lee","counselor":"jdoe"}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing grade, got %d", rec.Code)
	}
}

func TestMutationHandler_TargetActions(t *testing.T) {
	var calls []string
	muts := &stubMutations{
		targetFn: func(action, target string) (*ports.Acknowledgment, error) {
			calls = append(calls, action+":"+target)
			if target == "missing" {
				return nil, fmt.Errorf("%s: %w", action, domain.ErrCrisisNotFound)
			}
			return &ports.Acknowledgment{Message: action + " " + target}, nil
		},
	}
	e := newTestEcho(&stubDashboard{}, muts)

	for _, path := range []string{
		"/api/admin/counselors/jdoe/manage",
		"/api/admin/students/Jo%20Lee/assign",
		"/api/admin/students/Jo%20Lee/archive",
		"/api/admin/crises/m-1/review",
		"/api/admin/crises/m-1/escalate",
	} {
		if rec := serve(e, http.MethodPost, path, nil); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d (%s)", path, rec.Code, rec.Body.String())
		}
	}

	want := []string{"manage:jdoe", "assign:Jo Lee", "archive:Jo Lee", "review:m-1", "escalate:m-1"}
	if fmt.Sprint(calls) != fmt.Sprint(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}

	if rec := serve(e, http.MethodPost, "/api/admin/crises/missing/review", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown crisis, got %d", rec.Code)
	}
}
