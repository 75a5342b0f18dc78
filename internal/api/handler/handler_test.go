package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
	"github.com/schoolcare/counselor-dashboard/internal/core/ports"
)

type stubDashboard struct {
	snapshot ports.Snapshot
	options  []ports.CounselorOption
	reloads  []ports.ReloadTrigger
}

func (s *stubDashboard) Reload(_ context.Context, t ports.ReloadTrigger) (ports.Snapshot, error) {
	s.reloads = append(s.reloads, t)
	s.snapshot.Sequence++
	s.snapshot.Trigger = t
	return s.snapshot, nil
}

func (s *stubDashboard) TryReload(ctx context.Context, t ports.ReloadTrigger) (ports.Snapshot, bool, error) {
	snap, err := s.Reload(ctx, t)
	return snap, true, err
}

func (s *stubDashboard) Snapshot() ports.Snapshot { return s.snapshot }

func (s *stubDashboard) RefreshCounselorOptions(context.Context) ([]ports.CounselorOption, error) {
	return s.options, nil
}

func (s *stubDashboard) CounselorOptions() []ports.CounselorOption { return s.options }

func (s *stubDashboard) Collections() domain.Collections { return domain.EmptyCollections() }

type stubMutations struct {
	addCounselorFn    func(ctx context.Context, in ports.AddCounselorInput) (*ports.Acknowledgment, error)
	removeCounselorFn func(ctx context.Context, in ports.RemoveCounselorInput) (*ports.Acknowledgment, error)
	addStudentFn      func(ctx context.Context, in ports.AddStudentInput) (*ports.Acknowledgment, error)
	targetFn          func(action, target string) (*ports.Acknowledgment, error)
}

func (s *stubMutations) AddCounselor(ctx context.Context, in ports.AddCounselorInput) (*ports.Acknowledgment, error) {
	return s.addCounselorFn(ctx, in)
}

func (s *stubMutations) RemoveCounselor(ctx context.Context, in ports.RemoveCounselorInput) (*ports.Acknowledgment, error) {
	return s.removeCounselorFn(ctx, in)
}

func (s *stubMutations) AddStudent(ctx context.Context, in ports.AddStudentInput) (*ports.Acknowledgment, error) {
	return s.addStudentFn(ctx, in)
}

func (s *stubMutations) ManageCounselor(_ context.Context, u string) (*ports.Acknowledgment, error) {
	return s.targetFn("manage", u)
}

func (s *stubMutations) AssignStudent(_ context.Context, n string) (*ports.Acknowledgment, error) {
	return s.targetFn("assign", n)
}

func (s *stubMutations) ArchiveStudent(_ context.Context, n string) (*ports.Acknowledgment, error) {
	return s.targetFn("archive", n)
}

func (s *stubMutations) MarkReviewed(_ context.Context, k string) (*ports.Acknowledgment, error) {
	return s.targetFn("review", k)
}

func (s *stubMutations) Escalate(_ context.Context, k string) (*ports.Acknowledgment, error) {
	return s.targetFn("escalate", k)
}

// newTestEcho registers the handlers the way the router does, with an error
// handler that uses ErrorStatus.
func newTestEcho(dash *stubDashboard, muts *stubMutations) *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.Renderer = NewRenderer()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if he, ok := err.(*echo.HTTPError); ok {
			_ = c.JSON(he.Code, errorResponse{Error: http.StatusText(he.Code)})
			return
		}
		if code, msg, ok := ErrorStatus(err); ok {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}
		_ = c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}

	dh := NewDashboardHandler(dash)
	mh := NewMutationHandler(muts)

	e.GET("/", dh.Page)
	e.GET("/api/admin/dashboard", dh.Get)
	e.POST("/api/admin/reload", dh.Reload)
	e.GET("/api/admin/counselors/options", dh.CounselorOptions)
	e.POST("/api/admin/counselors", mh.AddCounselor)
	e.DELETE("/api/admin/counselors/:username", mh.RemoveCounselor)
	e.POST("/api/admin/counselors/:username/manage", mh.ManageCounselor)
	e.POST("/api/admin/students", mh.AddStudent)
	e.POST("/api/admin/students/:name/assign", mh.AssignStudent)
	e.POST("/api/admin/students/:name/archive", mh.ArchiveStudent)
	e.GET("/api/admin/students/export.xlsx", dh.ExportStudents)
	e.POST("/api/admin/crises/:key/review", mh.MarkReviewed)
	e.POST("/api/admin/crises/:key/escalate", mh.Escalate)
	e.GET("/api/admin/audit", dh.Audit)
	e.GET("/api/admin/audit/export.xlsx", dh.ExportAudit)
	return e
}

func serve(e *echo.Echo, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, rec.Body.String())
	}
	return resp
}
