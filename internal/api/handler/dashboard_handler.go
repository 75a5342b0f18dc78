package handler

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolcare/counselor-dashboard/internal/core/ports"
	"github.com/schoolcare/counselor-dashboard/internal/infrastructure/export"
)

// DashboardHandler serves the dashboard page, its JSON form and exports.
type DashboardHandler struct {
	dashboard ports.DashboardService
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

type pageData struct {
	Snapshot ports.Snapshot
	Options  []ports.CounselorOption
}

// Page handles GET /.
func (h *DashboardHandler) Page(c echo.Context) error {
	return c.Render(http.StatusOK, dashboardTemplate, pageData{
		Snapshot: h.dashboard.Snapshot(),
		Options:  h.dashboard.CounselorOptions(),
	})
}

// Get handles GET /api/admin/dashboard.
//
// @Summary      Current dashboard snapshot
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  ports.Snapshot
// @Router       /api/admin/dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard.Snapshot())
}

// Reload handles POST /api/admin/reload. A failed fetch still answers 200:
// the snapshot carries fetch_failed and empty panels.
//
// @Summary      Reload the dashboard now
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  ports.Snapshot
// @Router       /api/admin/reload [post]
func (h *DashboardHandler) Reload(c echo.Context) error {
	snap, _ := h.dashboard.Reload(c.Request().Context(), ports.TriggerUser)
	return c.JSON(http.StatusOK, snap)
}

// CounselorOptions handles GET /api/admin/counselors/options.
//
// @Summary      Counselor dropdown options
// @Tags         counselors
// @Produce      json
// @Success      200  {array}  ports.CounselorOption
// @Router       /api/admin/counselors/options [get]
func (h *DashboardHandler) CounselorOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard.CounselorOptions())
}

// Audit handles GET /api/admin/audit.
//
// @Summary      Audit log, oldest first
// @Tags         audit
// @Produce      json
// @Success      200  {array}  ports.AuditRow
// @Router       /api/admin/audit [get]
func (h *DashboardHandler) Audit(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboard.Snapshot().Panels.Audit)
}

// ExportAudit handles GET /api/admin/audit/export.xlsx.
//
// @Summary      Download the audit log as XLSX
// @Tags         audit
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /api/admin/audit/export.xlsx [get]
func (h *DashboardHandler) ExportAudit(c echo.Context) error {
	var buf bytes.Buffer
	if err := export.WriteAudit(&buf, h.dashboard.Snapshot().Panels.Audit); err != nil {
		return err
	}
	return attachment(c, "audit.xlsx", buf.Bytes())
}

// ExportStudents handles GET /api/admin/students/export.xlsx.
//
// @Summary      Download the student roster as XLSX
// @Tags         students
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /api/admin/students/export.xlsx [get]
func (h *DashboardHandler) ExportStudents(c echo.Context) error {
	var buf bytes.Buffer
	if err := export.WriteStudents(&buf, h.dashboard.Snapshot().Panels.Students); err != nil {
		return err
	}
	return attachment(c, "students.xlsx", buf.Bytes())
}

func attachment(c echo.Context, name string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, export.ContentType, body)
}
