package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
	"github.com/schoolcare/counselor-dashboard/internal/core/ports"
)

// MutationHandler handles the admin actions. Errors are returned to the
// central error handler, which maps them to the alert envelope.
type MutationHandler struct {
	service ports.MutationService
}

func NewMutationHandler(service ports.MutationService) *MutationHandler {
	return &MutationHandler{service: service}
}

// AddCounselor handles POST /api/admin/counselors.
//
// @Summary      Add a counselor
// @Description  The username is the local part of the email address.
// @Tags         counselors
// @Accept       json
// @Produce      json
// @Param        body  body      addCounselorRequest  true  "Counselor"
// @Success      201   {object}  ackResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/admin/counselors [post]
func (h *MutationHandler) AddCounselor(c echo.Context) error {
	var req addCounselorRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ack, err := h.service.AddCounselor(c.Request().Context(), ports.AddCounselorInput{Name: req.Name, Email: req.Email})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toAckResponse(ack))
}

// RemoveCounselor handles DELETE /api/admin/counselors/:username.
//
// @Summary      Remove a counselor
// @Description  Requires confirm=true; without it nothing is sent upstream.
// @Tags         counselors
// @Produce      json
// @Param        username  path      string  true   "Counselor username"
// @Param        confirm   query     bool    false  "Confirmation"
// @Success      200       {object}  ackResponse
// @Failure      428       {object}  errorResponse
// @Failure      422       {object}  errorResponse
// @Failure      502       {object}  errorResponse
// @Router       /api/admin/counselors/{username} [delete]
func (h *MutationHandler) RemoveCounselor(c echo.Context) error {
	var req removeCounselorRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	req.Username = pathParam(c, "username")
	ack, err := h.service.RemoveCounselor(c.Request().Context(), ports.RemoveCounselorInput{
		Username:  req.Username,
		Confirmed: req.Confirm,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAckResponse(ack))
}

// ManageCounselor handles POST /api/admin/counselors/:username/manage.
//
// @Summary      Manage a counselor (acknowledgment only)
// @Tags         counselors
// @Produce      json
// @Param        username  path      string  true  "Counselor username"
// @Success      200       {object}  ackResponse
// @Router       /api/admin/counselors/{username}/manage [post]
func (h *MutationHandler) ManageCounselor(c echo.Context) error {
	return h.ack(c, h.service.ManageCounselor, pathParam(c, "username"))
}

// AddStudent handles POST /api/admin/students.
//
// @Summary      Add a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        body  body      addStudentRequest  true  "Student"
// @Success      201   {object}  ackResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/admin/students [post]
func (h *MutationHandler) AddStudent(c echo.Context) error {
	var req addStudentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ack, err := h.service.AddStudent(c.Request().Context(), ports.AddStudentInput{
		Name:      req.Name,
		Grade:     req.Grade,
		Counselor: req.Counselor,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toAckResponse(ack))
}

// AssignStudent handles POST /api/admin/students/:name/assign.
//
// @Summary      Assign a student (acknowledgment only)
// @Tags         students
// @Produce      json
// @Param        name  path      string  true  "Student name"
// @Success      200   {object}  ackResponse
// @Router       /api/admin/students/{name}/assign [post]
func (h *MutationHandler) AssignStudent(c echo.Context) error {
	return h.ack(c, h.service.AssignStudent, pathParam(c, "name"))
}

// ArchiveStudent handles POST /api/admin/students/:name/archive.
//
// @Summary      Archive a student (acknowledgment only)
// @Tags         students
// @Produce      json
// @Param        name  path      string  true  "Student name"
// @Success      200   {object}  ackResponse
// @Router       /api/admin/students/{name}/archive [post]
func (h *MutationHandler) ArchiveStudent(c echo.Context) error {
	return h.ack(c, h.service.ArchiveStudent, pathParam(c, "name"))
}

// MarkReviewed handles POST /api/admin/crises/:key/review.
//
// @Summary      Mark a crisis reviewed
// @Tags         crises
// @Produce      json
// @Param        key  path      string  true  "Crisis message key"
// @Success      200  {object}  ackResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/crises/{key}/review [post]
func (h *MutationHandler) MarkReviewed(c echo.Context) error {
	return h.ack(c, h.service.MarkReviewed, pathParam(c, "key"))
}

// Escalate handles POST /api/admin/crises/:key/escalate.
//
// @Summary      Escalate a crisis
// @Tags         crises
// @Produce      json
// @Param        key  path      string  true  "Crisis message key"
// @Success      200  {object}  ackResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/crises/{key}/escalate [post]
func (h *MutationHandler) Escalate(c echo.Context) error {
	return h.ack(c, h.service.Escalate, pathParam(c, "key"))
}

func (h *MutationHandler) ack(
	c echo.Context,
	fn func(ctx context.Context, target string) (*ports.Acknowledgment, error),
	target string,
) error {
	ack, err := fn(c.Request().Context(), target)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAckResponse(ack))
}

// bind decodes and validates req. Malformed bodies are reported like missing
// fields since the admin form can only produce one of the two.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return &domain.ActionError{Alert: "Enter all fields", Err: domain.ErrMissingFields}
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

// pathParam returns the unescaped path parameter. Echo leaves it escaped when
// the request path carried an unusual encoding.
func pathParam(c echo.Context, name string) string {
	raw := c.Param(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
