package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolcare/counselor-dashboard/internal/api/metrics"
	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
	"github.com/schoolcare/counselor-dashboard/internal/core/ports"
)

// Alert texts shown to the admin.
const (
	AlertMissingFields         = "Enter all fields"
	AlertNetwork               = "Network error"
	AlertAddCounselorFailed    = "Failed to add counselor"
	AlertRemoveCounselorFailed = "Failed to remove counselor"
	AlertAddStudentFailed      = "Failed to add student"
	AlertReviewFailed          = "Failed to update crisis status"
)

// completionTimeout bounds the audit write and reload that follow a
// successful upstream write.
const completionTimeout = 15 * time.Second

// MutationService runs admin actions: validate, write upstream, record an
// audit entry, then reload the dashboard.
type MutationService struct {
	sis       ports.SISClient
	dashboard ports.DashboardService
	audit     ports.AuditRecorder
	reviews   ports.ReviewStore
	guard     ports.MutationGuard
	actor     domain.Actor
	log       zerolog.Logger
}

// NewMutationService wires a MutationService. guard may be nil, in which
// case duplicate submissions are not detected.
func NewMutationService(
	sis ports.SISClient,
	dashboard ports.DashboardService,
	audit ports.AuditRecorder,
	reviews ports.ReviewStore,
	guard ports.MutationGuard,
	actor domain.Actor,
	log zerolog.Logger,
) *MutationService {
	return &MutationService{
		sis:       sis,
		dashboard: dashboard,
		audit:     audit,
		reviews:   reviews,
		guard:     guard,
		actor:     actor,
		log:       log,
	}
}

// AddCounselor creates a counselor whose username is the email local part.
func (s *MutationService) AddCounselor(ctx context.Context, in ports.AddCounselorInput) (*ports.Acknowledgment, error) {
	const action = "add_counselor"
	if blank(in.Name, in.Email) {
		return nil, s.invalid(action)
	}

	username := domain.UsernameFromEmail(in.Email)
	return s.guarded(ctx, action, username, func() (*ports.Acknowledgment, error) {
		err := s.sis.CreateCounselor(ctx, domain.Counselor{Name: in.Name, Email: in.Email, Username: username})
		if err != nil {
			return nil, s.failed(action, AlertAddCounselorFailed, err)
		}
		return s.complete(ctx, action, "Added counselor "+in.Name, true), nil
	})
}

// RemoveCounselor deletes a counselor. Nothing is sent upstream unless the
// request is confirmed.
func (s *MutationService) RemoveCounselor(ctx context.Context, in ports.RemoveCounselorInput) (*ports.Acknowledgment, error) {
	const action = "remove_counselor"
	if blank(in.Username) {
		return nil, s.invalid(action)
	}
	if !in.Confirmed {
		metrics.MutationsTotal.WithLabelValues(action, "unconfirmed").Inc()
		return nil, fmt.Errorf("remove counselor %s: %w", in.Username, domain.ErrConfirmationRequired)
	}

	return s.guarded(ctx, action, in.Username, func() (*ports.Acknowledgment, error) {
		if err := s.sis.DeleteCounselor(ctx, in.Username); err != nil {
			return nil, s.failed(action, AlertRemoveCounselorFailed, err)
		}
		return s.complete(ctx, action, "Removed counselor "+in.Username, true), nil
	})
}

// AddStudent creates a student assigned to a counselor.
func (s *MutationService) AddStudent(ctx context.Context, in ports.AddStudentInput) (*ports.Acknowledgment, error) {
	const action = "add_student"
	if blank(in.Name, in.Grade, in.Counselor) {
		return nil, s.invalid(action)
	}

	return s.guarded(ctx, action, in.Name+"|"+in.Counselor, func() (*ports.Acknowledgment, error) {
		err := s.sis.CreateStudent(ctx, domain.Student{Name: in.Name, Grade: in.Grade, Counselor: in.Counselor})
		if err != nil {
			return nil, s.failed(action, AlertAddStudentFailed, err)
		}
		return s.complete(ctx, action, fmt.Sprintf("Added student %s to %s", in.Name, in.Counselor), false), nil
	})
}

// ManageCounselor is a placeholder: it acknowledges and changes nothing.
func (s *MutationService) ManageCounselor(_ context.Context, username string) (*ports.Acknowledgment, error) {
	return s.inert("manage_counselor", "Manage "+username), nil
}

// AssignStudent is a placeholder: it acknowledges and changes nothing.
func (s *MutationService) AssignStudent(_ context.Context, name string) (*ports.Acknowledgment, error) {
	return s.inert("assign_student", "Assign "+name), nil
}

// ArchiveStudent is a placeholder: it acknowledges and changes nothing.
func (s *MutationService) ArchiveStudent(_ context.Context, name string) (*ports.Acknowledgment, error) {
	return s.inert("archive_student", "Archive "+name), nil
}

// MarkReviewed stores the Reviewed status for a crisis message.
func (s *MutationService) MarkReviewed(ctx context.Context, messageKey string) (*ports.Acknowledgment, error) {
	return s.triage(ctx, "mark_reviewed", messageKey, domain.CrisisReviewed,
		func(m domain.Message) (string, string) {
			return "Reviewed " + m.FullName(), fmt.Sprintf("Marked crisis %s reviewed", m.FullName())
		})
}

// Escalate stores the Escalated status for a crisis message.
func (s *MutationService) Escalate(ctx context.Context, messageKey string) (*ports.Acknowledgment, error) {
	return s.triage(ctx, "escalate", messageKey, domain.CrisisEscalated,
		func(m domain.Message) (string, string) {
			return "Escalate " + m.FullName(), "Escalated crisis " + m.FullName()
		})
}

func (s *MutationService) triage(
	ctx context.Context,
	action, key string,
	status domain.CrisisStatus,
	texts func(domain.Message) (ack, audit string),
) (*ports.Acknowledgment, error) {
	if blank(key) {
		return nil, s.invalid(action)
	}

	msg, ok := findCrisis(s.dashboard.Collections(), key)
	if !ok {
		metrics.MutationsTotal.WithLabelValues(action, "not_found").Inc()
		return nil, fmt.Errorf("%s %q: %w", action, key, domain.ErrCrisisNotFound)
	}

	return s.guarded(ctx, action, key, func() (*ports.Acknowledgment, error) {
		if err := s.reviews.SetStatus(ctx, key, status); err != nil {
			metrics.MutationsTotal.WithLabelValues(action, "store_error").Inc()
			return nil, &domain.ActionError{Alert: AlertReviewFailed, Err: err}
		}
		ackText, auditText := texts(msg)
		ack := s.complete(ctx, action, auditText, false)
		ack.Message = ackText
		return ack, nil
	})
}

func findCrisis(c domain.Collections, key string) (domain.Message, bool) {
	for _, m := range c.Messages {
		if m.Urgency.IsCrisis() && m.Key() == key {
			return m, true
		}
	}
	return domain.Message{}, false
}

// complete runs the success path: audit, reload, and for counselor changes a
// dropdown refresh. Failures here are logged and do not undo the mutation.
// The upstream change has already happened, so this runs detached from the
// caller's cancellation.
func (s *MutationService) complete(ctx context.Context, action, auditText string, counselorsChanged bool) *ports.Acknowledgment {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), completionTimeout)
	defer cancel()

	metrics.MutationsTotal.WithLabelValues(action, "ok").Inc()
	ack := &ports.Acknowledgment{Message: auditText, Persistent: true}

	if _, err := s.audit.Record(ctx, s.actor.User, s.actor.Role, auditText); err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("failed to record audit entry")
	} else {
		ack.Audited = true
	}

	if _, err := s.dashboard.Reload(ctx, ports.TriggerMutation); err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("reload after mutation failed")
	}
	ack.Reloaded = true

	if counselorsChanged {
		if _, err := s.dashboard.RefreshCounselorOptions(ctx); err != nil {
			s.log.Warn().Err(err).Str("action", action).Msg("counselor options refresh failed")
		}
	}
	return ack
}

func (s *MutationService) inert(action, message string) *ports.Acknowledgment {
	metrics.MutationsTotal.WithLabelValues(action, "ok").Inc()
	s.log.Debug().Str("action", action).Msg(message)
	return &ports.Acknowledgment{Message: message}
}

func (s *MutationService) invalid(action string) error {
	metrics.MutationsTotal.WithLabelValues(action, "invalid").Inc()
	return &domain.ActionError{Alert: AlertMissingFields, Err: domain.ErrMissingFields}
}

// failed maps an upstream error to the alert the admin sees. Rejections get
// the action-specific text; everything else is a network error.
func (s *MutationService) failed(action, rejectedAlert string, err error) error {
	if errors.Is(err, domain.ErrApplicationFailure) {
		metrics.MutationsTotal.WithLabelValues(action, "rejected").Inc()
		s.log.Warn().Err(err).Str("action", action).Msg("mutation rejected upstream")
		return &domain.ActionError{Alert: rejectedAlert, Err: err}
	}
	metrics.MutationsTotal.WithLabelValues(action, "network_error").Inc()
	s.log.Error().Err(err).Str("action", action).Msg("mutation failed")
	return &domain.ActionError{Alert: AlertNetwork, Err: err}
}

// guarded holds the mutation guard for action+target while fn runs. A guard
// backend error does not block the mutation.
func (s *MutationService) guarded(ctx context.Context, action, target string, fn func() (*ports.Acknowledgment, error)) (*ports.Acknowledgment, error) {
	if s.guard == nil {
		return fn()
	}

	key := action + ":" + target
	ok, err := s.guard.Acquire(ctx, key)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Str("key", key).Msg("mutation guard unavailable, proceeding")
		return fn()
	case !ok:
		metrics.MutationsTotal.WithLabelValues(action, "duplicate").Inc()
		return nil, fmt.Errorf("%s: %w", key, domain.ErrDuplicateRequest)
	}

	defer func() {
		if err := s.guard.Release(context.WithoutCancel(ctx), key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to release mutation guard")
		}
	}()
	return fn()
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
