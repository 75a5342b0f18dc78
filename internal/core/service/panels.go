package service

import (
	"fmt"
	"html"

	"github.com/microcosm-cc/bluemonday"

	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
	"github.com/schoolcare/counselor-dashboard/internal/core/ports"
)

// Action names rendered on each panel.
const (
	ActionManage       = "manage"
	ActionRemove       = "remove"
	ActionAssign       = "assign"
	ActionArchive      = "archive"
	ActionMarkReviewed = "mark-reviewed"
	ActionEscalate     = "escalate"
)

// crisisBadge is the label shown next to students with an active crisis.
const crisisBadge = "Red"

// strict strips all markup from upstream strings before they reach a view.
var strict = bluemonday.StrictPolicy()

// clean removes tags and leaves plain text. Escaping is left to the
// presentation layer so JSON consumers do not see HTML entities.
func clean(s string) string {
	return html.UnescapeString(strict.Sanitize(s))
}

// BuildPanels renders every panel from the given inputs. It is a pure
// function: calling it twice with the same inputs yields equal output.
func BuildPanels(c domain.Collections, statuses map[string]domain.CrisisStatus, audit []domain.AuditRecord) ports.Panels {
	crises := c.CrisisMessages()
	return ports.Panels{
		Summary: ports.Summary{
			TotalCounselors: len(c.Counselors),
			TotalStudents:   len(c.Students),
			ActiveCrises:    len(crises),
			CrisisLabel:     fmt.Sprintf("%d Crises", len(crises)),
		},
		Counselors: CounselorCards(c.Counselors, c.Students, c.Messages),
		Students:   StudentRows(c.Students, c.Messages),
		Crises:     CrisisCards(crises, statuses),
		Audit:      AuditRows(audit),
	}
}

// CounselorCards builds one card per counselor with its assigned-student and
// active-crisis counts.
func CounselorCards(counselors []domain.Counselor, students []domain.Student, messages []domain.Message) []ports.CounselorCard {
	assigned := make(map[string]int, len(counselors))
	for _, s := range students {
		assigned[s.Counselor]++
	}
	active := make(map[string]int, len(counselors))
	for _, m := range messages {
		if m.Urgency.IsCrisis() {
			active[m.Counselor]++
		}
	}

	cards := make([]ports.CounselorCard, 0, len(counselors))
	for _, c := range counselors {
		cards = append(cards, ports.CounselorCard{
			Name:             clean(c.Name),
			Username:         clean(c.Username),
			AssignedStudents: assigned[c.Username],
			ActiveCrises:     active[c.Username],
			Synthesized:      c.Synthesized,
			Actions:          []string{ActionManage, ActionRemove},
		})
	}
	return cards
}

// StudentRows builds one row per student. A student gets the crisis badge
// when any crisis message concerns them.
func StudentRows(students []domain.Student, messages []domain.Message) []ports.StudentRow {
	rows := make([]ports.StudentRow, 0, len(students))
	for _, s := range students {
		badge := ""
		for _, m := range messages {
			if m.Urgency.IsCrisis() && m.ConcernsStudent(s) {
				badge = crisisBadge
				break
			}
		}
		rows = append(rows, ports.StudentRow{
			Key:         s.Key(),
			Name:        clean(s.Name),
			Grade:       clean(s.Grade),
			Counselor:   clean(s.Counselor),
			CrisisBadge: badge,
			Actions:     []string{ActionAssign, ActionArchive},
		})
	}
	return rows
}

// CrisisCards builds one card per crisis message. Messages without a stored
// status are Unseen.
func CrisisCards(crises []domain.Message, statuses map[string]domain.CrisisStatus) []ports.CrisisCard {
	cards := make([]ports.CrisisCard, 0, len(crises))
	for _, m := range crises {
		status, ok := statuses[m.Key()]
		if !ok {
			status = domain.CrisisUnseen
		}
		cards = append(cards, ports.CrisisCard{
			Key:       m.Key(),
			Title:     clean(fmt.Sprintf("%s %s (Grade %s)", m.FirstName, m.LastName, m.Grade)),
			FirstName: clean(m.FirstName),
			LastName:  clean(m.LastName),
			Counselor: clean(m.Counselor),
			Status:    string(status),
			Actions:   []string{ActionMarkReviewed, ActionEscalate},
		})
	}
	return cards
}

// AuditRows renders the audit log oldest first.
func AuditRows(records []domain.AuditRecord) []ports.AuditRow {
	rows := make([]ports.AuditRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, ports.AuditRow{
			Time:   clean(r.Time),
			User:   clean(r.User),
			Role:   clean(r.Role),
			Action: clean(r.Action),
		})
	}
	return rows
}
