package domain

import "testing"

func TestUrgency_IsCrisis(t *testing.T) {
	tests := []struct {
		urgency Urgency
		want    bool
	}{
		{"I’m in Crisis", true},
		{"I'm in Crisis", true},
		{"i'm in crisis", false},
		{"Other", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.urgency.IsCrisis(); got != tt.want {
			t.Errorf("Urgency(%q).IsCrisis() = %v, want %v", tt.urgency, got, tt.want)
		}
	}
}

func TestMessage_Key(t *testing.T) {
	m := Message{FirstName: "Jo", LastName: "Lee", Counselor: "a"}
	if got := m.Key(); got != "Jo|Lee|a" {
		t.Errorf("Key() = %q, want %q", got, "Jo|Lee|a")
	}

	m.ID = "m-1"
	if got := m.Key(); got != "m-1" {
		t.Errorf("Key() with ID = %q, want %q", got, "m-1")
	}
}

func TestMessage_ConcernsStudent(t *testing.T) {
	tests := []struct {
		name    string
		message Message
		student Student
		want    bool
	}{
		{"name match", Message{FirstName: "Jo", LastName: "Lee"}, Student{Name: "Jo Lee"}, true},
		{"name mismatch", Message{FirstName: "Jo", LastName: "Lee"}, Student{Name: "Jo  Lee"}, false},
		{"id match wins over name", Message{StudentID: "s1", FirstName: "X", LastName: "Y"}, Student{ID: "s1", Name: "Jo Lee"}, true},
		{"id mismatch with same name", Message{StudentID: "s2", FirstName: "Jo", LastName: "Lee"}, Student{ID: "s1", Name: "Jo Lee"}, false},
		{"id only on one side", Message{StudentID: "s1", FirstName: "Jo", LastName: "Lee"}, Student{Name: "Jo Lee"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.message.ConcernsStudent(tt.student); got != tt.want {
				t.Errorf("ConcernsStudent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUsernameFromEmail(t *testing.T) {
	tests := map[string]string{
		"jdoe@school.org": "jdoe",
		"a@b@c":           "a",
		"noat":            "noat",
		"":                "",
	}
	for in, want := range tests {
		if got := UsernameFromEmail(in); got != want {
			t.Errorf("UsernameFromEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSynthesizeCounselor(t *testing.T) {
	c := SynthesizeCounselor("jdoe")
	if c.Name != "jdoe" || c.Email != "jdoe@example.com" || c.Username != "jdoe" || !c.Synthesized {
		t.Errorf("SynthesizeCounselor() = %+v", c)
	}
}

func TestCollections_CrisisMessages(t *testing.T) {
	c := Collections{Messages: []Message{
		{FirstName: "A", Urgency: UrgencyCrisis},
		{FirstName: "B", Urgency: "Other"},
		{FirstName: "C", Urgency: "I'm in Crisis"},
	}}

	got := c.CrisisMessages()
	if len(got) != 2 || got[0].FirstName != "A" || got[1].FirstName != "C" {
		t.Errorf("CrisisMessages() = %+v", got)
	}
	if EmptyCollections().CrisisMessages() == nil {
		t.Error("CrisisMessages() on empty collections returned nil")
	}
}
