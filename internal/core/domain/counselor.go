package domain

import "strings"

// Counselor is a staff member students are assigned to. Username is the
// unique key and is derived from the local part of the email address.
type Counselor struct {
	Name     string `json:"name" bson:"name"`
	Email    string `json:"email" bson:"email"`
	Username string `json:"username" bson:"username"`

	// Synthesized is true when the counselor was inferred from a message
	// reference instead of being returned by the counselor endpoint.
	Synthesized bool `json:"-" bson:"-"`
}

// placeholderEmailDomain is appended to synthesized counselor usernames.
const placeholderEmailDomain = "@example.com"

// UsernameFromEmail returns the local part of an email address.
// An address without "@" is returned unchanged.
func UsernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// SynthesizeCounselor builds a counselor for a username that only appears in
// messages. It carries a placeholder email and is never persisted upstream.
func SynthesizeCounselor(username string) Counselor {
	return Counselor{
		Name:        username,
		Email:       username + placeholderEmailDomain,
		Username:    username,
		Synthesized: true,
	}
}
