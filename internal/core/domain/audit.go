package domain

import "time"

// AuditTimeLayout renders audit timestamps for display.
const AuditTimeLayout = "1/2/2006, 3:04:05 PM"

// AuditRecord is a single append-only entry describing an admin action.
type AuditRecord struct {
	ID     string    `json:"id" bson:"record_id"`
	At     time.Time `json:"at" bson:"at"`
	Time   string    `json:"time" bson:"time"`
	User   string    `json:"user" bson:"user"`
	Role   string    `json:"role" bson:"role"`
	Action string    `json:"action" bson:"action"`
}

// Actor identifies who performed an admin action.
type Actor struct {
	User string
	Role string
}
