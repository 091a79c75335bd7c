package domain

import "time"

// Actions recorded in the audit trail.
const (
	AuditLogin           = "login"
	AuditLogout          = "logout"
	AuditUserCreated     = "user_created"
	AuditUserUpdated     = "user_updated"
	AuditUserDeactivated = "user_deactivated"
	AuditUserReactivated = "user_reactivated"
)

// AuditEvent records a single authentication or administrative action.
// The trail is advisory: losing buffered events on crash is acceptable.
type AuditEvent struct {
	ID        string    `json:"id,omitempty"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	TargetID  int64     `json:"target_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
