package domain

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionRead   AuditAction = "read"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionLogin  AuditAction = "login"
	AuditActionLogout AuditAction = "logout"
)

// AuditLog is an append-only record of one mutating action. Entries are never
// updated or deleted after insert. UserID is nil for system actions.
type AuditLog struct {
	ID         string
	Action     AuditAction
	EntityType string
	EntityID   *string
	UserID     *string
	Data       map[string]any
	IPAddress  *string
	CreatedAt  time.Time
}

type AuditLogFilter struct {
	EntityType *string
	EntityID   *string
	UserID     *string
	Action     *AuditAction
	StartDate  *time.Time
	EndDate    *time.Time
	Offset     int
	Limit      int
}
