package models

import "time"

// AuditQueryRequest is built by the controller from query parameters; there
// is no JSON body for audit reads.
type AuditQueryRequest struct {
	EntityType string
	EntityID   string
	UserID     string
	Action     string
	StartDate  *time.Time
	EndDate    *time.Time
	Offset     int
	Limit      int
}

type AuditLogResponse struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   *string        `json:"entityId,omitempty"`
	UserID     *string        `json:"userId,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	IPAddress  *string        `json:"ipAddress,omitempty"`
	CreatedAt  string         `json:"createdAt"`
}

type AuditLogListResponse struct {
	Entries []AuditLogResponse `json:"entries"`
	Offset  int                `json:"offset"`
	Limit   int                `json:"limit"`
}
