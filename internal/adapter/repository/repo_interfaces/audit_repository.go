package repo_interfaces

import (
	"context"

	"github.com/api-sage/core-banking/internal/domain"
)

type AuditLogRepository interface {
	Create(ctx context.Context, entry domain.AuditLog) (domain.AuditLog, error)

	// Query returns entries matching the filter, newest first.
	Query(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error)
}
