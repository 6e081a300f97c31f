package service_interfaces

import (
	"context"

	"github.com/api-sage/core-banking/internal/adapter/http/models"
	"github.com/api-sage/core-banking/internal/commons"
	"github.com/api-sage/core-banking/internal/domain"
)

type AuditService interface {
	Record(ctx context.Context, action domain.AuditAction, entityType, entityID string, actor models.Actor, data map[string]any) error
	Query(ctx context.Context, req models.AuditQueryRequest) (commons.Response[models.AuditLogListResponse], error)
}
