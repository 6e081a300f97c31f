package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/api-sage/core-banking/internal/adapter/http/models"
	"github.com/api-sage/core-banking/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking/internal/commons"
	"github.com/api-sage/core-banking/internal/domain"
	"github.com/api-sage/core-banking/internal/logger"
)

// AuditService records and queries the audit trail. Ledger and account
// mutations write their audit entries inside their own unit of work; this
// service covers standalone events (logins, reads) and the query surface.
type AuditService struct {
	uow repo_interfaces.UnitOfWork
}

func NewAuditService(uow repo_interfaces.UnitOfWork) *AuditService {
	return &AuditService{uow: uow}
}

func (s *AuditService) Record(ctx context.Context, action domain.AuditAction, entityType, entityID string, actor models.Actor, data map[string]any) error {
	err := s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		_, err := db.AuditLogs().Create(ctx, auditEntry(action, entityType, entityID, actor, data))
		return err
	})
	if err != nil {
		logger.Error("audit service record failed", err, logger.Fields{
			"action":     string(action),
			"entityType": entityType,
		})
	}
	return err
}

func (s *AuditService) Query(ctx context.Context, req models.AuditQueryRequest) (commons.Response[models.AuditLogListResponse], error) {
	filter, err := buildAuditFilter(req)
	if err != nil {
		return commons.ErrorResponse[models.AuditLogListResponse]("validation failed", err.Error()), fmt.Errorf("%v: %w", err, commons.ErrValidation)
	}

	var entries []domain.AuditLog
	err = s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		var err error
		entries, err = db.AuditLogs().Query(ctx, filter)
		return err
	})
	if err != nil {
		logger.Error("audit service query failed", err, nil)
		return errorResponseFor[models.AuditLogListResponse](err, "failed to query audit log"), err
	}

	response := models.AuditLogListResponse{
		Entries: make([]models.AuditLogResponse, 0, len(entries)),
		Offset:  filter.Offset,
		Limit:   filter.Limit,
	}
	for _, entry := range entries {
		response.Entries = append(response.Entries, mapAuditLogToResponse(entry))
	}
	return commons.SuccessResponse("audit entries listed", response), nil
}

func buildAuditFilter(req models.AuditQueryRequest) (domain.AuditLogFilter, error) {
	filter := domain.AuditLogFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Offset:    req.Offset,
		Limit:     req.Limit,
	}

	if trimmed := strings.TrimSpace(req.EntityType); trimmed != "" {
		filter.EntityType = &trimmed
	}
	if trimmed := strings.TrimSpace(req.EntityID); trimmed != "" {
		filter.EntityID = &trimmed
	}
	if trimmed := strings.TrimSpace(req.UserID); trimmed != "" {
		filter.UserID = &trimmed
	}
	if trimmed := strings.TrimSpace(req.Action); trimmed != "" {
		action := domain.AuditAction(strings.ToLower(trimmed))
		switch action {
		case domain.AuditActionCreate, domain.AuditActionRead, domain.AuditActionUpdate,
			domain.AuditActionDelete, domain.AuditActionLogin, domain.AuditActionLogout:
			filter.Action = &action
		default:
			return domain.AuditLogFilter{}, fmt.Errorf("unknown audit action %q", trimmed)
		}
	}
	return filter, nil
}
