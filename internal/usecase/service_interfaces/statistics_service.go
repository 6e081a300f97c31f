package service_interfaces

import (
	"context"

	"github.com/api-sage/core-banking/internal/adapter/http/models"
	"github.com/api-sage/core-banking/internal/commons"
)

type StatisticsService interface {
	ComputeStats(ctx context.Context, accountID string, windowDays int) (commons.Response[models.TransactionStatsResponse], error)
}
