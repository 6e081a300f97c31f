package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/core-banking/internal/adapter/http/models"
	"github.com/api-sage/core-banking/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking/internal/commons"
	"github.com/api-sage/core-banking/internal/domain"
	"github.com/api-sage/core-banking/internal/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const defaultStatsWindowDays = 30

// StatisticsService aggregates completed transactions over a rolling window.
// Pending, failed and reversed rows never contribute to the totals.
type StatisticsService struct {
	uow repo_interfaces.UnitOfWork
}

func NewStatisticsService(uow repo_interfaces.UnitOfWork) *StatisticsService {
	return &StatisticsService{uow: uow}
}

func (s *StatisticsService) ComputeStats(ctx context.Context, accountID string, windowDays int) (commons.Response[models.TransactionStatsResponse], error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		err := fmt.Errorf("accountId is required: %w", commons.ErrValidation)
		return commons.ErrorResponse[models.TransactionStatsResponse]("validation failed", "accountId is required"), err
	}
	if windowDays <= 0 {
		windowDays = defaultStatsWindowDays
	}
	since := time.Now().UTC().AddDate(0, 0, -windowDays)

	err := s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		_, err := db.Accounts().GetByID(ctx, accountID)
		return err
	})
	if err != nil {
		return errorResponseFor[models.TransactionStatsResponse](err, "failed to compute statistics"), err
	}

	// The three aggregates are independent reads, each fanned out on its own
	// session. A session is bound to one storage transaction and must not be
	// shared across goroutines.
	var (
		inflow  decimal.Decimal
		outflow decimal.Decimal
		counts  map[domain.TransactionType]int64
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return s.uow.Do(groupCtx, func(ctx context.Context, db repo_interfaces.Session) error {
			var err error
			inflow, err = db.Transactions().SumInflow(ctx, accountID, since)
			return err
		})
	})
	group.Go(func() error {
		return s.uow.Do(groupCtx, func(ctx context.Context, db repo_interfaces.Session) error {
			var err error
			outflow, err = db.Transactions().SumOutflow(ctx, accountID, since)
			return err
		})
	})
	group.Go(func() error {
		return s.uow.Do(groupCtx, func(ctx context.Context, db repo_interfaces.Session) error {
			var err error
			counts, err = db.Transactions().CountByType(ctx, accountID, since)
			return err
		})
	})
	if err := group.Wait(); err != nil {
		logger.Error("statistics service compute failed", err, logger.Fields{
			"accountId": accountID,
		})
		return errorResponseFor[models.TransactionStatsResponse](err, "failed to compute statistics"), err
	}

	countsByType := make(map[string]int64, len(counts))
	for transactionType, count := range counts {
		countsByType[string(transactionType)] = count
	}

	response := models.TransactionStatsResponse{
		AccountID:    accountID,
		WindowDays:   windowDays,
		TotalInflow:  inflow.StringFixed(2),
		TotalOutflow: outflow.StringFixed(2),
		NetFlow:      inflow.Sub(outflow).StringFixed(2),
		CountsByType: countsByType,
	}
	return commons.SuccessResponse("statistics computed", response), nil
}
