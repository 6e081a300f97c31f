package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/api-sage/core-banking/internal/commons"
	"github.com/api-sage/core-banking/internal/domain"
	"github.com/api-sage/core-banking/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func TestStatisticsServiceComputesFlows(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := services.NewStatisticsService(uow)
	account := seedCheckingAccount(uow, "1000")
	completedAt := time.Now().UTC()

	uow.seedTransaction(domain.Transaction{
		ReferenceID: "TXN-20260829000000-AAAAAAA1", TransactionType: domain.TransactionTypeDeposit,
		Amount: decimal.RequireFromString("500"), Currency: "USD",
		Status: domain.TransactionStatusCompleted, AccountID: account.ID, CompletedAt: &completedAt,
	})
	uow.seedTransaction(domain.Transaction{
		ReferenceID: "TXN-20260829000000-AAAAAAA2", TransactionType: domain.TransactionTypeWithdrawal,
		Amount: decimal.RequireFromString("150"), Currency: "USD",
		Status: domain.TransactionStatusCompleted, AccountID: account.ID, CompletedAt: &completedAt,
	})
	uow.seedTransaction(domain.Transaction{
		ReferenceID: "TXN-20260829000000-AAAAAAA3", TransactionType: domain.TransactionTypeFee,
		Amount: decimal.RequireFromString("50"), Currency: "USD",
		Status: domain.TransactionStatusCompleted, AccountID: account.ID, CompletedAt: &completedAt,
	})

	response, err := svc.ComputeStats(context.Background(), account.ID, 30)
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}

	if response.Data.TotalInflow != "500.00" {
		t.Fatalf("total inflow = %s, want 500.00", response.Data.TotalInflow)
	}
	if response.Data.TotalOutflow != "200.00" {
		t.Fatalf("total outflow = %s, want 200.00", response.Data.TotalOutflow)
	}
	if response.Data.NetFlow != "300.00" {
		t.Fatalf("net flow = %s, want 300.00", response.Data.NetFlow)
	}
	if response.Data.CountsByType["deposit"] != 1 || response.Data.CountsByType["withdrawal"] != 1 || response.Data.CountsByType["fee"] != 1 {
		t.Fatalf("counts by type = %v", response.Data.CountsByType)
	}
	if response.Data.WindowDays != 30 {
		t.Fatalf("window days = %d, want 30", response.Data.WindowDays)
	}
}

func TestStatisticsServiceIgnoresNonCompleted(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := services.NewStatisticsService(uow)
	account := seedCheckingAccount(uow, "0")

	uow.seedTransaction(domain.Transaction{
		ReferenceID: "TXN-20260829000000-BBBBBBB1", TransactionType: domain.TransactionTypeDeposit,
		Amount: decimal.RequireFromString("900"), Currency: "USD",
		Status: domain.TransactionStatusReversed, AccountID: account.ID,
	})
	uow.seedTransaction(domain.Transaction{
		ReferenceID: "TXN-20260829000000-BBBBBBB2", TransactionType: domain.TransactionTypeWithdrawal,
		Amount: decimal.RequireFromString("70"), Currency: "USD",
		Status: domain.TransactionStatusFailed, AccountID: account.ID,
	})

	response, err := svc.ComputeStats(context.Background(), account.ID, 0)
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}
	if response.Data.TotalInflow != "0.00" || response.Data.TotalOutflow != "0.00" {
		t.Fatalf("flows = %s / %s, want 0.00 / 0.00", response.Data.TotalInflow, response.Data.TotalOutflow)
	}
	if len(response.Data.CountsByType) != 0 {
		t.Fatalf("counts by type = %v, want empty", response.Data.CountsByType)
	}
	if response.Data.WindowDays != 30 {
		t.Fatalf("default window days = %d, want 30", response.Data.WindowDays)
	}
}

func TestStatisticsServiceCountsTransfersOnBothSides(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := services.NewStatisticsService(uow)
	user := uow.seedUser(domain.User{Email: "stats@example.com", Username: "stats", IsActive: true})
	source := uow.seedAccount(domain.Account{
		UserID: user.ID, AccountNumber: "202608290000000010", AccountType: domain.AccountTypeChecking,
		Balance: decimal.RequireFromString("100"), Currency: "USD", IsActive: true,
	})
	destination := uow.seedAccount(domain.Account{
		UserID: user.ID, AccountNumber: "202608290000000011", AccountType: domain.AccountTypeChecking,
		Balance: decimal.RequireFromString("100"), Currency: "USD", IsActive: true,
	})

	uow.seedTransaction(domain.Transaction{
		ReferenceID: "TXN-20260829000000-CCCCCCC1", TransactionType: domain.TransactionTypeTransfer,
		Amount: decimal.RequireFromString("60"), Currency: "USD",
		Status: domain.TransactionStatusCompleted, AccountID: source.ID, RecipientAccountID: &destination.ID,
	})

	sourceStats, err := svc.ComputeStats(context.Background(), source.ID, 7)
	if err != nil {
		t.Fatalf("source stats: %v", err)
	}
	if sourceStats.Data.TotalOutflow != "60.00" || sourceStats.Data.TotalInflow != "0.00" {
		t.Fatalf("source flows = %s in / %s out", sourceStats.Data.TotalInflow, sourceStats.Data.TotalOutflow)
	}

	destinationStats, err := svc.ComputeStats(context.Background(), destination.ID, 7)
	if err != nil {
		t.Fatalf("destination stats: %v", err)
	}
	if destinationStats.Data.TotalInflow != "60.00" || destinationStats.Data.TotalOutflow != "0.00" {
		t.Fatalf("destination flows = %s in / %s out", destinationStats.Data.TotalInflow, destinationStats.Data.TotalOutflow)
	}
}

func TestStatisticsServiceUnknownAccount(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := services.NewStatisticsService(uow)

	_, err := svc.ComputeStats(context.Background(), "acc-missing", 30)
	if !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("stats for unknown account: err = %v, want record not found", err)
	}
}
