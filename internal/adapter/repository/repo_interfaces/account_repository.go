package repo_interfaces

import (
	"context"

	"github.com/api-sage/core-banking/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Account, error)
	AccountNumberExists(ctx context.Context, accountNumber string) (bool, error)

	// LockForUpdate acquires exclusive row locks on the given accounts for
	// the remainder of the unit of work, always in ascending id order so two
	// concurrent transfers over the same pair cannot deadlock. Missing ids
	// are simply absent from the result.
	LockForUpdate(ctx context.Context, ids ...string) ([]domain.Account, error)

	// AdjustBalance applies delta atomically and returns the new balance.
	// Fails with commons.ErrInsufficientFunds when the result would be
	// negative, commons.ErrCurrencyMismatch when expectedCurrency differs
	// from the account currency, and commons.ErrAccountInactive when the
	// account is deactivated.
	AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, expectedCurrency string) (decimal.Decimal, error)

	SetActive(ctx context.Context, accountID string, active bool) error

	// Delete removes an account permanently. It fails while any transaction
	// still references the account.
	Delete(ctx context.Context, accountID string) error
}
