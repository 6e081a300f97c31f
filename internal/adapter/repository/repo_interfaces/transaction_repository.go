package repo_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/core-banking/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
	GetByID(ctx context.Context, id string) (domain.Transaction, error)
	GetByReferenceID(ctx context.Context, referenceID string) (domain.Transaction, error)
	ReferenceIDExists(ctx context.Context, referenceID string) (bool, error)

	// ListByAccount returns transactions where the account is either the
	// primary or the recipient side, newest first.
	ListByAccount(ctx context.Context, accountID string, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// MarkCompleted flips pending → completed and stamps the completion
	// time. It fails when the row is not pending.
	MarkCompleted(ctx context.Context, id string, completedAt time.Time) error

	// MarkReversed flips completed → reversed. It fails when the row is not
	// completed, which makes a concurrent double reversal lose the race.
	MarkReversed(ctx context.Context, id string) error

	SumInflow(ctx context.Context, accountID string, since time.Time) (decimal.Decimal, error)
	SumOutflow(ctx context.Context, accountID string, since time.Time) (decimal.Decimal, error)
	CountByType(ctx context.Context, accountID string, since time.Time) (map[domain.TransactionType]int64, error)
}
