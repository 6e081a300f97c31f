package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/api-sage/core-banking/internal/commons"
	"github.com/api-sage/core-banking/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db querier
}

func NewTransactionRepository(db querier) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, reference_id, transaction_type, amount, currency, description, status, account_id, recipient_account_id, reversal_of_id, created_at, completed_at`

func (r *TransactionRepository) Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	const query = `
INSERT INTO transactions (
	reference_id,
	transaction_type,
	amount,
	currency,
	description,
	status,
	account_id,
	recipient_account_id,
	reversal_of_id
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		transaction.ReferenceID,
		transaction.TransactionType,
		transaction.Amount.String(),
		transaction.Currency,
		transaction.Description,
		transaction.Status,
		transaction.AccountID,
		transaction.RecipientAccountID,
		transaction.ReversalOfID,
	).Scan(&transaction.ID, &transaction.CreatedAt); err != nil {
		return domain.Transaction{}, fmt.Errorf("create transaction: %w", classifyError(err))
	}

	return transaction, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return r.scanTransaction(r.db.QueryRowContext(ctx, query, id))
}

func (r *TransactionRepository) GetByReferenceID(ctx context.Context, referenceID string) (domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE reference_id = $1`
	return r.scanTransaction(r.db.QueryRowContext(ctx, query, referenceID))
}

func (r *TransactionRepository) ReferenceIDExists(ctx context.Context, referenceID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE reference_id = $1)`, referenceID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check transaction reference: %w", classifyError(err))
	}
	return exists, nil
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE (account_id = $1 OR recipient_account_id = $1)`
	args := []any{accountID}

	if filter.TransactionType != nil {
		args = append(args, *filter.TransactionType)
		query += ` AND transaction_type = $` + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND created_at <= $` + strconv.Itoa(len(args))
	}
	if filter.MinAmount != nil {
		args = append(args, filter.MinAmount.String())
		query += ` AND amount >= $` + strconv.Itoa(len(args)) + `::numeric`
	}
	if filter.MaxAmount != nil {
		args = append(args, filter.MaxAmount.String())
		query += ` AND amount <= $` + strconv.Itoa(len(args)) + `::numeric`
	}

	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions for account %s: %w", accountID, classifyError(err))
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		transaction, err := scanTransactionRow(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", classifyError(err))
	}
	return transactions, nil
}

func (r *TransactionRepository) MarkCompleted(ctx context.Context, id string, completedAt time.Time) error {
	const query = `
UPDATE transactions
SET status = 'completed',
    completed_at = $2
WHERE id = $1
  AND status = 'pending'`

	if _, err := execRequiredRows(ctx, r.db, query, id, completedAt); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return fmt.Errorf("transaction %s is not pending: %w", id, commons.ErrConcurrencyConflict)
		}
		return fmt.Errorf("complete transaction %s: %w", id, err)
	}
	return nil
}

func (r *TransactionRepository) MarkReversed(ctx context.Context, id string) error {
	const query = `
UPDATE transactions
SET status = 'reversed'
WHERE id = $1
  AND status = 'completed'`

	if _, err := execRequiredRows(ctx, r.db, query, id); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return fmt.Errorf("transaction %s is not completed: %w", id, commons.ErrConcurrencyConflict)
		}
		return fmt.Errorf("reverse transaction %s: %w", id, err)
	}
	return nil
}

func (r *TransactionRepository) SumInflow(ctx context.Context, accountID string, since time.Time) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(amount), 0)
FROM transactions
WHERE status = 'completed'
  AND created_at >= $2
  AND (
       (transaction_type IN ('deposit', 'interest') AND account_id = $1)
    OR (transaction_type = 'transfer' AND recipient_account_id = $1)
  )`

	return r.sumAmounts(ctx, query, accountID, since)
}

func (r *TransactionRepository) SumOutflow(ctx context.Context, accountID string, since time.Time) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(amount), 0)
FROM transactions
WHERE status = 'completed'
  AND created_at >= $2
  AND transaction_type IN ('withdrawal', 'payment', 'fee', 'transfer')
  AND account_id = $1`

	return r.sumAmounts(ctx, query, accountID, since)
}

func (r *TransactionRepository) CountByType(ctx context.Context, accountID string, since time.Time) (map[domain.TransactionType]int64, error) {
	const query = `
SELECT transaction_type, COUNT(*)
FROM transactions
WHERE status = 'completed'
  AND created_at >= $2
  AND (account_id = $1 OR recipient_account_id = $1)
GROUP BY transaction_type`

	rows, err := r.db.QueryContext(ctx, query, accountID, since)
	if err != nil {
		return nil, fmt.Errorf("count transactions by type: %w", classifyError(err))
	}
	defer rows.Close()

	counts := make(map[domain.TransactionType]int64)
	for rows.Next() {
		var transactionType domain.TransactionType
		var count int64
		if err := rows.Scan(&transactionType, &count); err != nil {
			return nil, fmt.Errorf("scan transaction count: %w", err)
		}
		counts[transactionType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction counts: %w", classifyError(err))
	}
	return counts, nil
}

func (r *TransactionRepository) sumAmounts(ctx context.Context, query, accountID string, since time.Time) (decimal.Decimal, error) {
	var raw string
	if err := r.db.QueryRowContext(ctx, query, accountID, since).Scan(&raw); err != nil {
		return decimal.Zero, fmt.Errorf("sum transaction amounts: %w", classifyError(err))
	}

	sum, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse transaction sum: %w", err)
	}
	return sum, nil
}

func (r *TransactionRepository) scanTransaction(row *sql.Row) (domain.Transaction, error) {
	var transaction domain.Transaction
	var amount string
	var description sql.NullString
	var recipientAccountID sql.NullString
	var reversalOfID sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(
		&transaction.ID,
		&transaction.ReferenceID,
		&transaction.TransactionType,
		&amount,
		&transaction.Currency,
		&description,
		&transaction.Status,
		&transaction.AccountID,
		&recipientAccountID,
		&reversalOfID,
		&transaction.CreatedAt,
		&completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transaction{}, commons.ErrRecordNotFound
		}
		return domain.Transaction{}, fmt.Errorf("scan transaction: %w", classifyError(err))
	}

	return buildTransaction(transaction, amount, description, recipientAccountID, reversalOfID, completedAt)
}

func scanTransactionRow(rows *sql.Rows) (domain.Transaction, error) {
	var transaction domain.Transaction
	var amount string
	var description sql.NullString
	var recipientAccountID sql.NullString
	var reversalOfID sql.NullString
	var completedAt sql.NullTime

	if err := rows.Scan(
		&transaction.ID,
		&transaction.ReferenceID,
		&transaction.TransactionType,
		&amount,
		&transaction.Currency,
		&description,
		&transaction.Status,
		&transaction.AccountID,
		&recipientAccountID,
		&reversalOfID,
		&transaction.CreatedAt,
		&completedAt,
	); err != nil {
		return domain.Transaction{}, fmt.Errorf("scan transaction row: %w", err)
	}

	return buildTransaction(transaction, amount, description, recipientAccountID, reversalOfID, completedAt)
}

func buildTransaction(
	transaction domain.Transaction,
	amount string,
	description sql.NullString,
	recipientAccountID sql.NullString,
	reversalOfID sql.NullString,
	completedAt sql.NullTime,
) (domain.Transaction, error) {
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse transaction amount: %w", err)
	}
	transaction.Amount = parsed

	if description.Valid {
		transaction.Description = description.String
	}
	if recipientAccountID.Valid {
		value := recipientAccountID.String
		transaction.RecipientAccountID = &value
	}
	if reversalOfID.Valid {
		value := reversalOfID.String
		transaction.ReversalOfID = &value
	}
	if completedAt.Valid {
		value := completedAt.Time
		transaction.CompletedAt = &value
	}
	return transaction, nil
}
