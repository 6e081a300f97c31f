package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/core-banking/internal/commons"
	"github.com/api-sage/core-banking/internal/domain"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	db querier
}

func NewAccountRepository(db querier) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, user_id, account_number, account_type, balance, currency, is_active, created_at, updated_at`

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (
	user_id,
	account_number,
	account_type,
	balance,
	currency,
	is_active
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.UserID,
		account.AccountNumber,
		account.AccountType,
		account.Balance.String(),
		account.Currency,
		account.IsActive,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt); err != nil {
		return domain.Account{}, fmt.Errorf("create account: %w", classifyError(err))
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, id))
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, accountNumber))
}

func (r *AccountRepository) ListByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts for user %s: %w", userID, classifyError(err))
	}
	defer rows.Close()

	return collectAccounts(rows)
}

func (r *AccountRepository) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`, accountNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check account number: %w", classifyError(err))
	}
	return exists, nil
}

// LockForUpdate orders the locks by ascending id. Two concurrent transfers
// over the same pair of accounts therefore always acquire their row locks in
// the same order, whichever direction each transfer runs in.
func (r *AccountRepository) LockForUpdate(ctx context.Context, ids ...string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ANY($1) ORDER BY id FOR UPDATE`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("lock accounts: %w", classifyError(err))
	}
	defer rows.Close()

	return collectAccounts(rows)
}

func (r *AccountRepository) AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, expectedCurrency string) (decimal.Decimal, error) {
	const query = `
UPDATE accounts
SET balance = balance + $2::numeric,
    updated_at = NOW()
WHERE id = $1
  AND is_active = TRUE
  AND currency = $3
  AND balance + $2::numeric >= 0
RETURNING balance`

	var raw string
	err := r.db.QueryRowContext(ctx, query, accountID, delta.String(), strings.ToUpper(expectedCurrency)).Scan(&raw)
	if err == nil {
		balance, parseErr := decimal.NewFromString(raw)
		if parseErr != nil {
			return decimal.Zero, fmt.Errorf("parse balance for account %s: %w", accountID, parseErr)
		}
		return balance, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("adjust balance for account %s: %w", accountID, classifyError(err))
	}

	// The guarded update matched nothing; re-read the row to report which
	// precondition failed.
	account, getErr := r.GetByID(ctx, accountID)
	if getErr != nil {
		return decimal.Zero, getErr
	}
	if !account.IsActive {
		return decimal.Zero, fmt.Errorf("account %s: %w", accountID, commons.ErrAccountInactive)
	}
	if !strings.EqualFold(account.Currency, expectedCurrency) {
		return decimal.Zero, fmt.Errorf("account %s holds %s: %w", accountID, account.Currency, commons.ErrCurrencyMismatch)
	}
	return decimal.Zero, fmt.Errorf("account %s: %w", accountID, commons.ErrInsufficientFunds)
}

func (r *AccountRepository) SetActive(ctx context.Context, accountID string, active bool) error {
	const query = `
UPDATE accounts
SET is_active = $2,
    updated_at = NOW()
WHERE id = $1`

	if _, err := execRequiredRows(ctx, r.db, query, accountID, active); err != nil {
		return fmt.Errorf("set account %s active=%t: %w", accountID, active, err)
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, accountID string) error {
	_, err := execRequiredRows(ctx, r.db, `DELETE FROM accounts WHERE id = $1`, accountID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("account %s still has transaction history: %w", accountID, commons.ErrValidation)
		}
		return fmt.Errorf("delete account %s: %w", accountID, err)
	}
	return nil
}

func (r *AccountRepository) scanAccount(row *sql.Row) (domain.Account, error) {
	var account domain.Account
	var balance string

	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.AccountNumber,
		&account.AccountType,
		&balance,
		&account.Currency,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, commons.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("scan account: %w", classifyError(err))
	}

	account.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return domain.Account{}, fmt.Errorf("parse account balance: %w", err)
	}
	return account, nil
}

func collectAccounts(rows *sql.Rows) ([]domain.Account, error) {
	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		var balance string

		if err := rows.Scan(
			&account.ID,
			&account.UserID,
			&account.AccountNumber,
			&account.AccountType,
			&balance,
			&account.Currency,
			&account.IsActive,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}

		parsed, err := decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("parse account balance: %w", err)
		}
		account.Balance = parsed
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", classifyError(err))
	}
	return accounts, nil
}
