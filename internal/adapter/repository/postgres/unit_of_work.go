package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/core-banking/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking/internal/logger"
)

type UnitOfWork struct {
	db *sql.DB
}

func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, s repo_interfaces.Session) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}

	s := newSession(tx)
	if err := fn(ctx, s); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("unit of work rollback failed", rbErr, nil)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("commit unit of work: %w", classifyError(err))
	}
	return nil
}

type session struct {
	accounts     *AccountRepository
	transactions *TransactionRepository
	auditLogs    *AuditLogRepository
	users        *UserRepository
}

func newSession(q querier) *session {
	return &session{
		accounts:     NewAccountRepository(q),
		transactions: NewTransactionRepository(q),
		auditLogs:    NewAuditLogRepository(q),
		users:        NewUserRepository(q),
	}
}

func (s *session) Accounts() repo_interfaces.AccountRepository {
	return s.accounts
}

func (s *session) Transactions() repo_interfaces.TransactionRepository {
	return s.transactions
}

func (s *session) AuditLogs() repo_interfaces.AuditLogRepository {
	return s.auditLogs
}

func (s *session) Users() repo_interfaces.UserRepository {
	return s.users
}
