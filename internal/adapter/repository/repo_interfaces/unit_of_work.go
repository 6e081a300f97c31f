package repo_interfaces

import "context"

// Session exposes the repositories bound to one storage transaction. Every
// repository call made through a Session sees, and contributes to, the same
// unit of work.
type Session interface {
	Accounts() AccountRepository
	Transactions() TransactionRepository
	AuditLogs() AuditLogRepository
	Users() UserRepository
}

// UnitOfWork runs fn inside a single storage transaction. If fn returns an
// error every change made through the session is rolled back, otherwise all
// changes commit together. Balance mutations and their audit entries share
// one unit of work so they can never be persisted apart.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, s Session) error) error
}
