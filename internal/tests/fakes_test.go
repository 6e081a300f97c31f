package services_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/api-sage/core-banking/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking/internal/commons"
	"github.com/api-sage/core-banking/internal/domain"
	"github.com/shopspring/decimal"
)

// errStorageFault simulates an unexpected storage failure mid unit of work.
var errStorageFault = errors.New("storage fault")

type fakeState struct {
	accounts     map[string]domain.Account
	transactions map[string]domain.Transaction
	auditLogs    []domain.AuditLog
	users        map[string]domain.User
	seq          int
}

func newFakeState() *fakeState {
	return &fakeState{
		accounts:     make(map[string]domain.Account),
		transactions: make(map[string]domain.Transaction),
		users:        make(map[string]domain.User),
	}
}

func (s *fakeState) clone() *fakeState {
	out := newFakeState()
	out.seq = s.seq
	for id, account := range s.accounts {
		out.accounts[id] = account
	}
	for id, transaction := range s.transactions {
		out.transactions[id] = transaction
	}
	out.auditLogs = append(out.auditLogs, s.auditLogs...)
	for id, user := range s.users {
		out.users[id] = user
	}
	return out
}

func (s *fakeState) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%06d", prefix, s.seq)
}

// fakeUnitOfWork runs each unit of work against a copy of the state and
// publishes the copy only on success, which mirrors transactional rollback.
// The mutex serializes units of work the way row locks serialize writers.
type fakeUnitOfWork struct {
	mu    sync.Mutex
	state *fakeState

	// failCreditAccountID makes any balance credit to the given account fail
	// with errStorageFault, to exercise mid-flight rollback.
	failCreditAccountID string
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{state: newFakeState()}
}

func (u *fakeUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, s repo_interfaces.Session) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	working := u.state.clone()
	session := &fakeSession{state: working, uow: u}
	if err := fn(ctx, session); err != nil {
		return err
	}
	u.state = working
	return nil
}

// seedUser, seedAccount and seedTransaction install fixtures outside any
// unit of work.
func (u *fakeUnitOfWork) seedUser(user domain.User) domain.User {
	u.mu.Lock()
	defer u.mu.Unlock()
	if user.ID == "" {
		user.ID = u.state.nextID("usr")
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	u.state.users[user.ID] = user
	return user
}

func (u *fakeUnitOfWork) seedAccount(account domain.Account) domain.Account {
	u.mu.Lock()
	defer u.mu.Unlock()
	if account.ID == "" {
		account.ID = u.state.nextID("acc")
	}
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt
	u.state.accounts[account.ID] = account
	return account
}

func (u *fakeUnitOfWork) seedTransaction(transaction domain.Transaction) domain.Transaction {
	u.mu.Lock()
	defer u.mu.Unlock()
	if transaction.ID == "" {
		transaction.ID = u.state.nextID("txn")
	}
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now().UTC()
	}
	u.state.transactions[transaction.ID] = transaction
	return transaction
}

func (u *fakeUnitOfWork) account(t testingT, id string) domain.Account {
	u.mu.Lock()
	defer u.mu.Unlock()
	account, ok := u.state.accounts[id]
	if !ok {
		t.Fatalf("account %s not found in fake state", id)
	}
	return account
}

func (u *fakeUnitOfWork) transactionCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.state.transactions)
}

func (u *fakeUnitOfWork) transactionsByStatus(status domain.TransactionStatus) []domain.Transaction {
	u.mu.Lock()
	defer u.mu.Unlock()
	var out []domain.Transaction
	for _, transaction := range u.state.transactions {
		if transaction.Status == status {
			out = append(out, transaction)
		}
	}
	return out
}

func (u *fakeUnitOfWork) auditEntries() []domain.AuditLog {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]domain.AuditLog(nil), u.state.auditLogs...)
}

// testingT is the subset of *testing.T the fixtures need.
type testingT interface {
	Fatalf(format string, args ...any)
}

type fakeSession struct {
	state *fakeState
	uow   *fakeUnitOfWork
}

func (s *fakeSession) Accounts() repo_interfaces.AccountRepository {
	return &fakeAccountRepo{state: s.state, uow: s.uow}
}

func (s *fakeSession) Transactions() repo_interfaces.TransactionRepository {
	return &fakeTransactionRepo{state: s.state}
}

func (s *fakeSession) AuditLogs() repo_interfaces.AuditLogRepository {
	return &fakeAuditLogRepo{state: s.state}
}

func (s *fakeSession) Users() repo_interfaces.UserRepository {
	return &fakeUserRepo{state: s.state}
}

type fakeAccountRepo struct {
	state *fakeState
	uow   *fakeUnitOfWork
}

func (r *fakeAccountRepo) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	account.ID = r.state.nextID("acc")
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt
	r.state.accounts[account.ID] = account
	return account, nil
}

func (r *fakeAccountRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	account, ok := r.state.accounts[id]
	if !ok {
		return domain.Account{}, fmt.Errorf("account %s: %w", id, commons.ErrRecordNotFound)
	}
	return account, nil
}

func (r *fakeAccountRepo) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	for _, account := range r.state.accounts {
		if account.AccountNumber == accountNumber {
			return account, nil
		}
	}
	return domain.Account{}, fmt.Errorf("account number %s: %w", accountNumber, commons.ErrRecordNotFound)
}

func (r *fakeAccountRepo) ListByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	var out []domain.Account
	for _, account := range r.state.accounts {
		if account.UserID == userID {
			out = append(out, account)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAccountRepo) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	for _, account := range r.state.accounts {
		if account.AccountNumber == accountNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAccountRepo) LockForUpdate(ctx context.Context, ids ...string) ([]domain.Account, error) {
	var out []domain.Account
	for _, id := range ids {
		if account, ok := r.state.accounts[id]; ok {
			out = append(out, account)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAccountRepo) AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, expectedCurrency string) (decimal.Decimal, error) {
	account, ok := r.state.accounts[accountID]
	if !ok {
		return decimal.Zero, fmt.Errorf("account %s: %w", accountID, commons.ErrRecordNotFound)
	}
	if r.uow != nil && r.uow.failCreditAccountID == accountID && delta.IsPositive() {
		return decimal.Zero, fmt.Errorf("adjust balance of account %s: %w", accountID, errStorageFault)
	}
	if !account.IsActive {
		return decimal.Zero, fmt.Errorf("account %s: %w", accountID, commons.ErrAccountInactive)
	}
	if !strings.EqualFold(account.Currency, expectedCurrency) {
		return decimal.Zero, fmt.Errorf("account %s holds %s: %w", accountID, account.Currency, commons.ErrCurrencyMismatch)
	}

	newBalance := account.Balance.Add(delta)
	if newBalance.IsNegative() {
		return decimal.Zero, fmt.Errorf("account %s: %w", accountID, commons.ErrInsufficientFunds)
	}

	account.Balance = newBalance
	account.UpdatedAt = time.Now().UTC()
	r.state.accounts[accountID] = account
	return newBalance, nil
}

func (r *fakeAccountRepo) SetActive(ctx context.Context, accountID string, active bool) error {
	account, ok := r.state.accounts[accountID]
	if !ok {
		return fmt.Errorf("account %s: %w", accountID, commons.ErrRecordNotFound)
	}
	account.IsActive = active
	account.UpdatedAt = time.Now().UTC()
	r.state.accounts[accountID] = account
	return nil
}

func (r *fakeAccountRepo) Delete(ctx context.Context, accountID string) error {
	if _, ok := r.state.accounts[accountID]; !ok {
		return fmt.Errorf("account %s: %w", accountID, commons.ErrRecordNotFound)
	}
	for _, transaction := range r.state.transactions {
		if transaction.AccountID == accountID ||
			(transaction.RecipientAccountID != nil && *transaction.RecipientAccountID == accountID) {
			return fmt.Errorf("account %s still has transaction history: %w", accountID, commons.ErrValidation)
		}
	}
	delete(r.state.accounts, accountID)
	return nil
}

type fakeTransactionRepo struct {
	state *fakeState
}

func (r *fakeTransactionRepo) Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	transaction.ID = r.state.nextID("txn")
	transaction.CreatedAt = time.Now().UTC()
	r.state.transactions[transaction.ID] = transaction
	return transaction, nil
}

func (r *fakeTransactionRepo) GetByID(ctx context.Context, id string) (domain.Transaction, error) {
	transaction, ok := r.state.transactions[id]
	if !ok {
		return domain.Transaction{}, fmt.Errorf("transaction %s: %w", id, commons.ErrRecordNotFound)
	}
	return transaction, nil
}

func (r *fakeTransactionRepo) GetByReferenceID(ctx context.Context, referenceID string) (domain.Transaction, error) {
	for _, transaction := range r.state.transactions {
		if transaction.ReferenceID == referenceID {
			return transaction, nil
		}
	}
	return domain.Transaction{}, fmt.Errorf("transaction reference %s: %w", referenceID, commons.ErrRecordNotFound)
}

func (r *fakeTransactionRepo) ReferenceIDExists(ctx context.Context, referenceID string) (bool, error) {
	for _, transaction := range r.state.transactions {
		if transaction.ReferenceID == referenceID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTransactionRepo) ListByAccount(ctx context.Context, accountID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, transaction := range r.state.transactions {
		if transaction.AccountID != accountID &&
			(transaction.RecipientAccountID == nil || *transaction.RecipientAccountID != accountID) {
			continue
		}
		if filter.TransactionType != nil && transaction.TransactionType != *filter.TransactionType {
			continue
		}
		if filter.Status != nil && transaction.Status != *filter.Status {
			continue
		}
		if filter.StartDate != nil && transaction.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && transaction.CreatedAt.After(*filter.EndDate) {
			continue
		}
		if filter.MinAmount != nil && transaction.Amount.LessThan(*filter.MinAmount) {
			continue
		}
		if filter.MaxAmount != nil && transaction.Amount.GreaterThan(*filter.MaxAmount) {
			continue
		}
		out = append(out, transaction)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	if filter.Offset >= len(out) {
		return nil, nil
	}
	out = out[filter.Offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTransactionRepo) MarkCompleted(ctx context.Context, id string, completedAt time.Time) error {
	transaction, ok := r.state.transactions[id]
	if !ok {
		return fmt.Errorf("transaction %s: %w", id, commons.ErrRecordNotFound)
	}
	if transaction.Status != domain.TransactionStatusPending {
		return fmt.Errorf("transaction %s is not pending: %w", id, commons.ErrConcurrencyConflict)
	}
	transaction.Status = domain.TransactionStatusCompleted
	transaction.CompletedAt = &completedAt
	r.state.transactions[id] = transaction
	return nil
}

func (r *fakeTransactionRepo) MarkReversed(ctx context.Context, id string) error {
	transaction, ok := r.state.transactions[id]
	if !ok {
		return fmt.Errorf("transaction %s: %w", id, commons.ErrRecordNotFound)
	}
	if transaction.Status != domain.TransactionStatusCompleted {
		return fmt.Errorf("transaction %s is not completed: %w", id, commons.ErrConcurrencyConflict)
	}
	transaction.Status = domain.TransactionStatusReversed
	r.state.transactions[id] = transaction
	return nil
}

func (r *fakeTransactionRepo) SumInflow(ctx context.Context, accountID string, since time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, transaction := range r.state.transactions {
		if transaction.Status != domain.TransactionStatusCompleted || transaction.CreatedAt.Before(since) {
			continue
		}
		switch transaction.TransactionType {
		case domain.TransactionTypeDeposit, domain.TransactionTypeInterest:
			if transaction.AccountID == accountID {
				sum = sum.Add(transaction.Amount)
			}
		case domain.TransactionTypeTransfer:
			if transaction.RecipientAccountID != nil && *transaction.RecipientAccountID == accountID {
				sum = sum.Add(transaction.Amount)
			}
		}
	}
	return sum, nil
}

func (r *fakeTransactionRepo) SumOutflow(ctx context.Context, accountID string, since time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, transaction := range r.state.transactions {
		if transaction.Status != domain.TransactionStatusCompleted || transaction.CreatedAt.Before(since) {
			continue
		}
		if transaction.AccountID != accountID {
			continue
		}
		switch transaction.TransactionType {
		case domain.TransactionTypeWithdrawal, domain.TransactionTypePayment,
			domain.TransactionTypeFee, domain.TransactionTypeTransfer:
			sum = sum.Add(transaction.Amount)
		}
	}
	return sum, nil
}

func (r *fakeTransactionRepo) CountByType(ctx context.Context, accountID string, since time.Time) (map[domain.TransactionType]int64, error) {
	counts := make(map[domain.TransactionType]int64)
	for _, transaction := range r.state.transactions {
		if transaction.Status != domain.TransactionStatusCompleted || transaction.CreatedAt.Before(since) {
			continue
		}
		if transaction.AccountID == accountID ||
			(transaction.RecipientAccountID != nil && *transaction.RecipientAccountID == accountID) {
			counts[transaction.TransactionType]++
		}
	}
	return counts, nil
}

type fakeAuditLogRepo struct {
	state *fakeState
}

func (r *fakeAuditLogRepo) Create(ctx context.Context, entry domain.AuditLog) (domain.AuditLog, error) {
	entry.ID = r.state.nextID("aud")
	entry.CreatedAt = time.Now().UTC()
	r.state.auditLogs = append(r.state.auditLogs, entry)
	return entry, nil
}

func (r *fakeAuditLogRepo) Query(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error) {
	var out []domain.AuditLog
	for _, entry := range r.state.auditLogs {
		if filter.EntityType != nil && entry.EntityType != *filter.EntityType {
			continue
		}
		if filter.EntityID != nil && (entry.EntityID == nil || *entry.EntityID != *filter.EntityID) {
			continue
		}
		if filter.UserID != nil && (entry.UserID == nil || *entry.UserID != *filter.UserID) {
			continue
		}
		if filter.Action != nil && entry.Action != *filter.Action {
			continue
		}
		if filter.StartDate != nil && entry.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && entry.CreatedAt.After(*filter.EndDate) {
			continue
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	if filter.Offset >= len(out) {
		return nil, nil
	}
	out = out[filter.Offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeUserRepo struct {
	state *fakeState
}

func (r *fakeUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	for _, existing := range r.state.users {
		if strings.EqualFold(existing.Email, user.Email) || existing.Username == user.Username {
			return domain.User{}, fmt.Errorf("email or username already in use: %w", commons.ErrValidation)
		}
	}
	user.ID = r.state.nextID("usr")
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	r.state.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, ok := r.state.users[id]
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", id, commons.ErrRecordNotFound)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, user := range r.state.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return domain.User{}, fmt.Errorf("user email %s: %w", email, commons.ErrRecordNotFound)
}
