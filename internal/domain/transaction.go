package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeTransfer   TransactionType = "transfer"
	TransactionTypePayment    TransactionType = "payment"
	TransactionTypeFee        TransactionType = "fee"
	TransactionTypeInterest   TransactionType = "interest"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusReversed  TransactionStatus = "reversed"
)

// Transaction is one ledger posting. Amount is always positive; the
// transaction type decides the direction of the balance effect.
// RecipientAccountID is set for transfers only, ReversalOfID for compensating
// transactions created by Reverse.
type Transaction struct {
	ID                 string
	ReferenceID        string
	TransactionType    TransactionType
	Amount             decimal.Decimal
	Currency           string
	Description        string
	Status             TransactionStatus
	AccountID          string
	RecipientAccountID *string
	ReversalOfID       *string
	CreatedAt          time.Time
	CompletedAt        *time.Time
}

type TransactionFilter struct {
	TransactionType *TransactionType
	Status          *TransactionStatus
	StartDate       *time.Time
	EndDate         *time.Time
	MinAmount       *decimal.Decimal
	MaxAmount       *decimal.Decimal
	Offset          int
	Limit           int
}

type TransactionStats struct {
	TotalInflow  decimal.Decimal
	TotalOutflow decimal.Decimal
	NetFlow      decimal.Decimal
	CountsByType map[TransactionType]int64
}
