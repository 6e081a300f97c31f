package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeInvestment AccountType = "investment"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCredit, AccountTypeInvestment:
		return true
	}
	return false
}

// Account is a customer ledger account. Balance and IsActive are the only
// mutable fields; AccountNumber and Currency are fixed at creation.
type Account struct {
	ID            string
	UserID        string
	AccountNumber string
	AccountType   AccountType
	Balance       decimal.Decimal
	Currency      string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
