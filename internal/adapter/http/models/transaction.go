package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DepositRequest struct {
	AccountID   string          `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
}

func (r DepositRequest) Validate() error {
	return validateMovement(r.AccountID, "accountId", r.Amount, r.Currency)
}

type WithdrawalRequest struct {
	AccountID   string          `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
}

func (r WithdrawalRequest) Validate() error {
	return validateMovement(r.AccountID, "accountId", r.Amount, r.Currency)
}

type TransferRequest struct {
	SourceAccountID      string          `json:"sourceAccountId"`
	DestinationAccountID string          `json:"destinationAccountId"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	Description          string          `json:"description"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.SourceAccountID) == "" {
		errs = append(errs, "sourceAccountId is required")
	}
	if strings.TrimSpace(r.DestinationAccountID) == "" {
		errs = append(errs, "destinationAccountId is required")
	}
	if strings.TrimSpace(r.SourceAccountID) != "" &&
		strings.TrimSpace(r.SourceAccountID) == strings.TrimSpace(r.DestinationAccountID) {
		errs = append(errs, "sourceAccountId and destinationAccountId cannot be the same")
	}
	errs = appendMovementErrors(errs, r.Amount, r.Currency)

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type PaymentRequest struct {
	AccountID   string          `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Recipient   string          `json:"recipient"`
	Description string          `json:"description"`
}

func (r PaymentRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.AccountID) == "" {
		errs = append(errs, "accountId is required")
	}
	if strings.TrimSpace(r.Recipient) == "" {
		errs = append(errs, "recipient is required")
	}
	errs = appendMovementErrors(errs, r.Amount, r.Currency)

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type FeeRequest struct {
	AccountID   string          `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
}

func (r FeeRequest) Validate() error {
	return validateMovement(r.AccountID, "accountId", r.Amount, r.Currency)
}

type InterestRequest struct {
	AccountID   string          `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
}

func (r InterestRequest) Validate() error {
	return validateMovement(r.AccountID, "accountId", r.Amount, r.Currency)
}

func validateMovement(accountID, accountField string, amount decimal.Decimal, currency string) error {
	var errs []string

	if strings.TrimSpace(accountID) == "" {
		errs = append(errs, accountField+" is required")
	}
	errs = appendMovementErrors(errs, amount, currency)

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func appendMovementErrors(errs []string, amount decimal.Decimal, currency string) []string {
	if amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}
	if !isCurrencyCode(strings.TrimSpace(currency)) {
		errs = append(errs, "currency must be a 3-letter ISO 4217 code")
	}
	return errs
}

// ListTransactionsRequest is built by the controller from query parameters.
type ListTransactionsRequest struct {
	TransactionType string
	Status          string
	StartDate       *time.Time
	EndDate         *time.Time
	MinAmount       *decimal.Decimal
	MaxAmount       *decimal.Decimal
	Offset          int
	Limit           int
}

type TransactionResponse struct {
	ID                 string  `json:"id"`
	ReferenceID        string  `json:"referenceId"`
	TransactionType    string  `json:"transactionType"`
	Amount             string  `json:"amount"`
	Currency           string  `json:"currency"`
	Description        string  `json:"description,omitempty"`
	Status             string  `json:"status"`
	AccountID          string  `json:"accountId"`
	RecipientAccountID *string `json:"recipientAccountId,omitempty"`
	ReversalOfID       *string `json:"reversalOfId,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	CompletedAt        *string `json:"completedAt,omitempty"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Offset       int                   `json:"offset"`
	Limit        int                   `json:"limit"`
}

type TransactionStatsResponse struct {
	AccountID    string           `json:"accountId"`
	WindowDays   int              `json:"windowDays"`
	TotalInflow  string           `json:"totalInflow"`
	TotalOutflow string           `json:"totalOutflow"`
	NetFlow      string           `json:"netFlow"`
	CountsByType map[string]int64 `json:"countsByType"`
}
