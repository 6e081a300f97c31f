package models

import (
	"errors"
	"strings"

	"github.com/api-sage/core-banking/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	UserID         string          `json:"userId"`
	AccountType    string          `json:"accountType"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, "userId is required")
	}
	if !domain.AccountType(strings.ToLower(strings.TrimSpace(r.AccountType))).Valid() {
		errs = append(errs, "accountType must be one of checking, savings, credit, investment")
	}
	if !isCurrencyCode(strings.TrimSpace(r.Currency)) {
		errs = append(errs, "currency must be a 3-letter ISO 4217 code")
	}
	if r.InitialBalance.IsNegative() {
		errs = append(errs, "initialBalance cannot be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type AccountResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	AccountNumber string `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	Balance       string `json:"balance"`
	Currency      string `json:"currency"`
	IsActive      bool   `json:"isActive"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}
