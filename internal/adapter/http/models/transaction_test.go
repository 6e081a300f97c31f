package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDepositRequestValidate(t *testing.T) {
	valid := DepositRequest{
		AccountID: "acc-1",
		Amount:    decimal.RequireFromString("10"),
		Currency:  "USD",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid deposit request: %v", err)
	}

	cases := []struct {
		name string
		req  DepositRequest
	}{
		{"missing account", DepositRequest{Amount: decimal.RequireFromString("10"), Currency: "USD"}},
		{"zero amount", DepositRequest{AccountID: "acc-1", Amount: decimal.Zero, Currency: "USD"}},
		{"negative amount", DepositRequest{AccountID: "acc-1", Amount: decimal.RequireFromString("-5"), Currency: "USD"}},
		{"bad currency", DepositRequest{AccountID: "acc-1", Amount: decimal.RequireFromString("10"), Currency: "US"}},
		{"numeric currency", DepositRequest{AccountID: "acc-1", Amount: decimal.RequireFromString("10"), Currency: "U5D"}},
	}
	for _, tc := range cases {
		if err := tc.req.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestTransferRequestValidateRejectsSameAccount(t *testing.T) {
	req := TransferRequest{
		SourceAccountID:      "acc-1",
		DestinationAccountID: "acc-1",
		Amount:               decimal.RequireFromString("10"),
		Currency:             "USD",
	}
	if err := req.Validate(); err == nil {
		t.Fatal("expected validation error for same source and destination")
	}
}

func TestPaymentRequestValidateRequiresRecipient(t *testing.T) {
	req := PaymentRequest{
		AccountID: "acc-1",
		Amount:    decimal.RequireFromString("10"),
		Currency:  "USD",
	}
	if err := req.Validate(); err == nil {
		t.Fatal("expected validation error for missing recipient")
	}

	req.Recipient = "ACME Utilities"
	if err := req.Validate(); err != nil {
		t.Fatalf("valid payment request: %v", err)
	}
}

func TestCreateAccountRequestValidate(t *testing.T) {
	valid := CreateAccountRequest{
		UserID:      "usr-1",
		AccountType: "checking",
		Currency:    "EUR",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid create account request: %v", err)
	}

	invalid := CreateAccountRequest{
		UserID:         "usr-1",
		AccountType:    "offshore",
		Currency:       "EUR",
		InitialBalance: decimal.RequireFromString("-1"),
	}
	if err := invalid.Validate(); err == nil {
		t.Fatal("expected validation error for unknown type and negative balance")
	}
}
