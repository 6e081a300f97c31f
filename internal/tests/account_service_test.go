package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/core-banking/internal/adapter/http/models"
	"github.com/api-sage/core-banking/internal/commons"
	"github.com/api-sage/core-banking/internal/domain"
	"github.com/api-sage/core-banking/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func TestAccountServiceCreateAccount(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := services.NewAccountService(uow)
	user := uow.seedUser(domain.User{Email: "new@example.com", Username: "new", IsActive: true})

	response, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		UserID:         user.ID,
		AccountType:    "Savings",
		Currency:       "usd",
		InitialBalance: decimal.RequireFromString("25"),
	}, testActor())
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	if response.Data.AccountType != "savings" {
		t.Fatalf("account type = %s, want savings", response.Data.AccountType)
	}
	if response.Data.Currency != "USD" {
		t.Fatalf("currency = %s, want USD", response.Data.Currency)
	}
	if response.Data.Balance != "25.00" {
		t.Fatalf("balance = %s, want 25.00", response.Data.Balance)
	}
	if len(response.Data.AccountNumber) != 18 {
		t.Fatalf("account number %q is %d digits, want 18", response.Data.AccountNumber, len(response.Data.AccountNumber))
	}
	if !response.Data.IsActive {
		t.Fatal("new account should be active")
	}
	if got := len(uow.auditEntries()); got != 1 {
		t.Fatalf("audit entries = %d, want 1", got)
	}
}

func TestAccountServiceCreateAccountValidationError(t *testing.T) {
	svc := services.NewAccountService(newFakeUnitOfWork())

	_, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{}, testActor())
	if !errors.Is(err, commons.ErrValidation) {
		t.Fatalf("empty create account request: err = %v, want validation error", err)
	}
}

func TestAccountServiceCreateAccountUnknownUser(t *testing.T) {
	svc := services.NewAccountService(newFakeUnitOfWork())

	_, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		UserID:      "usr-missing",
		AccountType: "checking",
		Currency:    "USD",
	}, testActor())
	if !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("create account for unknown user: err = %v, want record not found", err)
	}
}

func TestAccountServiceDeactivateBlocksPostings(t *testing.T) {
	uow := newFakeUnitOfWork()
	accountSvc := services.NewAccountService(uow)
	ledgerSvc := services.NewLedgerService(uow)
	account := seedCheckingAccount(uow, "100")

	if _, err := accountSvc.SetAccountActive(context.Background(), account.ID, false, testActor()); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, err := ledgerSvc.Deposit(context.Background(), models.DepositRequest{
		AccountID: account.ID,
		Amount:    decimal.RequireFromString("10"),
		Currency:  "USD",
	}, testActor())
	if !errors.Is(err, commons.ErrAccountInactive) {
		t.Fatalf("deposit on deactivated account: err = %v, want account inactive", err)
	}

	if _, err := accountSvc.SetAccountActive(context.Background(), account.ID, true, testActor()); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if _, err := ledgerSvc.Deposit(context.Background(), models.DepositRequest{
		AccountID: account.ID,
		Amount:    decimal.RequireFromString("10"),
		Currency:  "USD",
	}, testActor()); err != nil {
		t.Fatalf("deposit after reactivation: %v", err)
	}
}

func TestAccountServiceDeleteBlockedByHistory(t *testing.T) {
	uow := newFakeUnitOfWork()
	accountSvc := services.NewAccountService(uow)
	ledgerSvc := services.NewLedgerService(uow)
	account := seedCheckingAccount(uow, "0")

	if _, err := ledgerSvc.Deposit(context.Background(), models.DepositRequest{
		AccountID: account.ID,
		Amount:    decimal.RequireFromString("5"),
		Currency:  "USD",
	}, testActor()); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	_, err := accountSvc.DeleteAccount(context.Background(), account.ID, testActor())
	if !errors.Is(err, commons.ErrValidation) {
		t.Fatalf("delete account with history: err = %v, want validation error", err)
	}

	// An untouched account deletes cleanly.
	fresh := uow.seedAccount(domain.Account{
		UserID: account.UserID, AccountNumber: "202608290000000099",
		AccountType: domain.AccountTypeChecking, Balance: decimal.Zero, Currency: "USD", IsActive: true,
	})
	if _, err := accountSvc.DeleteAccount(context.Background(), fresh.ID, testActor()); err != nil {
		t.Fatalf("delete fresh account: %v", err)
	}
	if _, err := accountSvc.GetAccount(context.Background(), fresh.ID); !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("get deleted account: err = %v, want record not found", err)
	}
}

func TestAccountServiceListAccounts(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := services.NewAccountService(uow)
	user := uow.seedUser(domain.User{Email: "many@example.com", Username: "many", IsActive: true})
	uow.seedAccount(domain.Account{
		UserID: user.ID, AccountNumber: "202608290000000020",
		AccountType: domain.AccountTypeChecking, Balance: decimal.Zero, Currency: "USD", IsActive: true,
	})
	uow.seedAccount(domain.Account{
		UserID: user.ID, AccountNumber: "202608290000000021",
		AccountType: domain.AccountTypeSavings, Balance: decimal.Zero, Currency: "USD", IsActive: true,
	})

	response, err := svc.ListAccounts(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if response.Data == nil || len(*response.Data) != 2 {
		t.Fatalf("accounts response = %+v, want 2 accounts", response.Data)
	}
}

func TestAccountServiceGetByNumber(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := services.NewAccountService(uow)
	account := seedCheckingAccount(uow, "42")

	response, err := svc.GetAccountByNumber(context.Background(), account.AccountNumber)
	if err != nil {
		t.Fatalf("get by number: %v", err)
	}
	if response.Data.ID != account.ID {
		t.Fatalf("account id = %s, want %s", response.Data.ID, account.ID)
	}
}
