package service_interfaces

import (
	"context"

	"github.com/api-sage/core-banking/internal/adapter/http/models"
	"github.com/api-sage/core-banking/internal/commons"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest, actor models.Actor) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, accountID string) (commons.Response[models.AccountResponse], error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error)
	ListAccounts(ctx context.Context, userID string) (commons.Response[[]models.AccountResponse], error)
	SetAccountActive(ctx context.Context, accountID string, active bool, actor models.Actor) (commons.Response[models.AccountResponse], error)
	DeleteAccount(ctx context.Context, accountID string, actor models.Actor) (commons.Response[struct{}], error)
}
