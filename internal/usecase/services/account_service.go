package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/api-sage/core-banking/internal/adapter/http/models"
	"github.com/api-sage/core-banking/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking/internal/commons"
	"github.com/api-sage/core-banking/internal/domain"
	"github.com/api-sage/core-banking/internal/logger"
)

type AccountService struct {
	uow repo_interfaces.UnitOfWork
}

func NewAccountService(uow repo_interfaces.UnitOfWork) *AccountService {
	return &AccountService{uow: uow}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest, actor models.Actor) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), fmt.Errorf("%v: %w", err, commons.ErrValidation)
	}

	var created domain.Account
	err := s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		userID := strings.TrimSpace(req.UserID)
		if _, err := db.Users().GetByID(ctx, userID); err != nil {
			return fmt.Errorf("user %s: %w", userID, err)
		}

		accountNumber, err := generateAccountNumber(ctx, db.Accounts())
		if err != nil {
			return err
		}

		created, err = db.Accounts().Create(ctx, domain.Account{
			UserID:        userID,
			AccountNumber: accountNumber,
			AccountType:   domain.AccountType(strings.ToLower(strings.TrimSpace(req.AccountType))),
			Balance:       req.InitialBalance,
			Currency:      strings.ToUpper(strings.TrimSpace(req.Currency)),
			IsActive:      true,
		})
		if err != nil {
			return err
		}

		_, err = db.AuditLogs().Create(ctx, auditEntry(domain.AuditActionCreate, "account", created.ID, actor, map[string]any{
			"account_number":  created.AccountNumber,
			"account_type":    string(created.AccountType),
			"currency":        created.Currency,
			"initial_balance": created.Balance.StringFixed(2),
			"user_id":         created.UserID,
		}))
		return err
	})
	if err != nil {
		logger.Error("account service create failed", err, logger.Fields{
			"userId": req.UserID,
		})
		return errorResponseFor[models.AccountResponse](err, "failed to create account"), err
	}

	logger.Info("account service create success", logger.Fields{
		"accountId":     created.ID,
		"accountNumber": created.AccountNumber,
	})
	return commons.SuccessResponse("account created", mapAccountToResponse(created)), nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountID string) (commons.Response[models.AccountResponse], error) {
	var account domain.Account
	err := s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		var err error
		account, err = db.Accounts().GetByID(ctx, strings.TrimSpace(accountID))
		return err
	})
	if err != nil {
		return errorResponseFor[models.AccountResponse](err, "failed to get account"), err
	}
	return commons.SuccessResponse("account found", mapAccountToResponse(account)), nil
}

func (s *AccountService) GetAccountByNumber(ctx context.Context, accountNumber string) (commons.Response[models.AccountResponse], error) {
	var account domain.Account
	err := s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		var err error
		account, err = db.Accounts().GetByAccountNumber(ctx, strings.TrimSpace(accountNumber))
		return err
	})
	if err != nil {
		return errorResponseFor[models.AccountResponse](err, "failed to get account"), err
	}
	return commons.SuccessResponse("account found", mapAccountToResponse(account)), nil
}

func (s *AccountService) ListAccounts(ctx context.Context, userID string) (commons.Response[[]models.AccountResponse], error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		err := fmt.Errorf("userId is required: %w", commons.ErrValidation)
		return commons.ErrorResponse[[]models.AccountResponse]("validation failed", "userId is required"), err
	}

	var accounts []domain.Account
	err := s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		var err error
		accounts, err = db.Accounts().ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return errorResponseFor[[]models.AccountResponse](err, "failed to list accounts"), err
	}

	responses := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, mapAccountToResponse(account))
	}
	return commons.SuccessResponse("accounts listed", responses), nil
}

func (s *AccountService) SetAccountActive(ctx context.Context, accountID string, active bool, actor models.Actor) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service set active request", logger.Fields{
		"accountId": accountID,
		"active":    active,
	})

	accountID = strings.TrimSpace(accountID)
	var account domain.Account
	err := s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		if err := db.Accounts().SetActive(ctx, accountID, active); err != nil {
			return err
		}

		var err error
		account, err = db.Accounts().GetByID(ctx, accountID)
		if err != nil {
			return err
		}

		_, err = db.AuditLogs().Create(ctx, auditEntry(domain.AuditActionUpdate, "account", account.ID, actor, map[string]any{
			"is_active": active,
		}))
		return err
	})
	if err != nil {
		logger.Error("account service set active failed", err, logger.Fields{
			"accountId": accountID,
		})
		return errorResponseFor[models.AccountResponse](err, "failed to update account"), err
	}

	message := "account deactivated"
	if active {
		message = "account activated"
	}
	return commons.SuccessResponse(message, mapAccountToResponse(account)), nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, accountID string, actor models.Actor) (commons.Response[struct{}], error) {
	logger.Info("account service delete request", logger.Fields{
		"accountId": accountID,
	})

	accountID = strings.TrimSpace(accountID)
	err := s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		account, err := db.Accounts().GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		if err := db.Accounts().Delete(ctx, accountID); err != nil {
			return err
		}

		_, err = db.AuditLogs().Create(ctx, auditEntry(domain.AuditActionDelete, "account", account.ID, actor, map[string]any{
			"account_number": account.AccountNumber,
			"balance":        account.Balance.StringFixed(2),
		}))
		return err
	})
	if err != nil {
		logger.Error("account service delete failed", err, logger.Fields{
			"accountId": accountID,
		})
		return errorResponseFor[struct{}](err, "failed to delete account"), err
	}

	return commons.SuccessResponse("account deleted", struct{}{}), nil
}
