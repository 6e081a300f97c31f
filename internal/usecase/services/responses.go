package services

import (
	"errors"
	"strings"
	"time"

	"github.com/api-sage/core-banking/internal/adapter/http/models"
	"github.com/api-sage/core-banking/internal/commons"
	"github.com/api-sage/core-banking/internal/domain"
)

// errorResponseFor maps the sentinel error set onto caller-visible response
// envelopes; anything outside the set becomes the operation fallback with no
// internals leaked.
func errorResponseFor[T any](err error, fallback string) commons.Response[T] {
	switch {
	case errors.Is(err, commons.ErrValidation):
		return commons.ErrorResponse[T]("validation failed", err.Error())
	case errors.Is(err, commons.ErrRecordNotFound):
		return commons.ErrorResponse[T]("Record not found", err.Error())
	case errors.Is(err, commons.ErrAccountInactive):
		return commons.ErrorResponse[T]("Account is inactive", err.Error())
	case errors.Is(err, commons.ErrCurrencyMismatch):
		return commons.ErrorResponse[T]("Currency mismatch", err.Error())
	case errors.Is(err, commons.ErrInsufficientFunds):
		return commons.ErrorResponse[T]("Insufficient funds", err.Error())
	case errors.Is(err, commons.ErrConcurrencyConflict):
		return commons.ErrorResponse[T]("Concurrent update conflict", "The operation left no partial effect and can be retried")
	default:
		return commons.ErrorResponse[T](fallback, "Unable to process the request right now")
	}
}

func mapTransactionToResponse(transaction domain.Transaction) models.TransactionResponse {
	response := models.TransactionResponse{
		ID:                 transaction.ID,
		ReferenceID:        transaction.ReferenceID,
		TransactionType:    string(transaction.TransactionType),
		Amount:             transaction.Amount.StringFixed(2),
		Currency:           transaction.Currency,
		Description:        transaction.Description,
		Status:             string(transaction.Status),
		AccountID:          transaction.AccountID,
		RecipientAccountID: transaction.RecipientAccountID,
		ReversalOfID:       transaction.ReversalOfID,
		CreatedAt:          transaction.CreatedAt.Format(time.RFC3339),
	}
	if transaction.CompletedAt != nil {
		completed := transaction.CompletedAt.Format(time.RFC3339)
		response.CompletedAt = &completed
	}
	return response
}

func mapAccountToResponse(account domain.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:            account.ID,
		UserID:        account.UserID,
		AccountNumber: account.AccountNumber,
		AccountType:   string(account.AccountType),
		Balance:       account.Balance.StringFixed(2),
		Currency:      account.Currency,
		IsActive:      account.IsActive,
		CreatedAt:     account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     account.UpdatedAt.Format(time.RFC3339),
	}
}

func mapUserToResponse(user domain.User) models.UserResponse {
	return models.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func mapAuditLogToResponse(entry domain.AuditLog) models.AuditLogResponse {
	return models.AuditLogResponse{
		ID:         entry.ID,
		Action:     string(entry.Action),
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		UserID:     entry.UserID,
		Data:       entry.Data,
		IPAddress:  entry.IPAddress,
		CreatedAt:  entry.CreatedAt.Format(time.RFC3339),
	}
}

func auditEntry(action domain.AuditAction, entityType, entityID string, actor models.Actor, data map[string]any) domain.AuditLog {
	entry := domain.AuditLog{
		Action:     action,
		EntityType: entityType,
		Data:       data,
	}
	if entityID != "" {
		id := entityID
		entry.EntityID = &id
	}
	if trimmed := strings.TrimSpace(actor.UserID); trimmed != "" {
		entry.UserID = &trimmed
	}
	if trimmed := strings.TrimSpace(actor.IPAddress); trimmed != "" {
		entry.IPAddress = &trimmed
	}
	return entry
}
