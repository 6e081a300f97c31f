package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/core-banking/internal/adapter/http/models"
	"github.com/api-sage/core-banking/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/core-banking/internal/commons"
	"github.com/api-sage/core-banking/internal/domain"
	"github.com/api-sage/core-banking/internal/logger"
	"github.com/shopspring/decimal"
)

// LedgerService owns the transaction lifecycle and is the sole orchestrator
// of account balance mutations. Every operation runs inside one unit of
// work: balance deltas, the status flip to completed and the audit entry
// commit together or not at all.
type LedgerService struct {
	uow repo_interfaces.UnitOfWork
}

func NewLedgerService(uow repo_interfaces.UnitOfWork) *LedgerService {
	return &LedgerService{uow: uow}
}

// posting captures one intended ledger movement before it is applied.
type posting struct {
	accountID       string
	transactionType domain.TransactionType
	amount          decimal.Decimal
	currency        string
	description     string
	outflow         bool
	reversalOfID    *string
	auditData       map[string]any
}

func (s *LedgerService) Deposit(ctx context.Context, req models.DepositRequest, actor models.Actor) (commons.Response[models.TransactionResponse], error) {
	logger.Info("ledger service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), fmt.Errorf("%v: %w", err, commons.ErrValidation)
	}

	transaction, err := s.postOneSided(ctx, posting{
		accountID:       strings.TrimSpace(req.AccountID),
		transactionType: domain.TransactionTypeDeposit,
		amount:          req.Amount,
		currency:        strings.ToUpper(strings.TrimSpace(req.Currency)),
		description:     defaultDescription(req.Description, "Deposit"),
	}, actor)
	if err != nil {
		logger.Error("ledger service deposit failed", err, logger.Fields{
			"accountId": req.AccountID,
		})
		return errorResponseFor[models.TransactionResponse](err, "failed to process deposit"), err
	}

	logger.Info("ledger service deposit success", logger.Fields{
		"transactionId": transaction.ID,
		"referenceId":   transaction.ReferenceID,
	})
	return commons.SuccessResponse("deposit completed", mapTransactionToResponse(transaction)), nil
}

func (s *LedgerService) Withdraw(ctx context.Context, req models.WithdrawalRequest, actor models.Actor) (commons.Response[models.TransactionResponse], error) {
	logger.Info("ledger service withdrawal request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), fmt.Errorf("%v: %w", err, commons.ErrValidation)
	}

	transaction, err := s.postOneSided(ctx, posting{
		accountID:       strings.TrimSpace(req.AccountID),
		transactionType: domain.TransactionTypeWithdrawal,
		amount:          req.Amount,
		currency:        strings.ToUpper(strings.TrimSpace(req.Currency)),
		description:     defaultDescription(req.Description, "Withdrawal"),
		outflow:         true,
	}, actor)
	if err != nil {
		logger.Error("ledger service withdrawal failed", err, logger.Fields{
			"accountId": req.AccountID,
		})
		return errorResponseFor[models.TransactionResponse](err, "failed to process withdrawal"), err
	}

	logger.Info("ledger service withdrawal success", logger.Fields{
		"transactionId": transaction.ID,
		"referenceId":   transaction.ReferenceID,
	})
	return commons.SuccessResponse("withdrawal completed", mapTransactionToResponse(transaction)), nil
}

func (s *LedgerService) Pay(ctx context.Context, req models.PaymentRequest, actor models.Actor) (commons.Response[models.TransactionResponse], error) {
	logger.Info("ledger service payment request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), fmt.Errorf("%v: %w", err, commons.ErrValidation)
	}

	recipient := strings.TrimSpace(req.Recipient)
	transaction, err := s.postOneSided(ctx, posting{
		accountID:       strings.TrimSpace(req.AccountID),
		transactionType: domain.TransactionTypePayment,
		amount:          req.Amount,
		currency:        strings.ToUpper(strings.TrimSpace(req.Currency)),
		description:     defaultDescription(req.Description, "Payment to "+recipient),
		outflow:         true,
		auditData:       map[string]any{"recipient": recipient},
	}, actor)
	if err != nil {
		logger.Error("ledger service payment failed", err, logger.Fields{
			"accountId": req.AccountID,
		})
		return errorResponseFor[models.TransactionResponse](err, "failed to process payment"), err
	}

	logger.Info("ledger service payment success", logger.Fields{
		"transactionId": transaction.ID,
		"referenceId":   transaction.ReferenceID,
	})
	return commons.SuccessResponse("payment completed", mapTransactionToResponse(transaction)), nil
}

func (s *LedgerService) ApplyFee(ctx context.Context, req models.FeeRequest, actor models.Actor) (commons.Response[models.TransactionResponse], error) {
	logger.Info("ledger service fee request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), fmt.Errorf("%v: %w", err, commons.ErrValidation)
	}

	transaction, err := s.postOneSided(ctx, posting{
		accountID:       strings.TrimSpace(req.AccountID),
		transactionType: domain.TransactionTypeFee,
		amount:          req.Amount,
		currency:        strings.ToUpper(strings.TrimSpace(req.Currency)),
		description:     defaultDescription(req.Description, "Fee"),
		outflow:         true,
	}, actor)
	if err != nil {
		logger.Error("ledger service fee failed", err, logger.Fields{
			"accountId": req.AccountID,
		})
		return errorResponseFor[models.TransactionResponse](err, "failed to apply fee"), err
	}

	return commons.SuccessResponse("fee applied", mapTransactionToResponse(transaction)), nil
}

func (s *LedgerService) ApplyInterest(ctx context.Context, req models.InterestRequest, actor models.Actor) (commons.Response[models.TransactionResponse], error) {
	logger.Info("ledger service interest request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), fmt.Errorf("%v: %w", err, commons.ErrValidation)
	}

	transaction, err := s.postOneSided(ctx, posting{
		accountID:       strings.TrimSpace(req.AccountID),
		transactionType: domain.TransactionTypeInterest,
		amount:          req.Amount,
		currency:        strings.ToUpper(strings.TrimSpace(req.Currency)),
		description:     defaultDescription(req.Description, "Interest"),
	}, actor)
	if err != nil {
		logger.Error("ledger service interest failed", err, logger.Fields{
			"accountId": req.AccountID,
		})
		return errorResponseFor[models.TransactionResponse](err, "failed to apply interest"), err
	}

	return commons.SuccessResponse("interest applied", mapTransactionToResponse(transaction)), nil
}

func (s *LedgerService) Transfer(ctx context.Context, req models.TransferRequest, actor models.Actor) (commons.Response[models.TransactionResponse], error) {
	logger.Info("ledger service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), fmt.Errorf("%v: %w", err, commons.ErrValidation)
	}

	sourceID := strings.TrimSpace(req.SourceAccountID)
	destinationID := strings.TrimSpace(req.DestinationAccountID)
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	p := posting{
		accountID:       sourceID,
		transactionType: domain.TransactionTypeTransfer,
		amount:          req.Amount,
		currency:        currency,
		description:     defaultDescription(req.Description, "Transfer"),
	}

	var created domain.Transaction
	err := s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		// Both rows are locked in ascending id order regardless of transfer
		// direction, so opposing transfers over the same pair cannot
		// deadlock.
		accounts, err := db.Accounts().LockForUpdate(ctx, sourceID, destinationID)
		if err != nil {
			return err
		}

		var source, destination *domain.Account
		for i := range accounts {
			switch accounts[i].ID {
			case sourceID:
				source = &accounts[i]
			case destinationID:
				destination = &accounts[i]
			}
		}
		if source == nil {
			return fmt.Errorf("source account %s: %w", sourceID, commons.ErrRecordNotFound)
		}
		if destination == nil {
			return fmt.Errorf("destination account %s: %w", destinationID, commons.ErrRecordNotFound)
		}
		if err := checkAccountForPosting(*source, currency); err != nil {
			return err
		}
		if err := checkAccountForPosting(*destination, currency); err != nil {
			return err
		}
		if source.Balance.LessThan(p.amount) {
			return fmt.Errorf("account %s: %w", source.ID, commons.ErrInsufficientFunds)
		}

		created, err = s.createPending(ctx, db, p, source.ID, &destination.ID)
		if err != nil {
			return err
		}
		if _, err := db.Accounts().AdjustBalance(ctx, source.ID, p.amount.Neg(), currency); err != nil {
			return err
		}
		if _, err := db.Accounts().AdjustBalance(ctx, destination.ID, p.amount, currency); err != nil {
			return err
		}
		return s.finalize(ctx, db, &created, actor, nil)
	})
	if err != nil {
		logger.Error("ledger service transfer failed", err, logger.Fields{
			"sourceAccountId":      sourceID,
			"destinationAccountId": destinationID,
		})
		s.recordFailedAttempt(ctx, p, &destinationID, actor, err)
		return errorResponseFor[models.TransactionResponse](err, "failed to process transfer"), err
	}

	logger.Info("ledger service transfer success", logger.Fields{
		"transactionId": created.ID,
		"referenceId":   created.ReferenceID,
	})
	return commons.SuccessResponse("transfer completed", mapTransactionToResponse(created)), nil
}

// Reverse compensates a completed transaction with a new transaction of the
// inverse kind and flips the original to reversed. The original row is never
// mutated beyond its status.
func (s *LedgerService) Reverse(ctx context.Context, transactionID string, actor models.Actor) (commons.Response[models.TransactionResponse], error) {
	logger.Info("ledger service reverse request", logger.Fields{
		"transactionId": transactionID,
	})

	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		err := fmt.Errorf("transactionId is required: %w", commons.ErrValidation)
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", "transactionId is required"), err
	}

	var reversal domain.Transaction
	err := s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		original, err := db.Transactions().GetByID(ctx, transactionID)
		if err != nil {
			return err
		}
		if original.Status != domain.TransactionStatusCompleted {
			return fmt.Errorf("transaction %s is %s, only completed transactions can be reversed: %w", original.ID, original.Status, commons.ErrValidation)
		}

		p := posting{
			transactionType: inverseTransactionType(original.TransactionType),
			amount:          original.Amount,
			currency:        original.Currency,
			description:     "Reversal of " + original.ReferenceID,
			reversalOfID:    &original.ID,
		}

		if original.TransactionType == domain.TransactionTypeTransfer {
			if original.RecipientAccountID == nil {
				return fmt.Errorf("transfer %s has no recipient account: %w", original.ID, commons.ErrValidation)
			}
			recipientID := *original.RecipientAccountID

			accounts, err := db.Accounts().LockForUpdate(ctx, original.AccountID, recipientID)
			if err != nil {
				return err
			}
			var source, recipient *domain.Account
			for i := range accounts {
				switch accounts[i].ID {
				case original.AccountID:
					source = &accounts[i]
				case recipientID:
					recipient = &accounts[i]
				}
			}
			if source == nil || recipient == nil {
				return fmt.Errorf("transfer %s accounts: %w", original.ID, commons.ErrRecordNotFound)
			}
			if err := checkAccountForPosting(*source, original.Currency); err != nil {
				return err
			}
			if err := checkAccountForPosting(*recipient, original.Currency); err != nil {
				return err
			}
			if recipient.Balance.LessThan(original.Amount) {
				return fmt.Errorf("account %s: %w", recipient.ID, commons.ErrInsufficientFunds)
			}

			// The compensating transfer flows recipient → source.
			reversal, err = s.createPending(ctx, db, p, recipientID, &original.AccountID)
			if err != nil {
				return err
			}
			if _, err := db.Accounts().AdjustBalance(ctx, recipientID, original.Amount.Neg(), original.Currency); err != nil {
				return err
			}
			if _, err := db.Accounts().AdjustBalance(ctx, original.AccountID, original.Amount, original.Currency); err != nil {
				return err
			}
		} else {
			account, err := lockAccount(ctx, db, original.AccountID)
			if err != nil {
				return err
			}
			if err := checkAccountForPosting(account, original.Currency); err != nil {
				return err
			}

			delta := original.Amount
			if isInflowType(original.TransactionType) {
				if account.Balance.LessThan(original.Amount) {
					return fmt.Errorf("account %s: %w", account.ID, commons.ErrInsufficientFunds)
				}
				delta = delta.Neg()
			}

			reversal, err = s.createPending(ctx, db, p, original.AccountID, nil)
			if err != nil {
				return err
			}
			if _, err := db.Accounts().AdjustBalance(ctx, original.AccountID, delta, original.Currency); err != nil {
				return err
			}
		}

		if err := db.Transactions().MarkReversed(ctx, original.ID); err != nil {
			return err
		}
		return s.finalize(ctx, db, &reversal, actor, map[string]any{
			"reversed_transaction_id": original.ID,
			"reversed_reference_id":   original.ReferenceID,
		})
	})
	if err != nil {
		logger.Error("ledger service reverse failed", err, logger.Fields{
			"transactionId": transactionID,
		})
		return errorResponseFor[models.TransactionResponse](err, "failed to reverse transaction"), err
	}

	logger.Info("ledger service reverse success", logger.Fields{
		"transactionId": reversal.ID,
		"reversedId":    transactionID,
	})
	return commons.SuccessResponse("transaction reversed", mapTransactionToResponse(reversal)), nil
}

func (s *LedgerService) GetTransaction(ctx context.Context, id string) (commons.Response[models.TransactionResponse], error) {
	var transaction domain.Transaction
	err := s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		var err error
		transaction, err = db.Transactions().GetByID(ctx, strings.TrimSpace(id))
		return err
	})
	if err != nil {
		return errorResponseFor[models.TransactionResponse](err, "failed to get transaction"), err
	}
	return commons.SuccessResponse("transaction found", mapTransactionToResponse(transaction)), nil
}

func (s *LedgerService) GetTransactionByReference(ctx context.Context, referenceID string) (commons.Response[models.TransactionResponse], error) {
	var transaction domain.Transaction
	err := s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		var err error
		transaction, err = db.Transactions().GetByReferenceID(ctx, strings.TrimSpace(referenceID))
		return err
	})
	if err != nil {
		return errorResponseFor[models.TransactionResponse](err, "failed to get transaction"), err
	}
	return commons.SuccessResponse("transaction found", mapTransactionToResponse(transaction)), nil
}

func (s *LedgerService) ListAccountTransactions(ctx context.Context, accountID string, req models.ListTransactionsRequest) (commons.Response[models.TransactionListResponse], error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		err := fmt.Errorf("accountId is required: %w", commons.ErrValidation)
		return commons.ErrorResponse[models.TransactionListResponse]("validation failed", "accountId is required"), err
	}

	filter, err := buildTransactionFilter(req)
	if err != nil {
		return commons.ErrorResponse[models.TransactionListResponse]("validation failed", err.Error()), fmt.Errorf("%v: %w", err, commons.ErrValidation)
	}

	var transactions []domain.Transaction
	err = s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		if _, err := db.Accounts().GetByID(ctx, accountID); err != nil {
			return err
		}
		var listErr error
		transactions, listErr = db.Transactions().ListByAccount(ctx, accountID, filter)
		return listErr
	})
	if err != nil {
		return errorResponseFor[models.TransactionListResponse](err, "failed to list transactions"), err
	}

	response := models.TransactionListResponse{
		Transactions: make([]models.TransactionResponse, 0, len(transactions)),
		Offset:       filter.Offset,
		Limit:        filter.Limit,
	}
	for _, transaction := range transactions {
		response.Transactions = append(response.Transactions, mapTransactionToResponse(transaction))
	}
	return commons.SuccessResponse("transactions listed", response), nil
}

func (s *LedgerService) postOneSided(ctx context.Context, p posting, actor models.Actor) (domain.Transaction, error) {
	var created domain.Transaction
	err := s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		account, err := lockAccount(ctx, db, p.accountID)
		if err != nil {
			return err
		}
		if err := checkAccountForPosting(account, p.currency); err != nil {
			return err
		}

		delta := p.amount
		if p.outflow {
			if account.Balance.LessThan(p.amount) {
				return fmt.Errorf("account %s: %w", account.ID, commons.ErrInsufficientFunds)
			}
			delta = delta.Neg()
		}

		created, err = s.createPending(ctx, db, p, account.ID, nil)
		if err != nil {
			return err
		}
		if _, err := db.Accounts().AdjustBalance(ctx, account.ID, delta, p.currency); err != nil {
			return err
		}
		return s.finalize(ctx, db, &created, actor, p.auditData)
	})
	if err != nil {
		s.recordFailedAttempt(ctx, p, nil, actor, err)
		return domain.Transaction{}, err
	}
	return created, nil
}

func (s *LedgerService) createPending(ctx context.Context, db repo_interfaces.Session, p posting, accountID string, recipientID *string) (domain.Transaction, error) {
	reference, err := generateTransactionReference(ctx, db.Transactions())
	if err != nil {
		return domain.Transaction{}, err
	}

	return db.Transactions().Create(ctx, domain.Transaction{
		ReferenceID:        reference,
		TransactionType:    p.transactionType,
		Amount:             p.amount,
		Currency:           p.currency,
		Description:        p.description,
		Status:             domain.TransactionStatusPending,
		AccountID:          accountID,
		RecipientAccountID: recipientID,
		ReversalOfID:       p.reversalOfID,
	})
}

// finalize flips the pending row to completed and writes the audit entry for
// the mutation, still inside the caller's unit of work.
func (s *LedgerService) finalize(ctx context.Context, db repo_interfaces.Session, created *domain.Transaction, actor models.Actor, extra map[string]any) error {
	completedAt := time.Now().UTC()
	if err := db.Transactions().MarkCompleted(ctx, created.ID, completedAt); err != nil {
		return err
	}
	created.Status = domain.TransactionStatusCompleted
	created.CompletedAt = &completedAt

	data := map[string]any{
		"transaction_type": string(created.TransactionType),
		"amount":           created.Amount.StringFixed(2),
		"currency":         created.Currency,
		"account_id":       created.AccountID,
		"reference_id":     created.ReferenceID,
	}
	if created.RecipientAccountID != nil {
		data["recipient_account_id"] = *created.RecipientAccountID
	}
	if created.ReversalOfID != nil {
		data["reversal_of_id"] = *created.ReversalOfID
	}
	for key, value := range extra {
		data[key] = value
	}

	_, err := db.AuditLogs().Create(ctx, auditEntry(domain.AuditActionCreate, "transaction", created.ID, actor, data))
	return err
}

// recordFailedAttempt persists a failed transaction row plus an audit entry
// after a posting was rolled back mid-flight. Validation-class rejections and
// retriable conflicts leave no trace, so they are skipped here; the recording
// itself is best effort.
func (s *LedgerService) recordFailedAttempt(ctx context.Context, p posting, recipientID *string, actor models.Actor, cause error) {
	if leavesNoTrace(cause) {
		return
	}

	err := s.uow.Do(ctx, func(ctx context.Context, db repo_interfaces.Session) error {
		reference, err := generateTransactionReference(ctx, db.Transactions())
		if err != nil {
			return err
		}

		failed, err := db.Transactions().Create(ctx, domain.Transaction{
			ReferenceID:        reference,
			TransactionType:    p.transactionType,
			Amount:             p.amount,
			Currency:           p.currency,
			Description:        p.description,
			Status:             domain.TransactionStatusFailed,
			AccountID:          p.accountID,
			RecipientAccountID: recipientID,
			ReversalOfID:       p.reversalOfID,
		})
		if err != nil {
			return err
		}

		_, err = db.AuditLogs().Create(ctx, auditEntry(domain.AuditActionCreate, "transaction", failed.ID, actor, map[string]any{
			"transaction_type": string(p.transactionType),
			"amount":           p.amount.StringFixed(2),
			"currency":         p.currency,
			"account_id":       p.accountID,
			"reference_id":     reference,
			"status":           string(domain.TransactionStatusFailed),
			"reason":           cause.Error(),
		}))
		return err
	})
	if err != nil {
		logger.Error("ledger service record failed attempt", err, logger.Fields{
			"accountId": p.accountID,
		})
	}
}

func lockAccount(ctx context.Context, db repo_interfaces.Session, id string) (domain.Account, error) {
	accounts, err := db.Accounts().LockForUpdate(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}
	if len(accounts) == 0 {
		return domain.Account{}, fmt.Errorf("account %s: %w", id, commons.ErrRecordNotFound)
	}
	return accounts[0], nil
}

func checkAccountForPosting(account domain.Account, currency string) error {
	if !account.IsActive {
		return fmt.Errorf("account %s: %w", account.ID, commons.ErrAccountInactive)
	}
	if !strings.EqualFold(account.Currency, currency) {
		return fmt.Errorf("account %s holds %s: %w", account.ID, account.Currency, commons.ErrCurrencyMismatch)
	}
	return nil
}

func leavesNoTrace(err error) bool {
	return errors.Is(err, commons.ErrValidation) ||
		errors.Is(err, commons.ErrRecordNotFound) ||
		errors.Is(err, commons.ErrAccountInactive) ||
		errors.Is(err, commons.ErrCurrencyMismatch) ||
		errors.Is(err, commons.ErrInsufficientFunds) ||
		errors.Is(err, commons.ErrConcurrencyConflict)
}

func isInflowType(transactionType domain.TransactionType) bool {
	return transactionType == domain.TransactionTypeDeposit || transactionType == domain.TransactionTypeInterest
}

func inverseTransactionType(transactionType domain.TransactionType) domain.TransactionType {
	switch transactionType {
	case domain.TransactionTypeDeposit:
		return domain.TransactionTypeWithdrawal
	case domain.TransactionTypeWithdrawal, domain.TransactionTypePayment:
		return domain.TransactionTypeDeposit
	case domain.TransactionTypeFee:
		return domain.TransactionTypeInterest
	case domain.TransactionTypeInterest:
		return domain.TransactionTypeFee
	default:
		return domain.TransactionTypeTransfer
	}
}

func defaultDescription(description, fallback string) string {
	if trimmed := strings.TrimSpace(description); trimmed != "" {
		return trimmed
	}
	return fallback
}

func buildTransactionFilter(req models.ListTransactionsRequest) (domain.TransactionFilter, error) {
	filter := domain.TransactionFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		MinAmount: req.MinAmount,
		MaxAmount: req.MaxAmount,
		Offset:    req.Offset,
		Limit:     req.Limit,
	}

	if trimmed := strings.TrimSpace(req.TransactionType); trimmed != "" {
		transactionType := domain.TransactionType(strings.ToLower(trimmed))
		switch transactionType {
		case domain.TransactionTypeDeposit, domain.TransactionTypeWithdrawal, domain.TransactionTypeTransfer,
			domain.TransactionTypePayment, domain.TransactionTypeFee, domain.TransactionTypeInterest:
			filter.TransactionType = &transactionType
		default:
			return domain.TransactionFilter{}, fmt.Errorf("unknown transaction type %q", trimmed)
		}
	}
	if trimmed := strings.TrimSpace(req.Status); trimmed != "" {
		status := domain.TransactionStatus(strings.ToLower(trimmed))
		switch status {
		case domain.TransactionStatusPending, domain.TransactionStatusCompleted,
			domain.TransactionStatusFailed, domain.TransactionStatusReversed:
			filter.Status = &status
		default:
			return domain.TransactionFilter{}, fmt.Errorf("unknown transaction status %q", trimmed)
		}
	}
	return filter, nil
}
