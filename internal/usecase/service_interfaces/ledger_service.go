package service_interfaces

import (
	"context"

	"github.com/api-sage/core-banking/internal/adapter/http/models"
	"github.com/api-sage/core-banking/internal/commons"
)

// LedgerService is the public face of the ledger engine. Every operation
// returns a finalized transaction; pending is never observable outside a
// unit of work.
type LedgerService interface {
	Deposit(ctx context.Context, req models.DepositRequest, actor models.Actor) (commons.Response[models.TransactionResponse], error)
	Withdraw(ctx context.Context, req models.WithdrawalRequest, actor models.Actor) (commons.Response[models.TransactionResponse], error)
	Transfer(ctx context.Context, req models.TransferRequest, actor models.Actor) (commons.Response[models.TransactionResponse], error)
	Pay(ctx context.Context, req models.PaymentRequest, actor models.Actor) (commons.Response[models.TransactionResponse], error)
	ApplyFee(ctx context.Context, req models.FeeRequest, actor models.Actor) (commons.Response[models.TransactionResponse], error)
	ApplyInterest(ctx context.Context, req models.InterestRequest, actor models.Actor) (commons.Response[models.TransactionResponse], error)
	Reverse(ctx context.Context, transactionID string, actor models.Actor) (commons.Response[models.TransactionResponse], error)

	GetTransaction(ctx context.Context, id string) (commons.Response[models.TransactionResponse], error)
	GetTransactionByReference(ctx context.Context, referenceID string) (commons.Response[models.TransactionResponse], error)
	ListAccountTransactions(ctx context.Context, accountID string, req models.ListTransactionsRequest) (commons.Response[models.TransactionListResponse], error)
}
