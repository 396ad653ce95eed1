package services

import (
	"context"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/dto"
)

// TransactionSvcFacade defines operations on individual transactions.
type TransactionSvcFacade interface {
	// ListTransactions returns one page of transactions, newest first.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, string, error)

	// CreateTransfer records a manual transfer as two linked legs.
	CreateTransfer(ctx context.Context, userID string, req dto.CreateTransferRequest) ([]domain.Transaction, error)

	// DeleteTransaction removes a transaction and, for a transfer, its other leg.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) ([]string, error)
}
