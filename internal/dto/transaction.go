package dto

import (
	"time"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID                string                   `json:"id"`
	Date              time.Time                `json:"date"`
	Description       string                   `json:"description"`
	Amount            decimal.Decimal          `json:"amount"`
	Category          string                   `json:"category"`
	AccountID         string                   `json:"accountID"`
	Status            domain.TransactionStatus `json:"status"`
	Kind              domain.TransactionKind   `json:"kind"`
	OriginRecurringID string                   `json:"originRecurringId,omitempty"`
	LinkedTransferID  string                   `json:"linkedTransferId,omitempty"`
	IsBankSynced      bool                     `json:"isBankSynced"`
	IsProjection      bool                     `json:"isProjection"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int                      `form:"limit,default=50" binding:"min=1,max=500"`
	NextToken string                   `form:"nextToken"`
	AccountID string                   `form:"accountID"`
	Status    domain.TransactionStatus `form:"status" binding:"omitempty,oneof=realized upcoming"`
}

// ListTransactionsResponse is one page of transactions, newest first.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    string                `json:"nextToken,omitempty"`
}

// CreateTransferRequest defines a manual transfer between two accounts.
type CreateTransferRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required,nefield=FromAccountID"`
	Amount        decimal.Decimal `json:"amount"` // magnitude; must be positive
	Date          time.Time       `json:"date" binding:"required"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
}

// DeleteTransactionResponse lists every id removed, including a transfer's other leg.
type DeleteTransactionResponse struct {
	DeletedIDs []string `json:"deletedIDs"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                txn.ID,
		Date:              txn.Date,
		Description:       txn.Description,
		Amount:            txn.Amount,
		Category:          txn.Category,
		AccountID:         txn.AccountID,
		Status:            txn.Status,
		Kind:              txn.Kind,
		OriginRecurringID: txn.OriginRecurringID,
		LinkedTransferID:  txn.LinkedTransferID,
		IsBankSynced:      txn.IsBankSynced,
		IsProjection:      txn.IsProjection,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
