package services

import (
	"context"
	"time"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Categorizer assigns a category name to a bank movement from its description.
type Categorizer interface {
	Categorize(description string, amount decimal.Decimal) string
}

// ImportSvcFacade brings bank movements into the state document.
type ImportSvcFacade interface {
	// SyncBankTransactions fetches movements dated on or after since and stores the new ones.
	SyncBankTransactions(ctx context.Context, userID string, since time.Time) (*domain.ImportSummary, error)
}
