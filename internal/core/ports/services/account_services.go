package services

import (
	"context"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// ListAccounts returns the user's accounts with their cached current balance.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount adds an account whose opening balance refers to the current year.
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// SetAccountHidden toggles whether the account counts in dashboard totals.
	SetAccountHidden(ctx context.Context, userID string, accountID string, hidden bool) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
