package dto

import (
	"time"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	Kind           domain.AccountKind `json:"kind" binding:"required,oneof=checking savings cash investment"`
	CurrencyCode   string             `json:"currencyCode" binding:"omitempty,len=3"` // defaults to EUR
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	ExternalID     string             `json:"externalID"` // provider account id for bank-synced accounts
}

// UpdateAccountVisibilityRequest toggles whether an account counts in totals.
type UpdateAccountVisibilityRequest struct {
	Hidden *bool `json:"hidden" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID          string             `json:"accountID"`
	Name               string             `json:"name"`
	Kind               domain.AccountKind `json:"kind"`
	CurrencyCode       string             `json:"currencyCode"`
	OpeningBalance     decimal.Decimal    `json:"openingBalance"`
	OpeningBalanceYear int                `json:"openingBalanceYear"`
	CurrentBalance     *decimal.Decimal   `json:"currentBalance,omitempty"`
	FormattedBalance   string             `json:"formattedBalance,omitempty"`
	Hidden             bool               `json:"hidden"`
	ExternallySynced   bool               `json:"externallySynced"`
	ExternalID         string             `json:"externalID,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	CreatedBy          string             `json:"createdBy"`
	LastUpdatedAt      time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy      string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	res := AccountResponse{
		AccountID:          acc.AccountID,
		Name:               acc.Name,
		Kind:               acc.Kind,
		CurrencyCode:       acc.CurrencyCode,
		OpeningBalance:     acc.OpeningBalance,
		OpeningBalanceYear: acc.OpeningBalanceYear,
		CurrentBalance:     acc.CurrentBalanceCache,
		Hidden:             acc.Hidden,
		ExternallySynced:   acc.ExternallySynced,
		ExternalID:         acc.ExternalID,
		CreatedAt:          acc.CreatedAt,
		CreatedBy:          acc.CreatedBy,
		LastUpdatedAt:      acc.LastUpdatedAt,
		LastUpdatedBy:      acc.LastUpdatedBy,
	}
	if acc.CurrentBalanceCache != nil {
		res.FormattedBalance = utils.FormatWithCurrencyPrecision(*acc.CurrentBalanceCache, acc.CurrencyCode)
	}
	return res
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
