package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind defines what an account holds.
type AccountKind string

const (
	Checking   AccountKind = "checking"
	Savings    AccountKind = "savings"
	Cash       AccountKind = "cash"
	Investment AccountKind = "investment"
)

// Valid reports whether k is one of the known account kinds.
func (k AccountKind) Valid() bool {
	switch k {
	case Checking, Savings, Cash, Investment:
		return true
	}
	return false
}

// Account represents a bank, cash or savings account owned by the user.
// OpeningBalance is the balance at the start of OpeningBalanceYear (or at creation
// for an account opened during that year); only the annual rollover changes it.
type Account struct {
	AccountID           string           `json:"accountID"`
	Name                string           `json:"name"`
	Kind                AccountKind      `json:"kind"`
	CurrencyCode        string           `json:"currencyCode"`
	OpeningBalance      decimal.Decimal  `json:"openingBalance"`
	OpeningBalanceYear  int              `json:"openingBalanceYear"`
	CurrentBalanceCache *decimal.Decimal `json:"currentBalanceCache,omitempty"`
	Hidden              bool             `json:"hidden"`
	ExternallySynced    bool             `json:"externallySynced"`
	ExternalID          string           `json:"externalID,omitempty"` // account id at the aggregation provider
	AuditFields
}

// BaseYear returns the fiscal year OpeningBalance refers to.
func (a Account) BaseYear() int {
	if a.OpeningBalanceYear != 0 {
		return a.OpeningBalanceYear
	}
	if !a.CreatedAt.IsZero() {
		return a.CreatedAt.Year()
	}
	return 0
}
