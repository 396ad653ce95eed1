package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction is a raw movement as supplied by the aggregation provider.
// AccountID is the provider's account id, matched against Account.ExternalID.
type BankTransaction struct {
	ID          string
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	AccountID   string
}

// ImportSummary reports what a bank synchronization did.
type ImportSummary struct {
	Fetched    int `json:"fetched"`
	Imported   int `json:"imported"`
	Duplicates int `json:"duplicates"`
	Unmatched  int `json:"unmatched"` // no local account carries the provider account id
}
