package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus says whether a transaction has already happened.
type TransactionStatus string

const (
	Realized TransactionStatus = "realized"
	Upcoming TransactionStatus = "upcoming"
)

// ParseStatus maps every spelling found in stored documents onto the status enum.
// The second return value is false for unknown spellings.
func ParseStatus(s string) (TransactionStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "realized", "realise", "réalisé", "realisee", "réalisée":
		return Realized, true
	case "upcoming", "a_venir", "avenir", "à venir", "a venir":
		return Upcoming, true
	}
	return "", false
}

// UnmarshalJSON accepts legacy spellings; unknown values decode to the empty status.
func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = ""
		return nil
	}
	parsed, _ := ParseStatus(raw)
	*s = parsed
	return nil
}

// TransactionKind distinguishes plain movements from transfer legs.
type TransactionKind string

const (
	Normal   TransactionKind = "normal"
	Transfer TransactionKind = "transfer"
)

// Transaction is a dated, signed movement on one account.
// A transfer always exists as two legs on different accounts whose LinkedTransferID
// point at each other and whose amounts are exact negatives.
type Transaction struct {
	ID                string            `json:"id"`
	Date              time.Time         `json:"date"`
	Description       string            `json:"description"`
	Amount            decimal.Decimal   `json:"amount"`
	Category          string            `json:"category"`
	AccountID         string            `json:"account"`
	Status            TransactionStatus `json:"status"`
	Kind              TransactionKind   `json:"kind"`
	OriginRecurringID string            `json:"originRecurringId,omitempty"`
	LinkedTransferID  string            `json:"linkedTransferId,omitempty"`
	IsBankSynced      bool              `json:"isBankSynced"`
	IsProjection      bool              `json:"isProjection"`
	ExternalID        string            `json:"externalId,omitempty"` // provider transaction id for bank-synced rows
}

func (t Transaction) IsRealized() bool { return t.Status == Realized }
func (t Transaction) IsUpcoming() bool { return t.Status == Upcoming }
func (t Transaction) IsTransfer() bool { return t.Kind == Transfer }

// IsGenerated reports whether the transaction was expanded from a recurring definition.
func (t Transaction) IsGenerated() bool { return t.OriginRecurringID != "" }

// HasDate is false for records whose date could not be decoded.
func (t Transaction) HasDate() bool { return !t.Date.IsZero() }

// UnmarshalJSON decodes a transaction without failing on a bad date or amount:
// those fields fall back to their zero values so the record contributes nothing.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type alias Transaction
	aux := struct {
		*alias
		Date   json.RawMessage `json:"date"`
		Amount json.RawMessage `json:"amount"`
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.Date = parseLenientDate(aux.Date)
	t.Amount = parseLenientAmount(aux.Amount)
	return nil
}

var lenientDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
}

func parseLenientDate(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}
	}
	s = strings.TrimSpace(s)
	for _, layout := range lenientDateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d
		}
	}
	return time.Time{}
}

func parseLenientAmount(raw json.RawMessage) decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero
	}
	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero
		}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
