package recurrence

import (
	"time"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferSpec describes both legs of a transfer.
type TransferSpec struct {
	OutID       string
	InID        string
	Date        time.Time
	Description string
	Category    string
	Amount      decimal.Decimal // magnitude; the sign is applied per leg
	Source      string
	Destination string
	Status      domain.TransactionStatus
	OriginID    string
}

// NewTransferPair returns the outgoing leg (negative, on Source) followed by the
// incoming leg (positive, on Destination), each pointing at the other.
func NewTransferPair(spec TransferSpec) []domain.Transaction {
	magnitude := spec.Amount.Abs()
	leg := func(id, account, linked string, amount decimal.Decimal) domain.Transaction {
		return domain.Transaction{
			ID:                id,
			Date:              spec.Date,
			Description:       spec.Description,
			Amount:            amount,
			Category:          spec.Category,
			AccountID:         account,
			Status:            spec.Status,
			Kind:              domain.Transfer,
			OriginRecurringID: spec.OriginID,
			LinkedTransferID:  linked,
		}
	}
	return []domain.Transaction{
		leg(spec.OutID, spec.Source, spec.InID, magnitude.Neg()),
		leg(spec.InID, spec.Destination, spec.OutID, magnitude),
	}
}

// RemoveWithLinkedLegs drops the transactions whose id is in ids together with the
// other leg of any transfer among them. It returns the remaining transactions and the
// ids actually removed.
func RemoveWithLinkedLegs(txns []domain.Transaction, ids []string) ([]domain.Transaction, []string) {
	doomed := make(map[string]bool, len(ids)*2)
	for _, id := range ids {
		doomed[id] = true
	}
	for _, t := range txns {
		if !doomed[t.ID] {
			continue
		}
		if t.LinkedTransferID != "" {
			doomed[t.LinkedTransferID] = true
		}
	}
	// legs that point at a doomed transaction go too
	for _, t := range txns {
		if t.LinkedTransferID != "" && doomed[t.LinkedTransferID] {
			doomed[t.ID] = true
		}
	}

	kept := make([]domain.Transaction, 0, len(txns))
	var removed []string
	for _, t := range txns {
		if doomed[t.ID] {
			removed = append(removed, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	return kept, removed
}

// RemoveByOrigin drops every instance generated from the given definition.
func RemoveByOrigin(txns []domain.Transaction, definitionID string) ([]domain.Transaction, []string) {
	var ids []string
	for _, t := range txns {
		if t.OriginRecurringID == definitionID {
			ids = append(ids, t.ID)
		}
	}
	return RemoveWithLinkedLegs(txns, ids)
}
