package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/models"
)

// ToModelUserState converts a domain UserState to a model UserState
func ToModelUserState(d *domain.UserState) (models.UserState, error) {
	doc, err := json.Marshal(d)
	if err != nil {
		return models.UserState{}, fmt.Errorf("failed to encode state of user %s: %w", d.UserID, err)
	}
	created := d.UpdatedAt
	if d.AccountCreationDate != nil {
		created = *d.AccountCreationDate
	}
	return models.UserState{
		UserID:    d.UserID,
		Document:  doc,
		Version:   d.Version,
		CreatedAt: created,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

// ToDomainUserState converts a model UserState to a domain UserState.
// Records with an unreadable date or amount decode to zero values instead of failing.
func ToDomainUserState(m models.UserState) (*domain.UserState, error) {
	var d domain.UserState
	if err := json.Unmarshal(m.Document, &d); err != nil {
		return nil, fmt.Errorf("failed to decode state of user %s: %w", m.UserID, err)
	}
	d.UserID = m.UserID
	d.Version = m.Version
	if d.RolloverProcessed == nil {
		d.RolloverProcessed = map[string]int{}
	}
	if len(d.Categories) == 0 {
		d.Categories = domain.DefaultCategories()
	}
	return &d, nil
}
