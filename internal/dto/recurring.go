package dto

import (
	"time"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRecurringRequest defines the data needed to declare a recurring definition.
// Amount sign is normalized from the category; transfers take a positive amount.
type CreateRecurringRequest struct {
	Name               string                 `json:"name" binding:"required"`
	Amount             decimal.Decimal        `json:"amount"`
	Category           string                 `json:"category"`
	Frequency          domain.Frequency       `json:"frequency" binding:"required,oneof=daily weekly biweekly monthly quarterly semiannual annual"`
	DayOfMonth         int                    `json:"dayOfMonth" binding:"required,min=1,max=31"`
	SourceAccount      string                 `json:"sourceAccount" binding:"required"`
	DestinationAccount string                 `json:"destinationAccount"`
	Kind               domain.TransactionKind `json:"kind" binding:"omitempty,oneof=normal transfer"` // defaults to normal
}

// UpdateRecurringRequest defines the fields allowed when editing a definition.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateRecurringRequest struct {
	Name               *string           `json:"name"`
	Amount             *decimal.Decimal  `json:"amount"`
	Category           *string           `json:"category"`
	Frequency          *domain.Frequency `json:"frequency" binding:"omitempty,oneof=daily weekly biweekly monthly quarterly semiannual annual"`
	DayOfMonth         *int              `json:"dayOfMonth" binding:"omitempty,min=1,max=31"`
	SourceAccount      *string           `json:"sourceAccount"`
	DestinationAccount *string           `json:"destinationAccount"`
}

// RecurringResponse defines the data returned for a recurring definition.
type RecurringResponse struct {
	ID                 string                 `json:"id"`
	Name               string                 `json:"name"`
	Amount             decimal.Decimal        `json:"amount"`
	Category           string                 `json:"category"`
	Frequency          domain.Frequency       `json:"frequency"`
	FrequencyLabel     string                 `json:"frequencyLabel"`
	DayOfMonth         int                    `json:"dayOfMonth"`
	SourceAccount      string                 `json:"sourceAccount"`
	DestinationAccount string                 `json:"destinationAccount,omitempty"`
	Kind               domain.TransactionKind `json:"kind"`
	CreatedAt          time.Time              `json:"createdAt"`
	LastUpdatedAt      time.Time              `json:"lastUpdatedAt"`
}

// RecurringMutationResponse is returned by create and update: the definition and
// what happened to its instances.
type RecurringMutationResponse struct {
	Definition       RecurringResponse `json:"definition"`
	InstancesCreated int               `json:"instancesCreated"`
	InstancesDeleted int               `json:"instancesDeleted"`
}

// DeleteRecurringResponse reports the instances removed with a definition.
type DeleteRecurringResponse struct {
	InstancesDeleted int `json:"instancesDeleted"`
}

// GenerateResponse reports a generation run.
type GenerateResponse struct {
	InstancesCreated int `json:"instancesCreated"`
}

// ToRecurringResponse converts a domain.RecurringDefinition to RecurringResponse DTO
func ToRecurringResponse(d *domain.RecurringDefinition) RecurringResponse {
	return RecurringResponse{
		ID:                 d.ID,
		Name:               d.Name,
		Amount:             d.Amount,
		Category:           d.Category,
		Frequency:          d.Frequency,
		FrequencyLabel:     d.Frequency.Label(),
		DayOfMonth:         d.DayOfMonth,
		SourceAccount:      d.SourceAccount,
		DestinationAccount: d.DestinationAccount,
		Kind:               d.Kind,
		CreatedAt:          d.CreatedAt,
		LastUpdatedAt:      d.LastUpdatedAt,
	}
}

// ToListRecurringResponse converts definitions to their DTOs
func ToListRecurringResponse(defs []domain.RecurringDefinition) []RecurringResponse {
	res := make([]RecurringResponse, len(defs))
	for i := range defs {
		res[i] = ToRecurringResponse(&defs[i])
	}
	return res
}
