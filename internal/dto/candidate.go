package dto

import (
	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AcceptCandidateRequest lets the user adjust a detected pattern before it becomes a
// recurring definition. Every field is optional and defaults to the detected value.
type AcceptCandidateRequest struct {
	Name       *string           `json:"name"`
	Amount     *decimal.Decimal  `json:"amount"`
	Category   *string           `json:"category"`
	Frequency  *domain.Frequency `json:"frequency" binding:"omitempty,oneof=daily weekly biweekly monthly quarterly semiannual annual"`
	DayOfMonth *int              `json:"dayOfMonth" binding:"omitempty,min=1,max=31"`
}

// ListCandidatesResponse wraps the surfaced candidates.
type ListCandidatesResponse struct {
	Candidates []domain.RecurrenceCandidate `json:"candidates"`
}
