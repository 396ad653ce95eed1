package services

import (
	"context"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/dto"
)

// CandidateSvcFacade surfaces recurring patterns detected in bank history.
type CandidateSvcFacade interface {
	// ListCandidates returns detected patterns that match no definition and were not dismissed.
	ListCandidates(ctx context.Context, userID string) ([]domain.RecurrenceCandidate, error)

	// AcceptCandidate turns a candidate into a recurring definition.
	AcceptCandidate(ctx context.Context, userID string, candidateID string, req dto.AcceptCandidateRequest) (*domain.RecurringDefinition, int, error)

	// DismissCandidate hides a candidate for good.
	DismissCandidate(ctx context.Context, userID string, candidateID string) error
}
