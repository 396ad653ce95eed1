package services

import (
	"context"

	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/core/recurrence"
	"github.com/SscSPs/money_forecast/internal/dto"
)

// RecurringReaderSvc defines read operations for recurring definitions
type RecurringReaderSvc interface {
	ListRecurring(ctx context.Context, userID string) ([]domain.RecurringDefinition, error)
}

// RecurringWriterSvc defines the mutation engine of recurring definitions
type RecurringWriterSvc interface {
	// CreateRecurring validates and stores a definition, then generates its instances.
	// It returns the stored definition and the number of instances created.
	CreateRecurring(ctx context.Context, userID string, req dto.CreateRecurringRequest) (*domain.RecurringDefinition, int, error)

	// UpdateRecurring patches a definition and regenerates its instances in the same commit.
	UpdateRecurring(ctx context.Context, userID string, id string, req dto.UpdateRecurringRequest) (*domain.RecurringDefinition, recurrence.Plan, error)

	// DeleteRecurring removes a definition with all its instances and returns how many
	// transactions were removed.
	DeleteRecurring(ctx context.Context, userID string, id string) (int, error)

	// GenerateAll fills the missing instances of every definition for the current year.
	GenerateAll(ctx context.Context, userID string) (int, error)
}

// RecurringSvcFacade combines all recurring-related service interfaces
type RecurringSvcFacade interface {
	RecurringReaderSvc
	RecurringWriterSvc
}
