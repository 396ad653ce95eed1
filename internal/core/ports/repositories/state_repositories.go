package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/money_forecast/internal/core/domain"
)

// StateReader defines read operations for the per-user state document.
type StateReader interface {
	// LoadState returns the document of userID with its current Version.
	// It returns apperrors.ErrNotFound when the user has no document yet.
	LoadState(ctx context.Context, userID string) (*domain.UserState, error)
}

// StateWriter defines write operations for the per-user state document.
type StateWriter interface {
	// SaveState writes the whole document if its Version still matches the stored one
	// (0 for a document that was never saved) and increments state.Version.
	// A stale version yields apperrors.ErrConflict.
	SaveState(ctx context.Context, state *domain.UserState) error

	// DeleteState removes the document of userID.
	DeleteState(ctx context.Context, userID string) error
}

// StateRepositoryFacade combines all state repository interfaces.
type StateRepositoryFacade interface {
	StateReader
	StateWriter
}

// BankTransactionReader is the aggregation provider seen from the core: an opaque
// fetch of raw bank movements.
type BankTransactionReader interface {
	// FetchTransactions returns the movements of userID's connected accounts dated on
	// or after since.
	FetchTransactions(ctx context.Context, userID string, since time.Time) ([]domain.BankTransaction, error)
}
