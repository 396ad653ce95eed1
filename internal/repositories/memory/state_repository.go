// Package memory keeps state documents in process memory. It backs tests and the
// STORAGE_DRIVER=memory mode used for local development.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/money_forecast/internal/apperrors"
	"github.com/SscSPs/money_forecast/internal/core/domain"
	portsrepo "github.com/SscSPs/money_forecast/internal/core/ports/repositories"
	"github.com/SscSPs/money_forecast/internal/models"
	"github.com/SscSPs/money_forecast/internal/utils/mapping"
)

// StateRepository stores each document serialized, the way the database does, so a
// caller never shares memory with the stored copy.
type StateRepository struct {
	mu   sync.RWMutex
	rows map[string]models.UserState
}

// NewStateRepository creates an empty store.
func NewStateRepository() *StateRepository {
	return &StateRepository{rows: make(map[string]models.UserState)}
}

var _ portsrepo.StateRepositoryFacade = (*StateRepository)(nil)

func (r *StateRepository) LoadState(ctx context.Context, userID string) (*domain.UserState, error) {
	r.mu.RLock()
	row, ok := r.rows[userID]
	r.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return mapping.ToDomainUserState(row)
}

func (r *StateRepository) SaveState(ctx context.Context, state *domain.UserState) error {
	row, err := mapping.ToModelUserState(state)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	current, exists := r.rows[state.UserID]
	switch {
	case !exists && state.Version != 0, exists && current.Version != state.Version:
		return fmt.Errorf("%w: user %s at version %d", apperrors.ErrConflict, state.UserID, state.Version)
	}
	if exists {
		row.CreatedAt = current.CreatedAt
	}
	row.Version = state.Version + 1
	r.rows[state.UserID] = row
	state.Version = row.Version
	return nil
}

func (r *StateRepository) DeleteState(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[userID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.rows, userID)
	return nil
}

// NewRepositoryProvider builds in-memory repositories. bankSource may be nil.
func NewRepositoryProvider(bankSource portsrepo.BankTransactionReader) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		StateRepo:  NewStateRepository(),
		BankSource: bankSource,
	}
}
