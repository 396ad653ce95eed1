package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/money_forecast/internal/apperrors"
	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/core/forecast"
	portsrepo "github.com/SscSPs/money_forecast/internal/core/ports/repositories"
	"github.com/SscSPs/money_forecast/internal/core/recurrence"
	"github.com/google/uuid"
)

// StateStore loads, mutates and saves the per-user document. Every mutation runs on
// a clone and is saved in one write, so readers never observe a partial change.
type StateStore struct {
	BaseService
	repo       portsrepo.StateRepositoryFacade
	now        func() time.Time
	newID      func() string
	generator  *recurrence.Generator
	reconciler *forecast.Reconciler
}

// StoreOption is a functional option for configuring the state store
type StoreOption func(*StateStore)

// WithClock overrides the time source shared by every service.
func WithClock(now func() time.Time) StoreOption {
	return func(s *StateStore) {
		s.now = now
	}
}

// WithIDGenerator overrides how entity ids are minted.
func WithIDGenerator(newID func() string) StoreOption {
	return func(s *StateStore) {
		s.newID = newID
	}
}

// WithReconciler overrides the balance reconciler.
func WithReconciler(r *forecast.Reconciler) StoreOption {
	return func(s *StateStore) {
		s.reconciler = r
	}
}

// NewStateStore creates a store over repo.
func NewStateStore(repo portsrepo.StateRepositoryFacade, options ...StoreOption) *StateStore {
	s := &StateStore{
		repo:       repo,
		now:        time.Now,
		newID:      uuid.NewString,
		reconciler: forecast.NewReconciler(),
	}
	for _, option := range options {
		option(s)
	}
	s.generator = recurrence.NewGenerator(recurrence.WithClock(s.now), recurrence.WithIDGenerator(s.newID))
	return s
}

// Now is the store's notion of the current time.
func (s *StateStore) Now() time.Time { return s.now() }

// NewID mints an entity id.
func (s *StateStore) NewID() string { return s.newID() }

// Generator returns the recurrence generator bound to the store's clock.
func (s *StateStore) Generator() *recurrence.Generator { return s.generator }

// Reconciler returns the balance reconciler.
func (s *StateStore) Reconciler() *forecast.Reconciler { return s.reconciler }

func (s *StateStore) load(ctx context.Context, userID string) (*domain.UserState, error) {
	st, err := s.repo.LoadState(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.LogDebug(ctx, "No state yet, starting a new document", slog.String("user_id", userID))
		return domain.NewUserState(userID, s.now()), nil
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to load state", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load state for user %s: %w", userID, err)
	}
	return st, nil
}

// Current returns the user's document after housekeeping. When housekeeping changed
// something (due instances promoted, year rollover) the result is saved first.
func (s *StateStore) Current(ctx context.Context, userID string) (*domain.UserState, error) {
	st, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	next := st.Clone()
	if !s.housekeep(ctx, next) {
		return next, nil
	}
	if err := s.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Commit applies mutate to a copy of the user's document, runs housekeeping and saves
// the result. When mutate fails nothing is written.
func (s *StateStore) Commit(ctx context.Context, userID string, mutate func(st *domain.UserState) error) (*domain.UserState, error) {
	st, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	next := st.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	s.housekeep(ctx, next)
	if err := s.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// housekeep promotes due instances, then rolls the document into the current year
// when needed (filling the new year's instances) and refreshes cached balances. It
// reports whether the document content changed.
func (s *StateStore) housekeep(ctx context.Context, st *domain.UserState) bool {
	now := s.now()
	changed := false
	// last year's instances must be realized before their year is closed
	if n := recurrence.PromoteDue(st.Transactions, now); n > 0 {
		s.LogDebug(ctx, "Promoted due instances", slog.String("user_id", st.UserID), slog.Int("count", n))
		changed = true
	}
	if forecast.NeedsRollover(st, now) {
		res := s.reconciler.Rollover(st, now)
		created := s.generator.Generate(st, st.RecurringDefinitions)
		st.Transactions = append(st.Transactions, created...)
		s.LogInfo(ctx, "Annual rollover applied",
			slog.String("user_id", st.UserID),
			slog.Int("year", res.Year),
			slog.Int("accounts_adjusted", len(res.Adjustments)),
			slog.Int("instances_created", len(created)))
		changed = true
	}
	s.reconciler.RefreshBalanceCache(st, now)
	return changed
}

func (s *StateStore) save(ctx context.Context, st *domain.UserState) error {
	st.UpdatedAt = s.now()
	if err := s.repo.SaveState(ctx, st); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogInfo(ctx, "State changed concurrently", slog.String("user_id", st.UserID), slog.Int64("version", st.Version))
			return err
		}
		s.LogError(ctx, err, "Failed to save state", slog.String("user_id", st.UserID))
		return fmt.Errorf("failed to save state for user %s: %w", st.UserID, err)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
