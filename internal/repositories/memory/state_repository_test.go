package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/money_forecast/internal/apperrors"
	"github.com/SscSPs/money_forecast/internal/core/domain"
	"github.com/SscSPs/money_forecast/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestStateRepository_LoadMissing(t *testing.T) {
	repo := memory.NewStateRepository()

	_, err := repo.LoadState(context.Background(), "nobody")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStateRepository_RoundTripAndVersioning(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStateRepository()

	st := domain.NewUserState("u1", now)
	st.Accounts = append(st.Accounts, domain.Account{AccountID: "chk", Name: "Courant", Kind: domain.Checking, OpeningBalance: decimal.RequireFromString("12.34")})
	require.NoError(t, repo.SaveState(ctx, st))
	assert.Equal(t, int64(1), st.Version)

	loaded, err := repo.LoadState(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), loaded.Version)
	require.Len(t, loaded.Accounts, 1)
	assert.True(t, decimal.RequireFromString("12.34").Equal(loaded.Accounts[0].OpeningBalance))

	// mutating the loaded copy does not touch the stored one
	loaded.Accounts[0].Name = "Changed"
	again, err := repo.LoadState(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Courant", again.Accounts[0].Name)

	require.NoError(t, repo.SaveState(ctx, loaded))
	assert.Equal(t, int64(2), loaded.Version)
}

func TestStateRepository_StaleWriteConflicts(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStateRepository()
	require.NoError(t, repo.SaveState(ctx, domain.NewUserState("u1", now)))

	first, err := repo.LoadState(ctx, "u1")
	require.NoError(t, err)
	second, err := repo.LoadState(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, repo.SaveState(ctx, first))
	err = repo.SaveState(ctx, second)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// a fresh document cannot overwrite an existing one
	err = repo.SaveState(ctx, domain.NewUserState("u1", now))
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestStateRepository_ConcurrentWritersOneWins(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStateRepository()
	require.NoError(t, repo.SaveState(ctx, domain.NewUserState("u1", now)))

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	states := make([]*domain.UserState, writers)
	for i := range states {
		st, err := repo.LoadState(ctx, "u1")
		require.NoError(t, err)
		states[i] = st
	}
	for _, st := range states {
		wg.Add(1)
		go func(st *domain.UserState) {
			defer wg.Done()
			if repo.SaveState(ctx, st) == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(st)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}

func TestStateRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStateRepository()
	require.NoError(t, repo.SaveState(ctx, domain.NewUserState("u1", now)))

	require.NoError(t, repo.DeleteState(ctx, "u1"))
	assert.ErrorIs(t, repo.DeleteState(ctx, "u1"), apperrors.ErrNotFound)
	_, err := repo.LoadState(ctx, "u1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
