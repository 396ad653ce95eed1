package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/money_forecast/internal/apperrors"
	"github.com/SscSPs/money_forecast/internal/core/domain"
	portsrepo "github.com/SscSPs/money_forecast/internal/core/ports/repositories"
	"github.com/SscSPs/money_forecast/internal/models"
	"github.com/SscSPs/money_forecast/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStateRepository struct {
	BaseRepository
}

// newPgxStateRepository creates a new repository for per-user state documents.
func newPgxStateRepository(pool *pgxpool.Pool) portsrepo.StateRepositoryWithTx {
	return &PgxStateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.StateRepositoryWithTx = (*PgxStateRepository)(nil)

// LoadState retrieves the document of a user with its version.
func (r *PgxStateRepository) LoadState(ctx context.Context, userID string) (*domain.UserState, error) {
	query := `
		SELECT user_id, document, version, created_at, updated_at
		FROM user_states
		WHERE user_id = $1;
	`
	var modelState models.UserState
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&modelState.UserID,
		&modelState.Document,
		&modelState.Version,
		&modelState.CreatedAt,
		&modelState.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load state for user %s: %w", userID, err)
	}

	return mapping.ToDomainUserState(modelState)
}

// SaveState writes the whole document. A document with version 0 is inserted; any
// other is updated only if the stored version still matches.
func (r *PgxStateRepository) SaveState(ctx context.Context, state *domain.UserState) error {
	modelState, err := mapping.ToModelUserState(state)
	if err != nil {
		return err
	}

	var newVersion int64
	err = r.WithTx(ctx, func(tx pgx.Tx) error {
		var row pgx.Row
		if modelState.Version == 0 {
			query := `
				INSERT INTO user_states (user_id, document, version, created_at, updated_at)
				VALUES ($1, $2, 1, $3, $4)
				ON CONFLICT (user_id) DO NOTHING
				RETURNING version;
			`
			row = tx.QueryRow(ctx, query,
				modelState.UserID,
				modelState.Document,
				modelState.CreatedAt,
				modelState.UpdatedAt,
			)
		} else {
			query := `
				UPDATE user_states
				SET document = $2, version = version + 1, updated_at = $3
				WHERE user_id = $1 AND version = $4
				RETURNING version;
			`
			row = tx.QueryRow(ctx, query,
				modelState.UserID,
				modelState.Document,
				modelState.UpdatedAt,
				modelState.Version,
			)
		}
		if err := row.Scan(&newVersion); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: user %s at version %d", apperrors.ErrConflict, state.UserID, state.Version)
			}
			return fmt.Errorf("failed to save state for user %s: %w", state.UserID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	state.Version = newVersion
	return nil
}

// DeleteState removes the document of a user.
func (r *PgxStateRepository) DeleteState(ctx context.Context, userID string) error {
	query := `DELETE FROM user_states WHERE user_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete state for user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
