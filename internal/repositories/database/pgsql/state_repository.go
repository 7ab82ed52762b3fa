package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/isp_bookkeeping_app/internal/apperrors"
	portsrepo "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/isp_bookkeeping_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStateRepository struct {
	BaseRepository
}

// newPgxStateRepository creates a new repository for collection blobs.
func newPgxStateRepository(pool *pgxpool.Pool) portsrepo.StateRepositoryFacade {
	return &PgxStateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.StateRepositoryFacade = (*PgxStateRepository)(nil)

// Get retrieves the blob stored under key.
func (r *PgxStateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT key, value, updated_at
		FROM app_state
		WHERE key = $1;
	`
	var row models.AppState
	err := r.Pool.QueryRow(ctx, query, key).Scan(&row.Key, &row.Value, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find state %s: %w", key, err)
	}
	return row.Value, nil
}

// Set inserts or replaces the blob stored under key.
func (r *PgxStateRepository) Set(ctx context.Context, key string, blob []byte) error {
	query := `
		INSERT INTO app_state (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at;
	`
	// value is jsonb; passing a string lets postgres parse it as JSON text
	if _, err := r.Pool.Exec(ctx, query, key, string(blob), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save state %s: %w", key, err)
	}
	return nil
}
