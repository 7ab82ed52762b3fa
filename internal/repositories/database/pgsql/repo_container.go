package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository owns the pool shared by the PostgreSQL repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Close releases the pool. pgxpool closes synchronously, so ctx is unused.
func (r *BaseRepository) Close(_ context.Context) error {
	r.Pool.Close()
	return nil
}

// NewRepositoryProvider builds the PostgreSQL-backed repositories over one pool.
// The app_state table must already be migrated.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		StateRepo: newPgxStateRepository(dbPool),
	}
}
