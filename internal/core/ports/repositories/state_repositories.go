package repositories

import (
	"context"
)

// Collection keys, one per persisted collection.
const (
	KeyCustomers    = "customers"
	KeyTransactions = "transactions"
	KeySettings     = "settings"
	KeyInvestors    = "investors"
)

// StateKeys lists every collection key in load order.
var StateKeys = []string{KeyCustomers, KeyTransactions, KeySettings, KeyInvestors}

// StateReader defines read operations for persisted collection blobs
type StateReader interface {
	// Get returns the JSON blob stored under key, or apperrors.ErrNotFound if there is none.
	Get(ctx context.Context, key string) ([]byte, error)
}

// StateWriter defines write operations for persisted collection blobs
type StateWriter interface {
	// Set replaces the blob stored under key.
	Set(ctx context.Context, key string, blob []byte) error
}

// StateRepositoryFacade combines all state repository interfaces
type StateRepositoryFacade interface {
	StateReader
	StateWriter
	// Close releases any underlying connection or file handle.
	Close(ctx context.Context) error
}

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	StateRepo StateRepositoryFacade
}
