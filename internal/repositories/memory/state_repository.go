package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/isp_bookkeeping_app/internal/apperrors"
	portsrepo "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/repositories"
)

// StateRepository keeps blobs in a map. Nothing survives a restart.
type StateRepository struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

var _ portsrepo.StateRepositoryFacade = (*StateRepository)(nil)

func New() *StateRepository {
	return &StateRepository{blobs: make(map[string][]byte)}
}

func (s *StateRepository) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[key]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

func (s *StateRepository) Set(_ context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(blob))
	copy(stored, blob)
	s.blobs[key] = stored
	return nil
}

func (s *StateRepository) Close(_ context.Context) error { return nil }
