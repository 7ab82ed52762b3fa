package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/SscSPs/isp_bookkeeping_app/internal/apperrors"
	portsrepo "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/repositories"
)

// snapshot is the on-disk document: every collection blob under its key.
type snapshot struct {
	Version   int                        `json:"version"`
	Blobs     map[string]json.RawMessage `json:"blobs"`
	UpdatedAt time.Time                  `json:"updatedAt"`
}

func emptySnapshot() *snapshot {
	return &snapshot{Version: 1, Blobs: map[string]json.RawMessage{}, UpdatedAt: time.Now()}
}

// StateRepository keeps all collections in one JSON file. Every Set replaces the
// file through a temp file and a rename, so readers never see a partial document.
type StateRepository struct {
	mu   sync.RWMutex
	path string
	snap *snapshot
}

var _ portsrepo.StateRepositoryFacade = (*StateRepository)(nil)

// Open opens or creates the data file at path. An undecodable file is moved
// aside to <path>.corrupt and the store starts empty.
func Open(path string, logger *slog.Logger) (*StateRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	r := &StateRepository{path: path}
	if err := r.load(logger); err != nil {
		return nil, fmt.Errorf("failed to load data file %s: %w", path, err)
	}
	return r, nil
}

func (r *StateRepository) load(logger *slog.Logger) error {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && len(data) == 0) {
		r.snap = emptySnapshot()
		return r.flushLocked()
	}
	if err != nil {
		return err
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		corruptPath := r.path + ".corrupt"
		logger.Warn("Data file is not valid JSON, moving it aside and starting empty",
			slog.String("path", r.path),
			slog.String("moved_to", corruptPath),
			slog.String("error", err.Error()))
		if err := os.Rename(r.path, corruptPath); err != nil {
			return fmt.Errorf("failed to move corrupt data file aside: %w", err)
		}
		r.snap = emptySnapshot()
		return r.flushLocked()
	}
	if snap.Blobs == nil {
		snap.Blobs = map[string]json.RawMessage{}
	}
	r.snap = &snap
	return nil
}

func (r *StateRepository) flushLocked() error {
	data, err := json.MarshalIndent(r.snap, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

func (r *StateRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	blob, ok := r.snap.Blobs[key]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

// Set stores blob under key. blob must be valid JSON since it is embedded in the file as-is.
func (r *StateRepository) Set(ctx context.Context, key string, blob []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if !json.Valid(blob) {
		return fmt.Errorf("refusing to store invalid JSON under %s", key)
	}

	stored := make(json.RawMessage, len(blob))
	copy(stored, blob)
	prev, had := r.snap.Blobs[key]
	r.snap.Blobs[key] = stored
	r.snap.UpdatedAt = time.Now()
	if err := r.flushLocked(); err != nil {
		if had {
			r.snap.Blobs[key] = prev
		} else {
			delete(r.snap.Blobs, key)
		}
		return err
	}
	return nil
}

// Close is a no-op; the file is not held open between writes.
func (r *StateRepository) Close(_ context.Context) error { return nil }
