package resumes

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]byte // userID -> JSON record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]byte)}
}

// Get returns a detached copy of the stored record.
func (r *MemoryRepo) Get(ctx context.Context, userID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	raw, ok := r.data[userID]
	r.mu.RUnlock()
	if !ok {
		return Record{}, ErrNotFound
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Store replaces the user's record.
func (r *MemoryRepo) Store(ctx context.Context, userID string, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Records hold pointers; serializing keeps callers from mutating stored state.
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.data[userID] = raw
	r.mu.Unlock()
	return nil
}
