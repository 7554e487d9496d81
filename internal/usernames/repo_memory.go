package usernames

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu     sync.Mutex
	byUser map[string]string
	byName map[string]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byUser: make(map[string]string),
		byName: make(map[string]string),
	}
}

func (r *MemoryRepo) Lookup(ctx context.Context, userID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	name, ok := r.byUser[userID]
	if !ok {
		return "", ErrNotFound
	}
	return name, nil
}

func (r *MemoryRepo) UserIDFor(ctx context.Context, username string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byName[username]
	if !ok {
		return "", ErrNotFound
	}
	return id, nil
}

func (r *MemoryRepo) CreateIfAbsent(ctx context.Context, userID, username string) (string, bool, error) {
	if err := validate(userID, username); err != nil {
		return "", false, err
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byUser[userID]; ok {
		return existing, false, nil
	}
	if owner, ok := r.byName[username]; ok && owner != userID {
		return "", false, ErrUsernameTaken
	}
	r.byUser[userID] = username
	r.byName[username] = userID
	return username, true, nil
}
