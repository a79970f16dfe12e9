package favorites

import (
	"context"
	"slices"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]string // clientId -> keys
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]string)}
}

// List returns a copy of the client's keys.
func (r *MemoryRepo) List(ctx context.Context, clientID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.data[clientID]...), nil
}

// Toggle flips membership of key.
func (r *MemoryRepo) Toggle(ctx context.Context, clientID, key string, limit int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	keys, added, err := toggleKey(r.data[clientID], key, limit)
	if err != nil {
		return false, err
	}
	r.data[clientID] = keys
	return added, nil
}

// Replace overwrites the client's keys.
func (r *MemoryRepo) Replace(ctx context.Context, clientID string, keys []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(keys) == 0 {
		delete(r.data, clientID)
		return nil
	}
	r.data[clientID] = append([]string{}, keys...)
	return nil
}

func toggleKey(keys []string, key string, limit int) ([]string, bool, error) {
	if i := slices.Index(keys, key); i >= 0 {
		return slices.Delete(slices.Clone(keys), i, i+1), false, nil
	}
	if limit > 0 && len(keys) >= limit {
		return nil, false, ErrTooMany
	}
	return append(slices.Clone(keys), key), true, nil
}

var _ Repo = (*MemoryRepo)(nil)
