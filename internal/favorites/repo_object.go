package favorites

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"magang-intel/internal/shared/storage/object"
	"magang-intel/internal/shared/telemetry"
	"magang-intel/internal/shared/util"
)

const defaultObjectPrefix = "favorites/"

// ObjectRepo stores each client's keys as a JSON array in the object store,
// rewriting the whole blob on every change. Missing or unreadable blobs are
// treated as an empty set.
type ObjectRepo struct {
	Store  object.ObjectStore
	Prefix string

	mu sync.Mutex
}

// NewObjectRepo constructs an ObjectRepo writing under "favorites/".
func NewObjectRepo(store object.ObjectStore) *ObjectRepo {
	return &ObjectRepo{Store: store, Prefix: defaultObjectPrefix}
}

// List returns the stored keys for the client.
func (r *ObjectRepo) List(ctx context.Context, clientID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx, clientID)
}

// Toggle flips membership of key and rewrites the blob.
func (r *ObjectRepo) Toggle(ctx context.Context, clientID, key string, limit int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys, err := r.load(ctx, clientID)
	if err != nil {
		return false, err
	}
	keys, added, err := toggleKey(keys, key, limit)
	if err != nil {
		return false, err
	}
	if err := r.save(ctx, clientID, keys); err != nil {
		return false, err
	}
	return added, nil
}

// Replace overwrites the blob with keys.
func (r *ObjectRepo) Replace(ctx context.Context, clientID string, keys []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(ctx, clientID, keys)
}

func (r *ObjectRepo) key(clientID string) string {
	prefix := r.Prefix
	if prefix == "" {
		prefix = defaultObjectPrefix
	}
	return prefix + util.HashKey(clientID) + ".json"
}

func (r *ObjectRepo) load(ctx context.Context, clientID string) ([]string, error) {
	raw, err := object.ReadAll(ctx, r.Store, r.key(clientID))
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read favorites: %w", err)
	}
	var keys []string
	if err := json.Unmarshal(raw, &keys); err != nil {
		telemetry.Warn("favorites.blob.corrupt", map[string]any{
			"key":   r.key(clientID),
			"error": err,
		})
		return []string{}, nil
	}
	keys, err = normalizeKeys(keys)
	if err != nil {
		return []string{}, nil
	}
	return keys, nil
}

func (r *ObjectRepo) save(ctx context.Context, clientID string, keys []string) error {
	if keys == nil {
		keys = []string{}
	}
	raw, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	if _, err := r.Store.SaveWithKey(ctx, r.key(clientID), "application/json", bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("write favorites: %w", err)
	}
	return nil
}

var _ Repo = (*ObjectRepo)(nil)
