package favorites

import "context"

// Repo persists one ordered set of vacancy keys per client.
type Repo interface {
	List(ctx context.Context, clientID string) ([]string, error)
	// Toggle adds key when absent and removes it when present. It reports
	// whether key is a favorite afterwards. Adding to a set that already holds
	// limit keys fails with ErrTooMany; limit <= 0 disables the check. The
	// check and the write are atomic per client.
	Toggle(ctx context.Context, clientID, key string, limit int) (bool, error)
	Replace(ctx context.Context, clientID string, keys []string) error
}
