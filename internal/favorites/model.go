package favorites

import (
	"errors"
	"strings"

	"magang-intel/internal/vacancies"
)

const (
	// MaxKeys caps the size of one client's favorites set.
	MaxKeys   = 1000
	maxKeyLen = 256
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrMissingClient = errors.New("client id required")
	ErrTooMany       = errors.New("too many favorites")
)

// View is a client's favorites: the stored keys plus the vacancies from the
// current dataset that still match them.
type View struct {
	Keys  []string             `json:"keys"`
	Items []vacancies.Enriched `json:"items"`
}

// normalizeKeys trims keys, drops blanks and duplicates, and keeps first-seen
// order.
func normalizeKeys(keys []string) ([]string, error) {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if len(k) > maxKeyLen {
			return nil, ErrInvalidInput
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	if len(out) > MaxKeys {
		return nil, ErrTooMany
	}
	return out, nil
}
