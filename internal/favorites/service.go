package favorites

import (
	"context"
	"errors"
	"strings"

	"magang-intel/internal/shared/metrics"
	"magang-intel/internal/vacancies"
)

// Catalog resolves vacancy keys against the loaded dataset.
type Catalog interface {
	Lookup(keys []string) ([]vacancies.Enriched, error)
}

// Service contains business logic for favorites.
type Service struct {
	Repo    Repo
	Catalog Catalog
}

// NewService constructs a Service.
func NewService(repo Repo, catalog Catalog) *Service {
	return &Service{Repo: repo, Catalog: catalog}
}

// List returns the client's keys and the vacancies they resolve to. Before the
// dataset is loaded, items is empty but keys are still returned.
func (s *Service) List(ctx context.Context, clientID string) (View, error) {
	if strings.TrimSpace(clientID) == "" {
		return View{}, ErrMissingClient
	}
	keys, err := s.Repo.List(ctx, clientID)
	if err != nil {
		return View{}, err
	}
	view := View{Keys: keys, Items: []vacancies.Enriched{}}
	if s.Catalog == nil || len(keys) == 0 {
		return view, nil
	}
	items, err := s.Catalog.Lookup(keys)
	if err != nil {
		if errors.Is(err, vacancies.ErrDatasetUnavailable) {
			return view, nil
		}
		return View{}, err
	}
	view.Items = items
	return view, nil
}

// Toggle flips key in the client's set and reports whether it is now a
// favorite.
func (s *Service) Toggle(ctx context.Context, clientID, key string) (bool, error) {
	if strings.TrimSpace(clientID) == "" {
		return false, ErrMissingClient
	}
	key = strings.TrimSpace(key)
	if key == "" || len(key) > maxKeyLen {
		return false, ErrInvalidInput
	}
	added, err := s.Repo.Toggle(ctx, clientID, key, MaxKeys)
	if err != nil {
		return false, err
	}
	metrics.IncFavoritesToggle()
	return added, nil
}

// Replace overwrites the client's set with keys and returns the stored keys.
func (s *Service) Replace(ctx context.Context, clientID string, keys []string) ([]string, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, ErrMissingClient
	}
	normalized, err := normalizeKeys(keys)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Replace(ctx, clientID, normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}
