package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"magang-intel/internal/dataset"
	"magang-intel/internal/shared/config"
)

// BuildSyncer prepares the dataset sync job: DATASET_UPSTREAM_URL is fetched
// and published to DATASET_KEY in the configured object store.
func BuildSyncer(ctx context.Context, cfg config.Config) (*dataset.Syncer, error) {
	upstream := strings.TrimSpace(cfg.DatasetUpstreamURL)
	if upstream == "" {
		return nil, fmt.Errorf("DATASET_UPSTREAM_URL is required")
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return dataset.NewSyncer(dataset.ParseSource(upstream), store, cfg.DatasetKey), nil
}
