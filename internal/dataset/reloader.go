package dataset

import (
	"context"
	"fmt"
	"time"

	"magang-intel/internal/shared/metrics"
	"magang-intel/internal/shared/telemetry"
	"magang-intel/internal/shared/util"
)

// DefaultInterval is how often the dataset is refetched.
const DefaultInterval = 6 * time.Hour

// Reloader keeps a Store filled from a Source.
type Reloader struct {
	Source   Source
	Store    *Store
	Interval time.Duration
	Now      func() time.Time
}

// LoadOnce fetches, decodes and installs the dataset. On any error the
// current snapshot is left in place.
func (r *Reloader) LoadOnce(ctx context.Context) error {
	start := time.Now()
	raw, err := r.Source.Fetch(ctx)
	if err != nil {
		return r.failed(err)
	}
	records, err := Decode(raw)
	if err != nil {
		return r.failed(err)
	}
	version := util.HashKey(string(raw))[:12]
	snap := r.Store.Replace(records, r.now(), version)
	metrics.IncDatasetReload(len(snap.Items))
	telemetry.Info("dataset.reload", map[string]any{
		"source":      r.Source.Name(),
		"records":     len(snap.Items),
		"version":     version,
		"bytes":       len(raw),
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	})
	return nil
}

func (r *Reloader) failed(err error) error {
	metrics.IncDatasetReloadFailed()
	status := r.Store.Status()
	telemetry.Error("dataset.reload.failed", map[string]any{
		"source":       r.Source.Name(),
		"error":        err,
		"kept_version": status.Version,
		"kept_records": status.Records,
	})
	return fmt.Errorf("reload dataset from %s: %w", r.Source.Name(), err)
}

// Run loads immediately and then keeps reloading until ctx is done.
func (r *Reloader) Run(ctx context.Context) error {
	_ = r.LoadOnce(ctx)
	return r.Watch(ctx)
}

// Watch reloads on every tick until ctx is done. Loads run one after another,
// so a slow fetch delays the next tick instead of overlapping it.
func (r *Reloader) Watch(ctx context.Context) error {
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			_ = r.LoadOnce(ctx)
		}
	}
}

func (r *Reloader) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return time.Now().UTC()
}
