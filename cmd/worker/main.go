package main

// Dataset sync worker: publishes DATASET_UPSTREAM_URL into the object store on
// every DATASET_SYNC_INTERVAL until interrupted.
//   go run ./cmd/worker
//   go run ./cmd/worker -once

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"magang-intel/internal/bootstrap"
	"magang-intel/internal/dataset"
	"magang-intel/internal/shared/config"
	"magang-intel/internal/shared/telemetry"
)

type syncer interface {
	Sync(ctx context.Context) (dataset.SyncResult, error)
}

func main() {
	once := flag.Bool("once", false, "sync a single time and exit")
	flag.Parse()

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := bootstrap.BuildSyncer(ctx, cfg)
	if err != nil {
		telemetry.Error("worker.bootstrap_failed", map[string]any{"error": err})
		os.Exit(1)
	}

	if *once {
		if _, err := s.Sync(ctx); err != nil {
			os.Exit(1)
		}
		return
	}

	telemetry.Info("worker.started", map[string]any{
		"upstream": s.Upstream.Name(),
		"key":      s.Key,
		"interval": cfg.DatasetSyncInterval.String(),
	})
	runLoop(ctx, s, cfg.DatasetSyncInterval)
	telemetry.Info("worker.stopped", nil)
}

// runLoop syncs immediately and then on every tick. A failed sync leaves the
// previously published document in place and is retried on the next tick.
func runLoop(ctx context.Context, s syncer, interval time.Duration) int {
	if interval <= 0 {
		interval = dataset.DefaultInterval
	}
	runs := 0
	run := func() {
		runs++
		_, _ = s.Sync(ctx)
	}

	run()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return runs
		case <-ticker.C:
			if ctx.Err() != nil {
				return runs
			}
			run()
		}
	}
}
