package main

// Build the scheduled dataset sync Lambda:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-worker
// Trigger it from an EventBridge schedule, e.g. rate(6 hours).

import (
	"context"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"magang-intel/internal/bootstrap"
	"magang-intel/internal/dataset"
	"magang-intel/internal/shared/config"
	"magang-intel/internal/shared/telemetry"
)

var (
	initOnce sync.Once
	initErr  error
	syncer   *dataset.Syncer
)

func initSyncer(ctx context.Context) {
	cfg := config.Load()
	syncer, initErr = bootstrap.BuildSyncer(ctx, cfg)
}

func handler(ctx context.Context, event events.CloudWatchEvent) (dataset.SyncResult, error) {
	initOnce.Do(func() { initSyncer(ctx) })
	if initErr != nil {
		telemetry.Error("bootstrap.failed", map[string]any{"error": initErr})
		return dataset.SyncResult{}, initErr
	}
	telemetry.Info("worker.scheduled", map[string]any{"event_id": event.ID, "time": event.Time})
	return syncer.Sync(ctx)
}

func main() {
	lambda.Start(handler)
}
