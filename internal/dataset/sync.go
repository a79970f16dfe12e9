package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"magang-intel/internal/shared/storage/object"
	"magang-intel/internal/shared/telemetry"
	"magang-intel/internal/shared/util"
)

const (
	defaultSyncRetries = 3
	defaultSyncBackoff = 5 * time.Second
)

// Syncer copies the dataset from an upstream source into the object store key
// the API reloads from. A document that does not decode to at least one record
// is never published.
type Syncer struct {
	Upstream   Source
	Store      object.ObjectStore
	Key        string
	MaxRetries int
	Backoff    time.Duration
	// Sleep waits between retries; tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

// SyncResult describes one published document.
type SyncResult struct {
	Key     string `json:"key"`
	Records int    `json:"records"`
	Bytes   int64  `json:"bytes"`
	Version string `json:"version"`
}

// Sync fetches, validates and publishes the dataset once.
func (s *Syncer) Sync(ctx context.Context) (SyncResult, error) {
	start := time.Now()
	raw, err := s.fetch(ctx)
	if err != nil {
		return SyncResult{}, s.failed(err)
	}
	records, err := Decode(raw)
	if err != nil {
		return SyncResult{}, s.failed(err)
	}
	if len(records) == 0 {
		return SyncResult{}, s.failed(fmt.Errorf("%w: no records", ErrInvalidDataset))
	}
	n, err := s.Store.SaveWithKey(ctx, s.Key, "application/json", bytes.NewReader(raw))
	if err != nil {
		return SyncResult{}, s.failed(fmt.Errorf("publish dataset: %w", err))
	}
	res := SyncResult{
		Key:     s.Key,
		Records: len(records),
		Bytes:   n,
		Version: util.HashKey(string(raw))[:12],
	}
	telemetry.Info("dataset.sync", map[string]any{
		"source":      s.Upstream.Name(),
		"key":         res.Key,
		"records":     res.Records,
		"bytes":       res.Bytes,
		"version":     res.Version,
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	})
	return res, nil
}

func (s *Syncer) failed(err error) error {
	telemetry.Error("dataset.sync.failed", map[string]any{
		"source": s.Upstream.Name(),
		"key":    s.Key,
		"error":  err,
	})
	return fmt.Errorf("sync dataset from %s: %w", s.Upstream.Name(), err)
}

// fetch retries 429 and 5xx responses, waiting Retry-After seconds when
// given and backoff*attempt otherwise.
func (s *Syncer) fetch(ctx context.Context) ([]byte, error) {
	retries := s.MaxRetries
	if retries < 0 {
		retries = 0
	}
	backoff := s.Backoff
	if backoff <= 0 {
		backoff = defaultSyncBackoff
	}
	for attempt := 0; ; attempt++ {
		raw, err := s.Upstream.Fetch(ctx)
		if err == nil {
			return raw, nil
		}
		var statusErr *StatusError
		if !errors.As(err, &statusErr) || !retryableStatus(statusErr.Status) || attempt >= retries {
			return nil, err
		}
		wait := backoff * time.Duration(attempt+1)
		if secs, perr := strconv.Atoi(strings.TrimSpace(statusErr.RetryAfter)); perr == nil && secs >= 0 {
			wait = time.Duration(secs) * time.Second
		}
		telemetry.Warn("dataset.sync.retry", map[string]any{
			"source":  s.Upstream.Name(),
			"status":  statusErr.Status,
			"attempt": attempt + 1,
			"wait_ms": wait.Milliseconds(),
		})
		if err := s.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func (s *Syncer) sleep(ctx context.Context, d time.Duration) error {
	if s.Sleep != nil {
		return s.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// NewSyncer constructs a Syncer with the default retry policy.
func NewSyncer(upstream Source, store object.ObjectStore, key string) *Syncer {
	return &Syncer{
		Upstream:   upstream,
		Store:      store,
		Key:        key,
		MaxRetries: defaultSyncRetries,
		Backoff:    defaultSyncBackoff,
	}
}
