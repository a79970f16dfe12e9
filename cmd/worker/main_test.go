package main

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"magang-intel/internal/dataset"
)

type fakeSyncer struct {
	calls  int32
	err    error
	cancel context.CancelFunc
	stopAt int32
}

func (f *fakeSyncer) Sync(ctx context.Context) (dataset.SyncResult, error) {
	n := atomic.AddInt32(&f.calls, 1)
	if n >= f.stopAt {
		f.cancel()
	}
	return dataset.SyncResult{Records: 1}, f.err
}

func TestRunLoopSyncsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := &fakeSyncer{cancel: cancel, stopAt: 3}

	runs := runLoop(ctx, s, time.Millisecond)
	if runs != 3 {
		t.Fatalf("expected 3 runs, got %d", runs)
	}
}

func TestRunLoopKeepsGoingAfterFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := &fakeSyncer{cancel: cancel, stopAt: 2, err: errors.New("upstream down")}

	if runs := runLoop(ctx, s, time.Millisecond); runs != 2 {
		t.Fatalf("expected 2 runs, got %d", runs)
	}
}
