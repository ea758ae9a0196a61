package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/terrascope/gridcrs/internal/domain"
	"github.com/terrascope/gridcrs/internal/ports/output"
)

func newTestSyncService(fetcher output.Fetcher) *SyncService {
	source := &fakeSource{systems: []domain.NativeCoordSystem{geographicSystem()}}
	catalog := newTestCatalog(source, fetcher, nil)
	return NewSyncService(catalog, nil, time.Hour, discardLog())
}

func TestTriggerSync(t *testing.T) {
	path := writeDataset(t, "sst.nc")
	s := newTestSyncService(&fakeFetcher{objects: []output.StorageObject{{Key: path}}})

	result, err := s.TriggerSync(context.Background())
	if err != nil {
		t.Fatalf("TriggerSync() error = %v", err)
	}
	if result.DatasetsAdded != 1 {
		t.Errorf("DatasetsAdded = %d, want 1", result.DatasetsAdded)
	}
	if result.DatasetsTotal != 1 {
		t.Errorf("DatasetsTotal = %d, want 1", result.DatasetsTotal)
	}
	if result.SyncedAt.IsZero() {
		t.Error("SyncedAt should be set")
	}
}

func TestTriggerSyncRateLimit(t *testing.T) {
	s := newTestSyncService(&fakeFetcher{})

	if _, err := s.TriggerSync(context.Background()); err != nil {
		t.Fatalf("first TriggerSync() error = %v", err)
	}
	if _, err := s.TriggerSync(context.Background()); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("second TriggerSync() error = %v, want ErrRateLimited", err)
	}
}

func TestRescan(t *testing.T) {
	path := writeDataset(t, "sst.nc")
	s := newTestSyncService(&fakeFetcher{objects: []output.StorageObject{{Key: path}}})

	if err := s.Rescan(context.Background()); err != nil {
		t.Fatalf("Rescan() error = %v", err)
	}
	if !s.catalog.IsRegistered("sst") {
		t.Error("Rescan() should register discovered datasets")
	}
}

func TestRescanPropagatesListError(t *testing.T) {
	s := newTestSyncService(&fakeFetcher{listErr: errors.New("offline")})

	if err := s.Rescan(context.Background()); err == nil {
		t.Fatal("Rescan() should propagate list failures")
	}
}

func TestSyncServiceStartStop(t *testing.T) {
	s := newTestSyncService(&fakeFetcher{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx)
	s.Stop()
}

func TestWatchWithoutWatcher(t *testing.T) {
	s := newTestSyncService(&fakeFetcher{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Watch(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Watch() error = %v, want context.Canceled", err)
	}
}

func TestInterval(t *testing.T) {
	s := newTestSyncService(&fakeFetcher{})
	if s.Interval() != time.Hour {
		t.Errorf("Interval() = %v, want 1h", s.Interval())
	}
}
