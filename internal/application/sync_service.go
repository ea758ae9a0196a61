package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrRateLimited is returned when the sync API rate limit is exceeded.
var ErrRateLimited = errors.New("rate limit exceeded")

// syncCooldown is the minimum gap between API-triggered syncs.
const syncCooldown = 30 * time.Second

// SyncResult contains the result of a sync operation.
type SyncResult struct {
	DatasetsAdded   int       `json:"datasets_added"`
	DatasetsUpdated int       `json:"datasets_updated"`
	DatasetsRemoved int       `json:"datasets_removed"`
	DatasetsTotal   int       `json:"datasets_total"`
	SyncedAt        time.Time `json:"synced_at"`
	NextScheduledAt time.Time `json:"next_scheduled_at,omitempty"`
}

// DirWatcher follows a data directory and reports dataset file events.
// Implemented by the fsnotify adapter.
type DirWatcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// SyncService keeps the catalog aligned with the data location: a
// periodic rescan plus an optional directory watcher for local data.
type SyncService struct {
	catalog  *Catalog
	watcher  DirWatcher
	interval time.Duration
	logger   *slog.Logger

	// Lifecycle management
	stopCh chan struct{}
	wg     sync.WaitGroup

	// Rate limiting for API triggers
	lastAPISync time.Time
	apiMutex    sync.Mutex

	// Prevents concurrent sync operations
	syncOpMutex sync.Mutex

	// Track next scheduled sync for reporting
	nextSync time.Time
	syncMu   sync.RWMutex
}

// NewSyncService creates a sync service. The watcher may be nil (remote
// storage has nothing to watch).
func NewSyncService(catalog *Catalog, watcher DirWatcher, interval time.Duration, logger *slog.Logger) *SyncService {
	return &SyncService{
		catalog:  catalog,
		watcher:  watcher,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		// Initialize to the past to allow an immediate first API call
		lastAPISync: time.Now().Add(-syncCooldown - time.Second),
	}
}

// Start begins the periodic sync scheduler.
func (s *SyncService) Start(ctx context.Context) {
	s.logger.Info("starting sync service", "interval", s.interval)

	s.wg.Add(1)
	go s.run(ctx)
}

// run is the main sync loop.
func (s *SyncService) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.setNextSync(time.Now().Add(s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sync service stopped: context canceled")
			return
		case <-s.stopCh:
			s.logger.Info("sync service stopped")
			return
		case <-ticker.C:
			s.logger.Debug("scheduled sync triggered")
			s.doSync(ctx)
			s.setNextSync(time.Now().Add(s.interval))
		}
	}
}

// Stop gracefully stops the sync service.
func (s *SyncService) Stop() {
	s.logger.Info("stopping sync service")
	close(s.stopCh)
	s.wg.Wait()
}

// Rescan walks the data location and registers every dataset found.
func (s *SyncService) Rescan(ctx context.Context) error {
	s.syncOpMutex.Lock()
	defer s.syncOpMutex.Unlock()

	_, err := s.catalog.Sync(ctx)
	return err
}

// Watch follows filesystem events until the context is cancelled.
func (s *SyncService) Watch(ctx context.Context) error {
	if s.watcher == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	if err := s.watcher.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return s.watcher.Stop()
}

// TriggerSync manually triggers a sync operation with rate limiting.
func (s *SyncService) TriggerSync(ctx context.Context) (SyncResult, error) {
	s.apiMutex.Lock()
	defer s.apiMutex.Unlock()

	if time.Since(s.lastAPISync) < syncCooldown {
		return SyncResult{}, ErrRateLimited
	}
	s.lastAPISync = time.Now()

	return s.doSyncWithResult(ctx)
}

// doSync performs the sync operation without returning detailed results.
func (s *SyncService) doSync(ctx context.Context) {
	s.syncOpMutex.Lock()
	defer s.syncOpMutex.Unlock()

	stats, err := s.catalog.Sync(ctx)
	if err != nil {
		s.logger.Error("sync failed", "error", err)
		return
	}
	s.logger.Info("sync completed",
		"added", stats.Added,
		"updated", stats.Updated,
		"removed", stats.Removed,
		"total", s.catalog.DatasetCount(),
	)
}

// doSyncWithResult performs the sync operation and returns detailed results.
func (s *SyncService) doSyncWithResult(ctx context.Context) (SyncResult, error) {
	s.syncOpMutex.Lock()
	defer s.syncOpMutex.Unlock()

	stats, err := s.catalog.Sync(ctx)
	if err != nil {
		return SyncResult{}, err
	}

	return SyncResult{
		DatasetsAdded:   stats.Added,
		DatasetsUpdated: stats.Updated,
		DatasetsRemoved: stats.Removed,
		DatasetsTotal:   s.catalog.DatasetCount(),
		SyncedAt:        time.Now(),
		NextScheduledAt: s.getNextSync(),
	}, nil
}

// setNextSync updates the next scheduled sync time.
func (s *SyncService) setNextSync(t time.Time) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()
	s.nextSync = t
}

// getNextSync returns the next scheduled sync time.
func (s *SyncService) getNextSync() time.Time {
	s.syncMu.RLock()
	defer s.syncMu.RUnlock()
	return s.nextSync
}

// Interval returns the sync interval.
func (s *SyncService) Interval() time.Duration {
	return s.interval
}
