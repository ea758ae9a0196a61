package application

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/terrascope/gridcrs/internal/domain"
	"github.com/terrascope/gridcrs/internal/ports/output"
)

// defaultCacheSize bounds the composition cache when the configuration
// does not set one.
const defaultCacheSize = 128

// Catalog manages the registered datasets. Records live in memory behind
// an RWMutex; the optional index persists them across restarts, and an
// LRU cache keyed by file checksum skips re-composition of unchanged
// files.
type Catalog struct {
	mu        sync.RWMutex
	datasets  map[string]*domain.DatasetRecord
	describer *Describer
	fetcher   output.Fetcher
	index     output.DatasetIndex
	metrics   output.MetricsCollector
	logger    *slog.Logger
	cache     *lru.Cache[string, *domain.DatasetRecord]
	dataURI   string
}

// NewCatalog creates a dataset catalog. The index may be nil (no
// persistence); cacheSize <= 0 selects the default.
func NewCatalog(
	describer *Describer,
	fetcher output.Fetcher,
	index output.DatasetIndex,
	metrics output.MetricsCollector,
	logger *slog.Logger,
	dataURI string,
	cacheSize int,
) *Catalog {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, _ := lru.New[string, *domain.DatasetRecord](cacheSize)
	return &Catalog{
		datasets:  make(map[string]*domain.DatasetRecord),
		describer: describer,
		fetcher:   fetcher,
		index:     index,
		metrics:   metrics,
		logger:    logger,
		cache:     cache,
		dataURI:   dataURI,
	}
}

// Restore loads persisted records from the index into memory. Records
// restore with their stored status; a later sync pass re-describes any
// file whose checksum changed while the service was down.
func (c *Catalog) Restore(ctx context.Context) error {
	if c.index == nil {
		return nil
	}
	records, err := c.index.List(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	for i := range records {
		rec := records[i]
		c.datasets[rec.ID] = &rec
	}
	c.mu.Unlock()

	c.updateMetrics()
	c.logger.Info("catalog restored from index", "datasets", len(records))
	return nil
}

// Register describes a dataset by URI and adds it to the catalog.
func (c *Catalog) Register(ctx context.Context, uri string) error {
	c.logger.Info("registering dataset", "uri", uri)

	path, err := c.describer.Fetch(ctx, uri)
	if err != nil {
		c.logger.Error("failed to fetch dataset", "uri", uri, "error", err)
		return err
	}

	rec, err := c.describeCached(ctx, uri, path)
	if err != nil {
		c.logger.Error("failed to describe dataset", "uri", uri, "error", err)
		return err
	}

	c.mu.Lock()
	c.datasets[rec.ID] = rec
	c.mu.Unlock()

	if c.index != nil {
		if err := c.index.Upsert(ctx, rec); err != nil {
			c.logger.Warn("failed to persist dataset", "id", rec.ID, "error", err)
		}
	}

	c.updateMetrics()
	c.logger.Info("dataset registered",
		"id", rec.ID, "status", rec.Status, "crs", rec.CRSCount())
	return nil
}

// describeCached returns a cached record when the file checksum still
// matches, otherwise runs a full describe.
func (c *Catalog) describeCached(ctx context.Context, uri, path string) (*domain.DatasetRecord, error) {
	checksum := FileChecksum(path)
	if cached, ok := c.cache.Get(checksum); ok && checksum != "" {
		c.metrics.IncCacheLookups(true)
		rec := *cached
		rec.Location = uri
		rec.RegisteredAt = time.Now()
		return &rec, nil
	}
	c.metrics.IncCacheLookups(false)

	rec, err := c.describer.DescribeFile(ctx, uri, path)
	if err != nil {
		return nil, err
	}
	if rec.Checksum != "" {
		c.cache.Add(rec.Checksum, rec)
	}
	return rec, nil
}

// Unregister removes a dataset from the catalog.
func (c *Catalog) Unregister(ctx context.Context, id string) error {
	c.logger.Info("unregistering dataset", "id", id)

	c.mu.Lock()
	_, ok := c.datasets[id]
	delete(c.datasets, id)
	c.mu.Unlock()

	if !ok {
		return domain.ErrDatasetNotFound
	}

	if c.index != nil {
		if err := c.index.Delete(ctx, id); err != nil {
			c.logger.Warn("failed to remove dataset from index", "id", id, "error", err)
		}
	}

	c.updateMetrics()
	return nil
}

// ListDatasets returns all registered datasets.
func (c *Catalog) ListDatasets(_ context.Context) ([]domain.DatasetRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	records := make([]domain.DatasetRecord, 0, len(c.datasets))
	for _, rec := range c.datasets {
		records = append(records, *rec)
	}
	return records, nil
}

// GetDataset returns a specific dataset by ID.
func (c *Catalog) GetDataset(_ context.Context, id string) (*domain.DatasetRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.datasets[id]
	if !ok {
		return nil, domain.ErrDatasetNotFound
	}
	copied := *rec
	copied.LastAccess = time.Now()
	return &copied, nil
}

// GetDatasetStatus returns the lifecycle status of a dataset.
func (c *Catalog) GetDatasetStatus(_ context.Context, id string) (domain.DatasetStatus, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.datasets[id]
	if !ok {
		return "", domain.ErrDatasetNotFound
	}
	return rec.Status, nil
}

// IsRegistered returns true if a dataset with the given ID is registered.
func (c *Catalog) IsRegistered(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.datasets[id]
	return ok
}

// DatasetCount returns the number of registered datasets.
func (c *Catalog) DatasetCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.datasets)
}

// ReadyDatasetIDs returns IDs of all composed, queryable datasets.
func (c *Catalog) ReadyDatasetIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0)
	for id, rec := range c.datasets {
		if rec.IsReady() {
			ids = append(ids, id)
		}
	}
	return ids
}

// SyncStats contains statistics from a sync operation.
type SyncStats struct {
	Added   int
	Updated int
	Removed int
}

// Sync reconciles the catalog against the configured data location:
// new datasets are registered, changed files re-described, and datasets
// that disappeared are unregistered.
func (c *Catalog) Sync(ctx context.Context) (SyncStats, error) {
	c.logger.Info("syncing catalog", "uri", c.dataURI)

	objects, err := c.fetcher.List(ctx, c.dataURI)
	c.metrics.IncStorageOperations("list", err == nil)
	if err != nil {
		return SyncStats{}, err
	}

	remote := make(map[string]output.StorageObject, len(objects))
	for _, obj := range objects {
		remote[DeriveDatasetID(obj.Key)] = obj
	}

	stats := SyncStats{}
	for id, obj := range remote {
		uri := joinURI(c.dataURI, obj.Key)
		known, changed := c.changed(ctx, id, uri)
		if known && !changed {
			continue
		}
		if err := c.Register(ctx, uri); err != nil {
			c.logger.Error("failed to sync dataset", "uri", uri, "error", err)
			continue
		}
		if known {
			stats.Updated++
		} else {
			stats.Added++
		}
	}

	for _, id := range c.staleDatasets(remote) {
		c.logger.Info("removing dataset no longer present", "id", id)
		if err := c.Unregister(ctx, id); err != nil {
			c.logger.Error("failed to unregister removed dataset", "id", id, "error", err)
			continue
		}
		stats.Removed++
	}

	c.logger.Info("sync completed",
		"added", stats.Added,
		"updated", stats.Updated,
		"removed", stats.Removed,
		"total", c.DatasetCount(),
	)
	return stats, nil
}

// changed reports whether a dataset is known and whether the file behind
// it no longer matches the registered checksum.
func (c *Catalog) changed(ctx context.Context, id, uri string) (known, changed bool) {
	c.mu.RLock()
	rec, ok := c.datasets[id]
	var checksum string
	if ok {
		checksum = rec.Checksum
	}
	c.mu.RUnlock()
	if !ok {
		return false, false
	}

	path, err := c.describer.Fetch(ctx, uri)
	if err != nil {
		return true, false
	}
	return true, FileChecksum(path) != checksum
}

// staleDatasets returns IDs that are registered but absent from remote.
func (c *Catalog) staleDatasets(remote map[string]output.StorageObject) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var stale []string
	for id := range c.datasets {
		if _, ok := remote[id]; !ok {
			stale = append(stale, id)
		}
	}
	return stale
}

// updateMetrics pushes current dataset counts to the metrics collector.
func (c *Catalog) updateMetrics() {
	c.mu.RLock()
	total := len(c.datasets)
	ready := 0
	for _, rec := range c.datasets {
		if rec.IsReady() {
			ready++
		}
	}
	c.mu.RUnlock()

	c.metrics.SetDatasetsRegistered(total)
	c.metrics.SetDatasetsReady(ready)
}

// joinURI appends an object key to the data URI.
func joinURI(base, key string) string {
	if base == "" {
		return key
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(key, "/")
}
