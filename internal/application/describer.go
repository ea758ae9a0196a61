// Package application contains the application services.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/terrascope/gridcrs/internal/domain"
	"github.com/terrascope/gridcrs/internal/ports/output"
)

// Describer turns a dataset URI into a catalog record: fetch the file,
// open it through the reader, compose every declared coordinate system
// and map the discovery metadata.
type Describer struct {
	fetchers []output.Fetcher
	source   output.DatasetSource
	composer *domain.Composer
	metrics  output.MetricsCollector
	logger   *slog.Logger
	cacheDir string
}

// NewDescriber creates a describer. The fetchers are tried in order; the
// first one that supports the URI scheme wins.
func NewDescriber(
	fetchers []output.Fetcher,
	source output.DatasetSource,
	composer *domain.Composer,
	metrics output.MetricsCollector,
	logger *slog.Logger,
	cacheDir string,
) *Describer {
	return &Describer{
		fetchers: fetchers,
		source:   source,
		composer: composer,
		metrics:  metrics,
		logger:   logger,
		cacheDir: cacheDir,
	}
}

// Fetch resolves a dataset URI to a local file path.
func (d *Describer) Fetch(ctx context.Context, uri string) (string, error) {
	start := time.Now()
	for _, f := range d.fetchers {
		if !f.Supports(uri) {
			continue
		}
		path, err := f.Fetch(ctx, uri, d.cacheDir)
		d.metrics.IncStorageOperations("fetch", err == nil)
		d.metrics.ObserveStorageDuration("fetch", time.Since(start))
		if err != nil {
			return "", err
		}
		return path, nil
	}
	return "", &domain.StorageError{
		Operation: "fetch",
		Key:       uri,
		Err:       fmt.Errorf("no fetcher supports this URI"),
	}
}

// Describe fetches, opens and composes a dataset by URI.
func (d *Describer) Describe(ctx context.Context, uri string) (*domain.DatasetRecord, error) {
	path, err := d.Fetch(ctx, uri)
	if err != nil {
		return nil, err
	}
	return d.DescribeFile(ctx, uri, path)
}

// DescribeFile opens and composes an already-fetched dataset. The record
// keeps the original URI as its location; the path names the local copy.
func (d *Describer) DescribeFile(ctx context.Context, uri, path string) (*domain.DatasetRecord, error) {
	ds, err := d.source.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = ds.Close() }()

	rec := &domain.DatasetRecord{
		ID:           DeriveDatasetID(path),
		Name:         domain.DatasetDisplayName(path),
		Location:     uri,
		Format:       ds.Format(),
		Variables:    ds.Variables(),
		Metadata:     domain.MetadataFrom(ds),
		Checksum:     FileChecksum(path),
		Status:       domain.DatasetLoading,
		RegisteredAt: time.Now(),
	}
	if info, err := os.Stat(path); err == nil {
		rec.Size = info.Size()
	}

	var firstErr error
	for _, cs := range ds.CoordinateSystems() {
		d.metrics.AddAxesDropped(countUnclassified(cs))

		start := time.Now()
		crs, err := d.composer.ComposeDataset(cs, ds)
		d.metrics.ObserveComposeDuration(time.Since(start))
		if err != nil {
			d.metrics.IncCompositions(failureKind(err), false)
			d.logger.Warn("coordinate system rejected",
				"dataset", path, "coordsystem", cs.Name(), "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		summary := domain.Summarize(crs)
		d.metrics.IncCompositions(summary.Type, true)
		rec.CRS = append(rec.CRS, summary)
	}

	if len(rec.CRS) == 0 && firstErr != nil {
		rec.Status = domain.DatasetError
		rec.Error = firstErr.Error()
	} else {
		rec.Status = domain.DatasetReady
	}

	return rec, nil
}

// countUnclassified counts the axes the classifier would drop.
func countUnclassified(cs domain.NativeCoordSystem) int {
	n := 0
	for _, ax := range cs.Axes() {
		if domain.Classify(ax) == domain.KindUnknown {
			n++
		}
	}
	return n
}

// failureKind names a composition failure for the metrics outcome label.
func failureKind(err error) string {
	var (
		topology   *domain.UnsupportedAxisTopologyError
		ambiguous  *domain.AmbiguousHorizontalError
		incomplete *domain.IncompleteAxesError
		epoch      *domain.UnparsableEpochError
		noAxes     *domain.NoRecognizedAxesError
	)
	switch {
	case errors.As(err, &topology):
		return "unsupported_topology"
	case errors.As(err, &ambiguous):
		return "ambiguous_horizontal"
	case errors.As(err, &incomplete):
		return "incomplete_axes"
	case errors.As(err, &epoch):
		return "unparsable_epoch"
	case errors.As(err, &noAxes):
		return "no_recognized_axes"
	default:
		return "reader"
	}
}

// DeriveDatasetID extracts a dataset ID from a file path or object key:
// the file name without its extension.
func DeriveDatasetID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FileChecksum fingerprints a local file by name, size and modification
// time. Cheap enough to run on every sync pass; collisions only delay a
// re-describe until the next change.
func FileChecksum(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	sum := xxhash.Sum64String(fmt.Sprintf("%s:%d:%d",
		filepath.Base(path), info.Size(), info.ModTime().UnixNano()))
	return fmt.Sprintf("%016x", sum)
}
