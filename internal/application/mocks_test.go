package application

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/terrascope/gridcrs/internal/domain"
	"github.com/terrascope/gridcrs/internal/ports/output"
)

// Test doubles for the driven ports.

type fakeAxis struct {
	name     string
	hint     string
	unit     string
	positive string
	standard string
	values   []float64
}

func (f *fakeAxis) Name() string                 { return f.name }
func (f *fakeAxis) DirectionHint() string        { return f.hint }
func (f *fakeAxis) UnitString() string           { return f.unit }
func (f *fakeAxis) Positive() string             { return f.positive }
func (f *fakeAxis) StandardName() string         { return f.standard }
func (f *fakeAxis) Len() int                     { return len(f.values) }
func (f *fakeAxis) Values() ([]float64, error)   { return f.values, nil }

type fakeCoordSystem struct {
	name    string
	axes    []domain.NativeAxis
	product bool
	proj    domain.NativeProjection
}

func (f *fakeCoordSystem) Name() string                       { return f.name }
func (f *fakeCoordSystem) Axes() []domain.NativeAxis          { return f.axes }
func (f *fakeCoordSystem) IsProduct() bool                    { return f.product }
func (f *fakeCoordSystem) Projection() domain.NativeProjection { return f.proj }

// geographicSystem is a two-axis lat/lon grid in declared (lat, lon) order.
func geographicSystem() *fakeCoordSystem {
	return &fakeCoordSystem{
		name: "lat lon",
		axes: []domain.NativeAxis{
			&fakeAxis{name: "lat", hint: "north", unit: "degrees_north", values: []float64{-90, 0, 90}},
			&fakeAxis{name: "lon", hint: "east", unit: "degrees_east", values: []float64{-180, 0, 180}},
		},
		product: true,
	}
}

// bookkeepingSystem carries only axes the classifier drops.
func bookkeepingSystem() *fakeCoordSystem {
	return &fakeCoordSystem{
		name: "station",
		axes: []domain.NativeAxis{
			&fakeAxis{name: "station", unit: "", values: []float64{1, 2, 3}},
		},
		product: true,
	}
}

// fakeDataset implements output.Dataset.
type fakeDataset struct {
	location  string
	attrs     map[string]any
	systems   []domain.NativeCoordSystem
	variables []string
	format    string
	closed    bool
}

func (f *fakeDataset) Location() string { return f.location }

func (f *fakeDataset) FindAttribute(name string) (any, bool) {
	for k, v := range f.attrs {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

func (f *fakeDataset) CoordinateSystems() []domain.NativeCoordSystem { return f.systems }
func (f *fakeDataset) Variables() []string                           { return f.variables }
func (f *fakeDataset) Format() string                                { return f.format }

func (f *fakeDataset) Close() error {
	f.closed = true
	return nil
}

// fakeSource implements output.DatasetSource, returning a fresh dataset
// per Open so Close tracking stays per-call.
type fakeSource struct {
	mu       sync.Mutex
	systems  []domain.NativeCoordSystem
	openErr  error
	opened   int
	lastOpen *fakeDataset
}

func (f *fakeSource) Open(_ context.Context, path string) (output.Dataset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.openErr != nil {
		return nil, f.openErr
	}
	f.opened++
	ds := &fakeDataset{
		location:  path,
		systems:   f.systems,
		variables: []string{"analysed_sst"},
		format:    "cdf",
	}
	f.lastOpen = ds
	return ds, nil
}

func (f *fakeSource) openCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opened
}

// fakeFetcher implements output.Fetcher as a local passthrough.
type fakeFetcher struct {
	objects  []output.StorageObject
	fetchErr error
	listErr  error
}

func (f *fakeFetcher) Fetch(_ context.Context, uri, _ string) (string, error) {
	if f.fetchErr != nil {
		return "", f.fetchErr
	}
	return uri, nil
}

func (f *fakeFetcher) List(_ context.Context, _ string) ([]output.StorageObject, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.objects, nil
}

func (f *fakeFetcher) Supports(_ string) bool { return true }

// fakeIndex implements output.DatasetIndex in memory.
type fakeIndex struct {
	mu      sync.Mutex
	records map[string]domain.DatasetRecord
	failOps bool
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{records: make(map[string]domain.DatasetRecord)}
}

func (f *fakeIndex) Init(_ context.Context) error { return nil }

func (f *fakeIndex) Upsert(_ context.Context, rec *domain.DatasetRecord) error {
	if f.failOps {
		return errors.New("index unavailable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[rec.ID] = *rec
	return nil
}

func (f *fakeIndex) Get(_ context.Context, id string) (*domain.DatasetRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return nil, domain.ErrDatasetNotFound
	}
	return &rec, nil
}

func (f *fakeIndex) List(_ context.Context) ([]domain.DatasetRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records := make([]domain.DatasetRecord, 0, len(f.records))
	for _, rec := range f.records {
		records = append(records, rec)
	}
	return records, nil
}

func (f *fakeIndex) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, id)
	return nil
}

func (f *fakeIndex) Close() error { return nil }
