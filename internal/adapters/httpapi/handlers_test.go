package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/terrascope/gridcrs/internal/application"
	"github.com/terrascope/gridcrs/internal/config"
	"github.com/terrascope/gridcrs/internal/domain"
	"github.com/terrascope/gridcrs/internal/ports/output"
)

// memIndex seeds the catalog through Restore.
type memIndex struct {
	mu      sync.Mutex
	records map[string]domain.DatasetRecord
}

func newMemIndex(records ...domain.DatasetRecord) *memIndex {
	idx := &memIndex{records: make(map[string]domain.DatasetRecord)}
	for _, rec := range records {
		idx.records[rec.ID] = rec
	}
	return idx
}

func (m *memIndex) Init(_ context.Context) error { return nil }

func (m *memIndex) Upsert(_ context.Context, rec *domain.DatasetRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ID] = *rec
	return nil
}

func (m *memIndex) Get(_ context.Context, id string) (*domain.DatasetRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, domain.ErrDatasetNotFound
	}
	return &rec, nil
}

func (m *memIndex) List(_ context.Context) ([]domain.DatasetRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := make([]domain.DatasetRecord, 0, len(m.records))
	for _, rec := range m.records {
		records = append(records, rec)
	}
	return records, nil
}

func (m *memIndex) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *memIndex) Close() error { return nil }

// emptyFetcher lists no objects, so sync never needs the describer.
type emptyFetcher struct{}

func (emptyFetcher) Fetch(_ context.Context, uri, _ string) (string, error) { return uri, nil }
func (emptyFetcher) List(_ context.Context, _ string) ([]output.StorageObject, error) {
	return nil, nil
}
func (emptyFetcher) Supports(_ string) bool { return true }

func readyRecord() domain.DatasetRecord {
	return domain.DatasetRecord{
		ID:       "sst",
		Name:     "sst",
		Location: "/data/sst.nc",
		Size:     1024,
		Format:   "cdf",
		Status:   domain.DatasetReady,
		CRS: []domain.CRSSummary{{
			Name: "lat lon",
			Type: "geographic",
			Axes: []domain.AxisSummary{
				{Name: "lon", Kind: "geo_x", Direction: "east", Unit: "deg",
					Min: -180, Max: 180, Bounded: true, Wraparound: true, Length: 144},
				{Name: "lat", Kind: "geo_y", Direction: "north", Unit: "deg",
					Min: -90, Max: 90, Bounded: true, Length: 73},
			},
		}},
		Metadata:     &domain.Metadata{Title: "Sea Surface Temperature"},
		Checksum:     "abc",
		RegisteredAt: time.Now(),
	}
}

func newTestServer(t *testing.T, records ...domain.DatasetRecord) *Server {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	catalog := application.NewCatalog(nil, emptyFetcher{}, newMemIndex(records...),
		&output.NoOpMetrics{}, logger, "", 0)
	if err := catalog.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}

	health := application.NewHealthService(catalog, true)
	syncService := application.NewSyncService(catalog, nil, time.Hour, logger)

	return NewServer(
		config.ServerConfig{Host: "127.0.0.1", Port: 8080, FrontendEnabled: true},
		catalog, health, syncService, logger,
	)
}

func doRequest(s *Server, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return body
}

func TestHandleListDatasets(t *testing.T) {
	s := newTestServer(t, readyRecord())

	rr := doRequest(s, http.MethodGet, "/api/v1/datasets")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	body := decodeBody(t, rr)
	if body["count"] != float64(1) {
		t.Errorf("count = %v, want 1", body["count"])
	}
	datasets := body["datasets"].([]interface{})
	first := datasets[0].(map[string]interface{})
	if first["id"] != "sst" || first["status"] != "ready" {
		t.Errorf("dataset = %v", first)
	}
	if first["crs_count"] != float64(1) {
		t.Errorf("crs_count = %v, want 1", first["crs_count"])
	}
}

func TestHandleGetDataset(t *testing.T) {
	s := newTestServer(t, readyRecord())

	rr := doRequest(s, http.MethodGet, "/api/v1/datasets/sst")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["name"] != "sst" || body["format"] != "cdf" {
		t.Errorf("body = %v", body)
	}
}

func TestHandleGetDatasetNotFound(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(s, http.MethodGet, "/api/v1/datasets/absent")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestHandleGetCRS(t *testing.T) {
	s := newTestServer(t, readyRecord())

	rr := doRequest(s, http.MethodGet, "/api/v1/datasets/sst/crs")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	body := decodeBody(t, rr)
	if body["count"] != float64(1) {
		t.Fatalf("count = %v, want 1", body["count"])
	}
	crs := body["crs"].([]interface{})[0].(map[string]interface{})
	if crs["name"] != "lat lon" || crs["type"] != "geographic" {
		t.Errorf("crs = %v", crs)
	}
	axes := crs["axes"].([]interface{})
	if len(axes) != 2 {
		t.Fatalf("axes = %v", axes)
	}
	lon := axes[0].(map[string]interface{})
	if lon["name"] != "lon" || lon["wraparound"] != true {
		t.Errorf("first axis = %v", lon)
	}
	if lon["min"] != float64(-180) || lon["max"] != float64(180) {
		t.Errorf("lon bounds = %v..%v", lon["min"], lon["max"])
	}
}

func TestHandleGetMetadata(t *testing.T) {
	s := newTestServer(t, readyRecord())

	rr := doRequest(s, http.MethodGet, "/api/v1/datasets/sst/metadata")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := decodeBody(t, rr)
	meta := body["metadata"].(map[string]interface{})
	if meta["title"] != "Sea Surface Temperature" {
		t.Errorf("metadata = %v", meta)
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, readyRecord())

	rr := doRequest(s, http.MethodGet, "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["status"] != "ok" || body["ready"] != true {
		t.Errorf("health = %v", body)
	}
	if body["datasets_registered"] != float64(1) {
		t.Errorf("datasets_registered = %v", body["datasets_registered"])
	}

	if rr := doRequest(s, http.MethodGet, "/health/live"); rr.Code != http.StatusOK {
		t.Errorf("liveness status = %d", rr.Code)
	}
	if rr := doRequest(s, http.MethodGet, "/health/ready"); rr.Code != http.StatusOK {
		t.Errorf("readiness status = %d", rr.Code)
	}
}

func TestHandleReadinessNotReady(t *testing.T) {
	rec := readyRecord()
	rec.Status = domain.DatasetError
	rec.CRS = nil
	s := newTestServer(t, rec)

	rr := doRequest(s, http.MethodGet, "/health/ready")
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rr.Code)
	}
}

func TestHandleSync(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(s, http.MethodPost, "/api/v1/sync")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	// An immediate second trigger is rate limited.
	rr = doRequest(s, http.MethodPost, "/api/v1/sync")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rr.Code)
	}
	if rr.Header().Get("Retry-After") != "30" {
		t.Errorf("Retry-After = %q", rr.Header().Get("Retry-After"))
	}
}

func TestHandleOpenAPI(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(s, http.MethodGet, "/openapi.json")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := decodeBody(t, rr)
	paths, ok := body["paths"].(map[string]interface{})
	if !ok {
		t.Fatal("spec has no paths")
	}
	for _, p := range []string{"/api/v1/datasets", "/api/v1/datasets/{datasetId}/crs", "/api/v1/sync"} {
		if _, ok := paths[p]; !ok {
			t.Errorf("spec missing path %q", p)
		}
	}
}

func TestHandleFrontend(t *testing.T) {
	s := newTestServer(t)

	rr := doRequest(s, http.MethodGet, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	rr = doRequest(s, http.MethodGet, "/docs")
	if rr.Code != http.StatusOK {
		t.Errorf("docs status = %d", rr.Code)
	}
}

func TestMountMetricsHandler(t *testing.T) {
	s := newTestServer(t)
	s.Mount("/metrics", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("metrics"))
	}))

	rr := doRequest(s, http.MethodGet, "/metrics")
	if rr.Code != http.StatusOK || rr.Body.String() != "metrics" {
		t.Errorf("mounted handler not served: %d %q", rr.Code, rr.Body.String())
	}
}
