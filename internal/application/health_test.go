package application

import (
	"context"
	"testing"

	"github.com/terrascope/gridcrs/internal/domain"
)

func TestHealthEmptyCatalog(t *testing.T) {
	source := &fakeSource{}
	catalog := newTestCatalog(source, &fakeFetcher{}, nil)
	h := NewHealthService(catalog, false)
	ctx := context.Background()

	if !h.IsHealthy(ctx) {
		t.Error("IsHealthy() = false, want true")
	}
	// An empty catalog is still ready.
	if !h.IsReady(ctx) {
		t.Error("IsReady() = false for empty catalog, want true")
	}

	details := h.GetHealthDetails(ctx)
	if details.DatasetsRegistered != 0 || details.DatasetsReady != 0 {
		t.Errorf("details = %+v, want zero datasets", details)
	}
	if details.Components["index"] != "disabled" {
		t.Errorf("index component = %q, want disabled", details.Components["index"])
	}
}

func TestHealthWithDatasets(t *testing.T) {
	source := &fakeSource{systems: []domain.NativeCoordSystem{geographicSystem()}}
	catalog := newTestCatalog(source, &fakeFetcher{}, newFakeIndex())
	h := NewHealthService(catalog, true)
	ctx := context.Background()

	path := writeDataset(t, "sst.nc")
	if err := catalog.Register(ctx, path); err != nil {
		t.Fatal(err)
	}

	if !h.IsReady(ctx) {
		t.Error("IsReady() = false with a ready dataset, want true")
	}

	details := h.GetHealthDetails(ctx)
	if details.DatasetsRegistered != 1 || details.DatasetsReady != 1 {
		t.Errorf("details = %+v, want one ready dataset", details)
	}
	if details.Components["index"] != "ok" {
		t.Errorf("index component = %q, want ok", details.Components["index"])
	}

	health := h.GetDatasetHealth(ctx)
	if len(health) != 1 || health[0].ID != "sst" || !health[0].Ready {
		t.Errorf("GetDatasetHealth() = %+v", health)
	}
}

func TestHealthNotReadyWhenAllErrored(t *testing.T) {
	source := &fakeSource{systems: []domain.NativeCoordSystem{bookkeepingSystem()}}
	catalog := newTestCatalog(source, &fakeFetcher{}, nil)
	h := NewHealthService(catalog, false)
	ctx := context.Background()

	path := writeDataset(t, "stations.nc")
	if err := catalog.Register(ctx, path); err != nil {
		t.Fatal(err)
	}

	if h.IsReady(ctx) {
		t.Error("IsReady() = true with only errored datasets, want false")
	}
}
