package application

import (
	"context"

	"github.com/terrascope/gridcrs/internal/domain"
	"github.com/terrascope/gridcrs/internal/ports/input"
)

// HealthService provides health check functionality.
type HealthService struct {
	catalog  *Catalog
	hasIndex bool
}

// NewHealthService creates a new health service.
func NewHealthService(catalog *Catalog, hasIndex bool) *HealthService {
	return &HealthService{
		catalog:  catalog,
		hasIndex: hasIndex,
	}
}

// IsHealthy returns true if the service is healthy.
func (s *HealthService) IsHealthy(_ context.Context) bool {
	return true // Basic health check
}

// IsReady returns true if the service is ready to accept requests.
func (s *HealthService) IsReady(ctx context.Context) bool {
	records, err := s.catalog.ListDatasets(ctx)
	if err != nil {
		return false
	}

	// Ready if at least one dataset composed
	for _, rec := range records {
		if rec.IsReady() {
			return true
		}
	}

	// Also ready if no datasets are configured (empty state)
	return len(records) == 0
}

// GetHealthDetails returns detailed health information.
func (s *HealthService) GetHealthDetails(ctx context.Context) input.HealthDetails {
	records, _ := s.catalog.ListDatasets(ctx)

	registered := len(records)
	ready := 0
	for _, rec := range records {
		if rec.IsReady() {
			ready++
		}
	}

	components := map[string]string{
		"storage": "ok",
		"index":   "disabled",
	}
	if s.hasIndex {
		components["index"] = "ok"
	}

	return input.HealthDetails{
		Healthy:            s.IsHealthy(ctx),
		Ready:              s.IsReady(ctx),
		DatasetsRegistered: registered,
		DatasetsReady:      ready,
		Components:         components,
	}
}

// DatasetHealth contains health info for a single dataset.
type DatasetHealth struct {
	ID     string
	Status domain.DatasetStatus
	Ready  bool
}

// GetDatasetHealth returns health info for all datasets.
func (s *HealthService) GetDatasetHealth(ctx context.Context) []DatasetHealth {
	records, _ := s.catalog.ListDatasets(ctx)

	health := make([]DatasetHealth, len(records))
	for i, rec := range records {
		health[i] = DatasetHealth{
			ID:     rec.ID,
			Status: rec.Status,
			Ready:  rec.IsReady(),
		}
	}

	return health
}
