// Package input defines the primary/driving ports of the application.
package input

import (
	"context"

	"github.com/terrascope/gridcrs/internal/domain"
)

// CatalogQuery defines the primary port for catalog reads.
type CatalogQuery interface {
	// ListDatasets returns all registered datasets.
	ListDatasets(ctx context.Context) ([]domain.DatasetRecord, error)

	// GetDataset returns a specific dataset by ID.
	GetDataset(ctx context.Context, id string) (*domain.DatasetRecord, error)

	// GetDatasetStatus returns the lifecycle status of a dataset.
	GetDatasetStatus(ctx context.Context, id string) (domain.DatasetStatus, error)
}

// DatasetDescriber defines the primary port for one-shot dataset
// description, used by the CLI against files that are not in the catalog.
type DatasetDescriber interface {
	// Describe fetches, opens and composes a dataset by URI.
	Describe(ctx context.Context, uri string) (*domain.DatasetRecord, error)
}

// CatalogSync defines the primary port for catalog maintenance.
type CatalogSync interface {
	// Rescan walks the data directory and registers every dataset found.
	Rescan(ctx context.Context) error

	// Watch follows filesystem events until the context is cancelled.
	Watch(ctx context.Context) error
}

// HealthChecker defines the primary port for health checks.
type HealthChecker interface {
	// IsHealthy returns true if the service is healthy.
	IsHealthy(ctx context.Context) bool

	// IsReady returns true if the service is ready to accept requests.
	IsReady(ctx context.Context) bool

	// GetHealthDetails returns detailed health information.
	GetHealthDetails(ctx context.Context) HealthDetails
}

// HealthDetails contains detailed health information.
type HealthDetails struct {
	Healthy            bool              // Overall health status
	Ready              bool              // Ready to accept requests
	DatasetsRegistered int               // Number of registered datasets
	DatasetsReady      int               // Number of composed, queryable datasets
	Components         map[string]string // Component statuses
}
