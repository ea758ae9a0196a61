package output

import (
	"context"

	"github.com/terrascope/gridcrs/internal/domain"
)

// DatasetIndex defines the secondary port for catalog persistence. The index
// stores flattened dataset records so the catalog survives restarts without
// re-opening every file.
type DatasetIndex interface {
	// Init prepares the index schema.
	Init(ctx context.Context) error

	// Upsert inserts or replaces a dataset record.
	Upsert(ctx context.Context, rec *domain.DatasetRecord) error

	// Get returns a dataset record by ID.
	Get(ctx context.Context, id string) (*domain.DatasetRecord, error)

	// List returns all dataset records.
	List(ctx context.Context) ([]domain.DatasetRecord, error)

	// Delete removes a dataset record.
	Delete(ctx context.Context, id string) error

	// Close releases the index.
	Close() error
}
