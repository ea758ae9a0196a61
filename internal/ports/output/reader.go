// Package output defines the secondary/driven ports of the application.
package output

import (
	"context"

	"github.com/terrascope/gridcrs/internal/domain"
)

// DatasetSource defines the secondary port for opening array-format files.
type DatasetSource interface {
	// Open opens a dataset file and resolves its coordinate systems.
	Open(ctx context.Context, path string) (Dataset, error)
}

// Dataset is one open dataset handle. It extends the native contract the
// composition core consumes with the catalog-facing accessors.
type Dataset interface {
	domain.NativeDataset

	// CoordinateSystems returns the coordinate systems the file declares.
	CoordinateSystems() []domain.NativeCoordSystem

	// Variables returns the data variable names.
	Variables() []string

	// Format returns the on-disk format ("cdf", "hdf5").
	Format() string

	// Close releases the underlying file handle. Wrappers built from the
	// dataset must not be read after Close.
	Close() error
}
