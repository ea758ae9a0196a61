// Package netcdf provides the CF-convention reader for netCDF datasets.
//
// The reader accepts both classic (CDF) and HDF5-backed files. It resolves
// each data variable's dimensions into coordinate axes, reads grid-mapping
// variables into projections, and exposes the result through the dataset
// source port. Interpreting the axes is left to the composition engine.
package netcdf

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	ncfile "github.com/batchatco/go-native-netcdf/netcdf"

	"github.com/terrascope/gridcrs/internal/domain"
	"github.com/terrascope/gridcrs/internal/ports/output"
)

// Container magic bytes: classic files start with 'C' (of "CDF"), HDF5
// files with 0x89.
const (
	magicCDF  = 'C'
	magicHDF5 = 0x89
)

// Source implements the DatasetSource port for netCDF files.
type Source struct {
	log *slog.Logger
}

// NewSource creates a netCDF dataset source.
func NewSource(log *slog.Logger) *Source {
	if log == nil {
		log = slog.Default()
	}
	return &Source{log: log}
}

// Open opens a netCDF file and resolves its coordinate systems.
func (s *Source) Open(ctx context.Context, path string) (output.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := sniffFormat(path)
	if err != nil {
		return nil, &domain.ReaderError{Location: path, Op: "open", Err: err}
	}

	nc, err := ncfile.Open(path)
	if err != nil {
		return nil, &domain.ReaderError{Location: path, Op: "open", Err: err}
	}

	vars, err := scanGroup(nc)
	if err != nil {
		nc.Close()
		return nil, &domain.ReaderError{Location: path, Op: "read", Err: err}
	}

	f := &File{
		nc:      nc,
		path:    path,
		format:  format,
		globals: newAttributes(nc.Attributes()),
	}
	f.systems, f.variables = assemble(vars, s.log.With("dataset", path))

	s.log.Debug("dataset opened",
		"path", path,
		"format", format,
		"variables", len(f.variables),
		"coordinate_systems", len(f.systems))

	return f, nil
}

// sniffFormat reads the container magic and names the on-disk format.
func sniffFormat(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	var magic [1]byte
	if n, _ := file.Read(magic[:]); n == 0 {
		return "", fmt.Errorf("empty file")
	}
	switch magic[0] {
	case magicCDF:
		return "cdf", nil
	case magicHDF5:
		return "hdf5", nil
	}
	return "", fmt.Errorf("unrecognized container format")
}
