// Package storage provides the fetcher adapters that resolve dataset URIs
// against local disks, HTTP servers, S3 buckets and Azure containers.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// datasetExtensions are the file suffixes treated as datasets when
// listing a storage location.
var datasetExtensions = []string{".nc", ".nc4", ".cdf", ".hdf5", ".h5"}

// IsDatasetFile reports whether a file name looks like a dataset.
func IsDatasetFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range datasetExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// saveStream writes a remote object stream to dest, creating parent
// directories as needed.
func saveStream(dest string, body io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return err
	}
	f, err := os.Create(dest) //#nosec G304 -- dest is a controlled local path
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = io.Copy(f, body)
	return err
}
