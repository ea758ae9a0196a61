package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/terrascope/gridcrs/internal/domain"
	"github.com/terrascope/gridcrs/internal/ports/output"
)

// LocalFetcher implements the Fetcher port for files already on disk.
// Fetch resolves without copying; the reader opens the file in place.
type LocalFetcher struct{}

// NewLocalFetcher creates a local filesystem fetcher.
func NewLocalFetcher() *LocalFetcher {
	return &LocalFetcher{}
}

// Supports accepts plain paths and file:// URIs.
func (f *LocalFetcher) Supports(uri string) bool {
	return !strings.Contains(uri, "://") || strings.HasPrefix(uri, "file://")
}

// Fetch verifies the file exists and returns its path unchanged.
func (f *LocalFetcher) Fetch(_ context.Context, uri string, _ string) (string, error) {
	path := localPath(uri)
	if _, err := os.Stat(path); err != nil {
		return "", &domain.StorageError{Operation: "fetch", Key: uri, Err: err}
	}
	return path, nil
}

// List walks the directory behind uri and returns the dataset files it
// contains, keyed relative to the directory.
func (f *LocalFetcher) List(_ context.Context, uri string) ([]output.StorageObject, error) {
	base := localPath(uri)

	var objects []output.StorageObject
	err := filepath.Walk(base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !IsDatasetFile(info.Name()) {
			return nil
		}
		key, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		objects = append(objects, output.StorageObject{
			Key:          filepath.ToSlash(key),
			Size:         info.Size(),
			LastModified: info.ModTime().Unix(),
		})
		return nil
	})
	if err != nil {
		return nil, &domain.StorageError{Operation: "list", Key: uri, Err: err}
	}
	return objects, nil
}

func localPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
