package output

import "context"

// Fetcher defines the secondary port for resolving dataset URIs to local
// files before the reader opens them.
type Fetcher interface {
	// Fetch makes the object behind uri available on the local filesystem
	// and returns its path. Local URIs resolve without copying.
	Fetch(ctx context.Context, uri string, destDir string) (string, error)

	// List returns the dataset objects under a URI prefix.
	List(ctx context.Context, uri string) ([]StorageObject, error)

	// Supports reports whether the fetcher handles the URI scheme.
	Supports(uri string) bool
}

// StorageObject represents a file in remote or local storage.
type StorageObject struct {
	Key          string // Object key/path
	Size         int64  // Size in bytes
	LastModified int64  // Unix timestamp
	ETag         string // Content hash
}

// StorageType represents the type of storage backend.
type StorageType string

const (
	StorageTypeS3    StorageType = "s3"
	StorageTypeAzure StorageType = "azure"
	StorageTypeHTTP  StorageType = "http"
	StorageTypeLocal StorageType = "local"
)
