package storage

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/terrascope/gridcrs/internal/domain"
	"github.com/terrascope/gridcrs/internal/ports/output"
)

// HTTPFetcher implements the Fetcher port for plain HTTP(S) servers. The
// server is expected to publish an index file listing one dataset per
// line; downloads are straight GETs.
type HTTPFetcher struct {
	client    *http.Client
	indexFile string
	username  string
	password  string
}

// HTTPConfig holds HTTP fetcher configuration.
type HTTPConfig struct {
	IndexFile string // default: index.txt
	Timeout   time.Duration
	Username  string
	Password  string
}

// NewHTTPFetcher creates an HTTP fetcher.
func NewHTTPFetcher(cfg HTTPConfig) *HTTPFetcher {
	if cfg.IndexFile == "" {
		cfg.IndexFile = "index.txt"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &HTTPFetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		indexFile: cfg.IndexFile,
		username:  cfg.Username,
		password:  cfg.Password,
	}
}

// Supports accepts http:// and https:// URIs.
func (f *HTTPFetcher) Supports(uri string) bool {
	return strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")
}

// Fetch downloads the object behind uri into destDir and returns the
// local path.
func (f *HTTPFetcher) Fetch(ctx context.Context, uri string, destDir string) (string, error) {
	resp, err := f.get(ctx, uri)
	if err != nil {
		return "", &domain.StorageError{Operation: "fetch", Key: uri, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &domain.StorageError{
			Operation: "fetch",
			Key:       uri,
			Err:       fmt.Errorf("server returned status %d", resp.StatusCode),
		}
	}

	dest := filepath.Join(destDir, baseName(uri))
	if err := saveStream(dest, resp.Body); err != nil {
		return "", &domain.StorageError{Operation: "fetch", Key: uri, Err: err}
	}
	return dest, nil
}

// List fetches the index file under uri and returns the dataset entries.
// Empty lines and #-comments are skipped.
func (f *HTTPFetcher) List(ctx context.Context, uri string) ([]output.StorageObject, error) {
	indexURL := strings.TrimSuffix(uri, "/") + "/" + f.indexFile

	resp, err := f.get(ctx, indexURL)
	if err != nil {
		return nil, &domain.StorageError{Operation: "list", Key: uri, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.StorageError{
			Operation: "list",
			Key:       uri,
			Err:       fmt.Errorf("index file returned status %d", resp.StatusCode),
		}
	}

	var objects []output.StorageObject
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !IsDatasetFile(line) {
			continue
		}
		objects = append(objects, output.StorageObject{Key: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, &domain.StorageError{Operation: "list", Key: uri, Err: err}
	}
	return objects, nil
}

func (f *HTTPFetcher) get(ctx context.Context, uri string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	if f.username != "" && f.password != "" {
		req.SetBasicAuth(f.username, f.password)
	}
	return f.client.Do(req)
}

// baseName extracts the file name from a URI, ignoring query parameters.
func baseName(uri string) string {
	if u, err := url.Parse(uri); err == nil {
		return path.Base(u.Path)
	}
	return path.Base(uri)
}
