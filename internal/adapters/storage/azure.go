package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"

	"github.com/terrascope/gridcrs/internal/domain"
	"github.com/terrascope/gridcrs/internal/ports/output"
)

// AzureFetcher implements the Fetcher port for az:// URIs backed by Azure
// Blob Storage.
type AzureFetcher struct {
	client *azblob.Client
}

// AzureConfig holds Azure Blob Storage configuration.
type AzureConfig struct {
	AccountName      string
	AccountKey       string
	ConnectionString string
}

// NewAzureFetcher creates an Azure Blob Storage fetcher.
func NewAzureFetcher(cfg AzureConfig) (*AzureFetcher, error) {
	if cfg.ConnectionString != "" {
		client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
		if err != nil {
			return nil, err
		}
		return &AzureFetcher{client: client}, nil
	}

	url := "https://" + cfg.AccountName + ".blob.core.windows.net/"
	cred, err := azblob.NewSharedKeyCredential(cfg.AccountName, cfg.AccountKey)
	if err != nil {
		return nil, err
	}
	client, err := azblob.NewClientWithSharedKeyCredential(url, cred, nil)
	if err != nil {
		return nil, err
	}
	return &AzureFetcher{client: client}, nil
}

// Supports accepts az:// URIs.
func (f *AzureFetcher) Supports(uri string) bool {
	return strings.HasPrefix(uri, "az://")
}

// Fetch downloads the blob behind uri into destDir and returns the local
// path.
func (f *AzureFetcher) Fetch(ctx context.Context, uri string, destDir string) (string, error) {
	cont, key, err := parseAzureURI(uri)
	if err != nil {
		return "", &domain.StorageError{Operation: "fetch", Key: uri, Err: err}
	}

	resp, err := f.client.DownloadStream(ctx, cont, key, nil)
	if err != nil {
		return "", &domain.StorageError{Operation: "fetch", Key: uri, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	dest := filepath.Join(destDir, path.Base(key))
	if err := saveStream(dest, resp.Body); err != nil {
		return "", &domain.StorageError{Operation: "fetch", Key: uri, Err: err}
	}
	return dest, nil
}

// List returns the dataset blobs under an az://container/prefix URI,
// keyed relative to the prefix.
func (f *AzureFetcher) List(ctx context.Context, uri string) ([]output.StorageObject, error) {
	cont, prefix, err := parseAzureURI(uri)
	if err != nil {
		return nil, &domain.StorageError{Operation: "list", Key: uri, Err: err}
	}

	var objects []output.StorageObject
	pager := f.client.NewListBlobsFlatPager(cont, &azblob.ListBlobsFlatOptions{
		Prefix: &prefix,
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, &domain.StorageError{Operation: "list", Key: uri, Err: err}
		}
		for _, blob := range page.Segment.BlobItems {
			if obj, ok := blobObject(blob, prefix); ok {
				objects = append(objects, obj)
			}
		}
	}
	return objects, nil
}

// blobObject converts an Azure blob item to a storage object, skipping
// blobs that are not datasets.
func blobObject(blob *container.BlobItem, prefix string) (output.StorageObject, bool) {
	name := *blob.Name
	if !IsDatasetFile(name) {
		return output.StorageObject{}, false
	}

	obj := output.StorageObject{
		Key: strings.TrimPrefix(strings.TrimPrefix(name, prefix), "/"),
	}
	if blob.Properties != nil {
		if blob.Properties.ContentLength != nil {
			obj.Size = *blob.Properties.ContentLength
		}
		if blob.Properties.LastModified != nil {
			obj.LastModified = blob.Properties.LastModified.Unix()
		}
		if blob.Properties.ETag != nil {
			obj.ETag = string(*blob.Properties.ETag)
		}
	}
	return obj, true
}

// parseAzureURI splits az://container/key into container and key.
func parseAzureURI(uri string) (cont, key string, err error) {
	trimmed := strings.TrimPrefix(uri, "az://")
	if trimmed == uri || trimmed == "" {
		return "", "", fmt.Errorf("invalid Azure URI %q", uri)
	}
	parts := strings.SplitN(trimmed, "/", 2)
	cont = parts[0]
	if len(parts) == 2 {
		key = parts[1]
	}
	return cont, key, nil
}
