package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/terrascope/gridcrs/internal/domain"
	"github.com/terrascope/gridcrs/internal/ports/output"
)

// S3Fetcher implements the Fetcher port for s3:// URIs.
type S3Fetcher struct {
	client *s3.Client
}

// S3Config holds S3 client configuration.
type S3Config struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Fetcher creates an S3 fetcher.
func NewS3Fetcher(ctx context.Context, cfg S3Config) (*S3Fetcher, error) {
	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(cfg.Region))

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	var clientOpts []func(*s3.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Fetcher{client: s3.NewFromConfig(awsCfg, clientOpts...)}, nil
}

// Supports accepts s3:// URIs.
func (f *S3Fetcher) Supports(uri string) bool {
	return strings.HasPrefix(uri, "s3://")
}

// Fetch downloads the object behind uri into destDir and returns the
// local path.
func (f *S3Fetcher) Fetch(ctx context.Context, uri string, destDir string) (string, error) {
	bucket, key, err := parseS3URI(uri)
	if err != nil {
		return "", &domain.StorageError{Operation: "fetch", Key: uri, Err: err}
	}

	resp, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
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

// List returns the dataset objects under an s3://bucket/prefix URI, keyed
// relative to the prefix.
func (f *S3Fetcher) List(ctx context.Context, uri string) ([]output.StorageObject, error) {
	bucket, prefix, err := parseS3URI(uri)
	if err != nil {
		return nil, &domain.StorageError{Operation: "list", Key: uri, Err: err}
	}

	var objects []output.StorageObject
	paginator := s3.NewListObjectsV2Paginator(f.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &domain.StorageError{Operation: "list", Key: uri, Err: err}
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !IsDatasetFile(key) {
				continue
			}
			relKey := strings.TrimPrefix(strings.TrimPrefix(key, prefix), "/")
			objects = append(objects, output.StorageObject{
				Key:          relKey,
				Size:         aws.ToInt64(obj.Size),
				LastModified: obj.LastModified.Unix(),
				ETag:         strings.Trim(aws.ToString(obj.ETag), "\""),
			})
		}
	}
	return objects, nil
}

// parseS3URI splits s3://bucket/key into bucket and key. The key part may
// be empty for a bucket-wide listing.
func parseS3URI(uri string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(uri, "s3://")
	if trimmed == uri || trimmed == "" {
		return "", "", fmt.Errorf("invalid S3 URI %q", uri)
	}
	parts := strings.SplitN(trimmed, "/", 2)
	bucket = parts[0]
	if len(parts) == 2 {
		key = parts[1]
	}
	return bucket, key, nil
}
