// Package provider defines abstractions for cloud object storage operations.
//
// The orchestration layer stages training data, configuration documents, and
// model artifacts through a single bucket. Providers implement a minimal
// file-oriented surface: upload a local file, download an object, list a
// results prefix, and probe object metadata. Authentication uses SDK default
// credential chains - providers should not implement custom auth logic.
package provider

import (
	"context"
	"time"
)

// Provider abstracts the object storage operations used for artifact staging.
//
// Implementations should:
//   - Use SDK default credential chains (AWS default config)
//   - Be safe for concurrent use
type Provider interface {
	// Upload copies a local file to the given key and returns the resulting
	// remote URL (s3://bucket/key).
	Upload(ctx context.Context, localPath, key string) (string, error)

	// Download copies the object at key to a local file, creating parent
	// directories as needed.
	Download(ctx context.Context, key, localPath string) error

	// List returns a page of objects with the given prefix.
	// Use ContinuationToken from ListResult for subsequent pages.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)

	// Head returns metadata for a single object.
	// Returns ErrNotFound if the object does not exist.
	Head(ctx context.Context, key string) (*ObjectMeta, error)

	// EnsureBucket creates the configured bucket if it does not already exist.
	EnsureBucket(ctx context.Context) error

	// Bucket returns the configured bucket name.
	Bucket() string

	// Close releases any resources held by the provider.
	Close() error
}

// ListOptions configures a List operation.
type ListOptions struct {
	// Prefix filters results to keys starting with this value.
	// Empty string lists all objects.
	Prefix string

	// ContinuationToken resumes listing from a previous ListResult.
	// Empty string starts from the beginning.
	ContinuationToken string

	// MaxKeys limits the number of objects returned per page.
	// Zero uses provider default (typically 1000).
	MaxKeys int
}

// ListResult contains a page of objects from a List operation.
type ListResult struct {
	// Objects contains the object summaries for this page.
	Objects []ObjectSummary

	// ContinuationToken is used to retrieve the next page.
	// Empty string indicates no more pages.
	ContinuationToken string

	// IsTruncated indicates whether more results are available.
	IsTruncated bool
}

// ObjectSummary contains basic metadata returned from List operations.
type ObjectSummary struct {
	// Key is the full object key (path) in the bucket.
	Key string

	// Size is the object size in bytes.
	Size int64

	// ETag is the entity tag, typically an MD5 hash of the object.
	ETag string

	// LastModified is when the object was last modified.
	LastModified time.Time
}

// ObjectMeta contains full metadata for a single object.
// Returned by Head operations.
type ObjectMeta struct {
	ObjectSummary

	// ContentType is the MIME type of the object.
	ContentType string

	// Metadata contains user-defined metadata key-value pairs.
	Metadata map[string]string
}
