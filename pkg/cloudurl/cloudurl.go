// Package cloudurl parses and composes s3:// object URLs.
//
// The orchestration layer moves artifacts between the local filesystem and a
// single remote object store; everything remote is addressed by an s3:// URL
// of the form s3://bucket/key.
package cloudurl

import (
	"errors"
	"fmt"
	"strings"
)

// Parsing errors.
var (
	// ErrInvalidURL indicates the URL could not be parsed.
	ErrInvalidURL = errors.New("invalid object URL")

	// ErrUnsupportedScheme indicates the URL scheme is not supported.
	ErrUnsupportedScheme = errors.New("unsupported scheme")

	// ErrMissingBucket indicates the URL is missing a bucket name.
	ErrMissingBucket = errors.New("missing bucket name")
)

// ObjectURL is a parsed remote object location.
type ObjectURL struct {
	// Bucket is the bucket name.
	Bucket string

	// Key is the object key or prefix. May be empty for the bucket root.
	Key string
}

// String returns the URL in canonical s3://bucket/key form.
func (u *ObjectURL) String() string {
	if u.Key != "" {
		return fmt.Sprintf("s3://%s/%s", u.Bucket, u.Key)
	}
	return fmt.Sprintf("s3://%s/", u.Bucket)
}

// IsRemote reports whether s looks like a remote object URL rather than a
// local filesystem path.
func IsRemote(s string) bool {
	return strings.HasPrefix(strings.ToLower(s), "s3://")
}

// Parse parses an s3:// URL into bucket and key.
//
// Supported forms:
//   - s3://bucket
//   - s3://bucket/
//   - s3://bucket/key
//   - s3://bucket/prefix/
func Parse(raw string) (*ObjectURL, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrInvalidURL)
	}

	schemeEnd := strings.Index(raw, "://")
	if schemeEnd == -1 {
		return nil, fmt.Errorf("%w: missing scheme (expected s3://...)", ErrInvalidURL)
	}

	scheme := strings.ToLower(raw[:schemeEnd])
	if scheme != "s3" {
		return nil, fmt.Errorf("%w: %s (supported: s3)", ErrUnsupportedScheme, scheme)
	}

	remainder := raw[schemeEnd+3:]
	if remainder == "" {
		return nil, fmt.Errorf("%w: in %s", ErrMissingBucket, raw)
	}

	var bucket, key string
	if slash := strings.Index(remainder, "/"); slash == -1 {
		bucket = remainder
	} else {
		bucket = remainder[:slash]
		key = remainder[slash+1:]
	}

	if bucket == "" {
		return nil, fmt.Errorf("%w: in %s", ErrMissingBucket, raw)
	}

	return &ObjectURL{Bucket: bucket, Key: key}, nil
}

// Join appends path segments to a remote URL or prefix, normalizing slashes.
// Empty segments are skipped.
func Join(base string, parts ...string) string {
	out := strings.TrimSuffix(base, "/")
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p == "" {
			continue
		}
		out = out + "/" + p
	}
	return out
}
