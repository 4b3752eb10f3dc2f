package domain

import (
	"fmt"
	"strings"
)

// ObjectRef addresses a document stored in an S3-compatible bucket.
type ObjectRef struct {
	Bucket string
	Key    string
}

// String renders the reference as an s3:// URI.
func (r ObjectRef) String() string {
	return "s3://" + r.Bucket + "/" + r.Key
}

// ParseObjectURI parses "s3://bucket/key". Both bucket and key must be non-empty.
func ParseObjectURI(uri string) (ObjectRef, error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return ObjectRef{}, fmt.Errorf("%w: %q must start with s3://", ErrInvalidObjectURI, uri)
	}
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return ObjectRef{}, fmt.Errorf("%w: %q must name a bucket and a key", ErrInvalidObjectURI, uri)
	}
	return ObjectRef{Bucket: bucket, Key: key}, nil
}

// IsObjectURI reports whether s looks like an s3:// URI.
func IsObjectURI(s string) bool {
	return strings.HasPrefix(s, "s3://")
}
