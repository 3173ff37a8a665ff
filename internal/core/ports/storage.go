package ports

import (
	"context"
	"io"
	"time"
)

// UploadOptions mirrors the knobs the storage backend exposes per upload.
type UploadOptions struct {
	ContentType  string
	CacheControl string
	// Upsert allows overwriting an existing object. When false, uploading
	// to an existing path fails with domain.ErrObjectExists.
	Upsert bool
}

// ObjectStorage abstracts the named binary object bucket.
type ObjectStorage interface {
	Upload(ctx context.Context, path string, r io.Reader, size int64, opts UploadOptions) error

	// Remove deletes one or more objects. Missing paths are not an error.
	Remove(ctx context.Context, paths ...string) error

	// PublicURL derives the public download URL for a path. Pure; no I/O.
	PublicURL(path string) string

	// SignedURL returns a time-limited access URL for a path.
	SignedURL(ctx context.Context, path string, expiresIn time.Duration) (string, error)
}
