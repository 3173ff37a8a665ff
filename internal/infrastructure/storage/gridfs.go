// Package storage implements the ObjectStorage port on a GridFS bucket.
// Objects are keyed by their storage path (the GridFS filename); public and
// signed URLs are derived from the service base URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wanxuanju/monument-api/internal/core/domain"
	"github.com/wanxuanju/monument-api/internal/core/ports"
)

const defaultIOTimeout = 30 * time.Second

// GridFSStorage is a named bucket backed by GridFS.
type GridFSStorage struct {
	bucket     *gridfs.Bucket
	bucketName string
	baseURL    string
	signer     *URLSigner
}

func NewGridFSStorage(db *mongo.Database, bucketName, baseURL string, signer *URLSigner) (*GridFSStorage, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("open bucket %q: %w", bucketName, err)
	}
	return &GridFSStorage{
		bucket:     bucket,
		bucketName: bucketName,
		baseURL:    baseURL,
		signer:     signer,
	}, nil
}

// Upload writes an object under path. Without Upsert the write fails with
// domain.ErrObjectExists when the path is already taken; with Upsert the
// previous object is removed first.
func (s *GridFSStorage) Upload(ctx context.Context, path string, r io.Reader, _ int64, opts ports.UploadOptions) error {
	existing, err := s.findIDs(ctx, path)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		if !opts.Upsert {
			return fmt.Errorf("upload %q: %w", path, domain.ErrObjectExists)
		}
		for _, id := range existing {
			if err := s.bucket.Delete(id); err != nil {
				return fmt.Errorf("replace %q: %w", path, err)
			}
		}
	}

	meta := bson.M{"content_type": opts.ContentType}
	if opts.CacheControl != "" {
		meta["cache_control"] = opts.CacheControl
	}

	_ = s.bucket.SetWriteDeadline(deadline(ctx))
	stream, err := s.bucket.OpenUploadStream(path, options.GridFSUpload().SetMetadata(meta))
	if err != nil {
		return fmt.Errorf("open upload stream %q: %w", path, err)
	}
	if _, err := io.Copy(stream, r); err != nil {
		_ = stream.Close()
		return fmt.Errorf("write object %q: %w", path, err)
	}
	if err := stream.Close(); err != nil {
		return fmt.Errorf("finalize object %q: %w", path, err)
	}
	return nil
}

// Remove deletes the objects at the given paths. Unknown paths are skipped.
func (s *GridFSStorage) Remove(ctx context.Context, paths ...string) error {
	for _, path := range paths {
		ids, err := s.findIDs(ctx, path)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if err := s.bucket.Delete(id); err != nil {
				return fmt.Errorf("remove %q: %w", path, err)
			}
		}
	}
	return nil
}

// Open returns a reader for the object at path, for the download handler.
func (s *GridFSStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	_ = s.bucket.SetReadDeadline(deadline(ctx))
	stream, err := s.bucket.OpenDownloadStreamByName(path)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, domain.ErrObjectNotFound
		}
		return nil, fmt.Errorf("open object %q: %w", path, err)
	}
	return stream, nil
}

// PublicURL derives the public download URL for a path. Pure; no I/O.
func (s *GridFSStorage) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucketName, path)
}

// SignedURL returns a time-limited URL for a path.
func (s *GridFSStorage) SignedURL(_ context.Context, path string, expiresIn time.Duration) (string, error) {
	token, err := s.signer.Sign(path, expiresIn)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/storage/v1/object/sign/%s/%s?token=%s", s.baseURL, s.bucketName, path, token), nil
}

// Verify resolves a signed-URL token back to the path it grants.
func (s *GridFSStorage) Verify(token string) (string, error) {
	return s.signer.Verify(token)
}

func (s *GridFSStorage) findIDs(ctx context.Context, path string) ([]primitive.ObjectID, error) {
	cursor, err := s.bucket.Find(bson.M{"filename": path})
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", path, err)
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var file struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&file); err != nil {
			return nil, fmt.Errorf("decode file doc %q: %w", path, err)
		}
		ids = append(ids, file.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate files %q: %w", path, err)
	}
	return ids, nil
}

// deadline maps a context deadline onto the bucket's deadline knobs,
// falling back to a fixed I/O timeout.
func deadline(ctx context.Context) time.Time {
	if d, ok := ctx.Deadline(); ok {
		return d
	}
	return time.Now().Add(defaultIOTimeout)
}
