package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/wanxuanju/monument-api/internal/core/domain"
	"github.com/wanxuanju/monument-api/internal/core/ports"
)

// DefaultSignedURLExpiry is used when the caller asks for a signed URL
// without an explicit expiry.
const DefaultSignedURLExpiry = time.Hour

const attachmentCacheControl = "3600"

// AttachmentService keeps the binary object store and the metadata records
// for announcement attachments from diverging on the common failure paths:
// a storage write whose metadata insert fails is compensated by deleting the
// just-written object, and deletes remove the record before the object so
// nothing ever references a missing object.
type AttachmentService struct {
	storage ports.ObjectStorage
	repo    ports.AttachmentRepository
	log     zerolog.Logger
}

func NewAttachmentService(storage ports.ObjectStorage, repo ports.AttachmentRepository, log zerolog.Logger) *AttachmentService {
	return &AttachmentService{storage: storage, repo: repo, log: log}
}

// Upload writes the file to storage under a collision-resistant path scoped
// to the announcement, then inserts the metadata record. If the insert
// fails the stored object is deleted before the error is surfaced.
func (s *AttachmentService) Upload(ctx context.Context, announcementID string, file ports.FileInput, displayOrder int) (*domain.Attachment, error) {
	path := storagePath(announcementID, file.Name)

	err := s.storage.Upload(ctx, path, file.Reader, file.Size, ports.UploadOptions{
		ContentType:  file.ContentType,
		CacheControl: attachmentCacheControl,
		Upsert:       false,
	})
	if err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}

	created, err := s.repo.Insert(ctx, &domain.Attachment{
		AnnouncementID: announcementID,
		FileName:       file.Name,
		StoragePath:    path,
		FileURL:        s.storage.PublicURL(path),
		FileSize:       file.Size,
		FileType:       file.ContentType,
		DisplayOrder:   displayOrder,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		// Compensating delete: never leave a stored object no record points to.
		if rmErr := s.storage.Remove(ctx, path); rmErr != nil {
			s.log.Error().Err(rmErr).Str("path", path).Msg("orphaned object: compensating delete failed")
		}
		return nil, fmt.Errorf("persist attachment record: %w", err)
	}

	s.log.Info().
		Str("announcement_id", announcementID).
		Str("path", path).
		Int64("size", file.Size).
		Msg("attachment uploaded")

	return created, nil
}

// UploadMany uploads every file concurrently, using its index as display
// order. It fails fast on the first error. Already-succeeded uploads are
// NOT rolled back; they are returned alongside the error so the caller can
// compensate.
func (s *AttachmentService) UploadMany(ctx context.Context, announcementID string, files []ports.FileInput) ([]*domain.Attachment, error) {
	var (
		mu      sync.Mutex
		created []*domain.Attachment
	)

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			att, err := s.Upload(ctx, announcementID, f, i)
			if err != nil {
				return err
			}
			mu.Lock()
			created = append(created, att)
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	sort.Slice(created, func(a, b int) bool { return created[a].DisplayOrder < created[b].DisplayOrder })
	if err != nil {
		s.log.Warn().Err(err).
			Str("announcement_id", announcementID).
			Int("succeeded", len(created)).
			Int("requested", len(files)).
			Msg("bulk upload failed partway; succeeded attachments kept")
		return created, err
	}
	return created, nil
}

// Delete removes the metadata record, then best-effort deletes the storage
// object. A failed record delete fails the whole operation; a failed object
// delete is logged and the operation still succeeds, since no record
// references the object any more.
func (s *AttachmentService) Delete(ctx context.Context, attachmentID, storagePath string) error {
	if err := s.repo.DeleteByID(ctx, attachmentID); err != nil {
		return fmt.Errorf("delete attachment record: %w", err)
	}

	if storagePath != "" {
		if err := s.storage.Remove(ctx, storagePath); err != nil {
			s.log.Warn().Err(err).
				Str("attachment_id", attachmentID).
				Str("path", storagePath).
				Msg("record deleted but object removal failed")
		}
	}
	return nil
}

// DeleteAll removes every attachment of an announcement: best-effort bulk
// object removal first (logged on failure), then the metadata records
// (fatal on failure). Zero attachments is a successful no-op with no
// storage call.
func (s *AttachmentService) DeleteAll(ctx context.Context, announcementID string) error {
	attachments, err := s.repo.FindByAnnouncement(ctx, announcementID)
	if err != nil {
		return fmt.Errorf("list attachments: %w", err)
	}
	if len(attachments) == 0 {
		return nil
	}

	paths := make([]string, 0, len(attachments))
	for _, att := range attachments {
		if att.StoragePath != "" {
			paths = append(paths, att.StoragePath)
		}
	}
	if len(paths) > 0 {
		if err := s.storage.Remove(ctx, paths...); err != nil {
			s.log.Warn().Err(err).
				Str("announcement_id", announcementID).
				Int("count", len(paths)).
				Msg("bulk object removal failed")
		}
	}

	if err := s.repo.DeleteByAnnouncement(ctx, announcementID); err != nil {
		return fmt.Errorf("delete attachment records: %w", err)
	}
	return nil
}

// List returns the attachment records of an announcement.
func (s *AttachmentService) List(ctx context.Context, announcementID string) ([]*domain.Attachment, error) {
	return s.repo.FindByAnnouncement(ctx, announcementID)
}

// GetURL derives the public URL for a storage path. Pure; no I/O.
func (s *AttachmentService) GetURL(storagePath string) string {
	return s.storage.PublicURL(storagePath)
}

// GetSignedURL requests a time-limited access URL. expiresIn <= 0 selects
// DefaultSignedURLExpiry.
func (s *AttachmentService) GetSignedURL(ctx context.Context, storagePath string, expiresIn time.Duration) (string, error) {
	if expiresIn <= 0 {
		expiresIn = DefaultSignedURLExpiry
	}
	url, err := s.storage.SignedURL(ctx, storagePath, expiresIn)
	if err != nil {
		return "", fmt.Errorf("sign attachment url: %w", err)
	}
	return url, nil
}

// storagePath builds announcements/{id}/{unixMillis}_{suffix}{ext}. The
// timestamp plus random suffix makes collisions negligible by construction.
func storagePath(announcementID, fileName string) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("announcements/%s/%d_%s%s",
		announcementID, time.Now().UnixMilli(), suffix, filepath.Ext(fileName))
}
