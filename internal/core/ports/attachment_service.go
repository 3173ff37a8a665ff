package ports

import (
	"context"
	"io"
	"time"

	"github.com/wanxuanju/monument-api/internal/core/domain"
)

// FileInput is one file handed to the attachment manager, typically backed
// by a multipart form part.
type FileInput struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// AttachmentManager coordinates the storage object and metadata record that
// together make up an attachment.
type AttachmentManager interface {
	Upload(ctx context.Context, announcementID string, file FileInput, displayOrder int) (*domain.Attachment, error)

	// UploadMany uploads all files concurrently with their index as display
	// order. On failure it reports the first error; attachments that
	// already succeeded are returned alongside it and are NOT rolled back.
	UploadMany(ctx context.Context, announcementID string, files []FileInput) ([]*domain.Attachment, error)

	Delete(ctx context.Context, attachmentID, storagePath string) error
	DeleteAll(ctx context.Context, announcementID string) error
	List(ctx context.Context, announcementID string) ([]*domain.Attachment, error)

	GetURL(storagePath string) string
	GetSignedURL(ctx context.Context, storagePath string, expiresIn time.Duration) (string, error)
}
