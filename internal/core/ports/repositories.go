package ports

import (
	"context"

	"github.com/wanxuanju/monument-api/internal/core/domain"
)

// AccountRepository is the credential store behind the auth backend adapter.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
}

// MetaRepository persists user_meta_info records, keyed by user id.
type MetaRepository interface {
	// FindByUserID returns domain.ErrUserNotFound when no record exists.
	FindByUserID(ctx context.Context, userID string) (*domain.UserMeta, error)
	Insert(ctx context.Context, meta *domain.UserMeta) (*domain.UserMeta, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

// AttachmentRepository persists announcement_attachments records.
type AttachmentRepository interface {
	Insert(ctx context.Context, att *domain.Attachment) (*domain.Attachment, error)
	FindByAnnouncement(ctx context.Context, announcementID string) ([]*domain.Attachment, error)
	// DeleteByID returns domain.ErrAttachmentNotFound when no record matched.
	DeleteByID(ctx context.Context, id string) error
	DeleteByAnnouncement(ctx context.Context, announcementID string) error
}

// ListAnnouncementsFilter carries the query parameters for listing
// announcements. Page is 1-based; Limit is capped by the service.
type ListAnnouncementsFilter struct {
	VisibleOnly bool
	Page        int
	Limit       int
}

// AnnouncementRepository persists announcements.
type AnnouncementRepository interface {
	Insert(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error)
	// FindByID returns domain.ErrAnnouncementNotFound when no record exists.
	FindByID(ctx context.Context, id string) (*domain.Announcement, error)
	// List returns a page of announcements and the total count.
	List(ctx context.Context, filter ListAnnouncementsFilter) ([]*domain.Announcement, int64, error)
	Update(ctx context.Context, a *domain.Announcement) error
	DeleteByID(ctx context.Context, id string) error
}
