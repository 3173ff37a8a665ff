package ports

import (
	"context"

	"github.com/wanxuanju/monument-api/internal/core/domain"
)

// CreateAnnouncementInput carries the data for a new announcement.
type CreateAnnouncementInput struct {
	Title       string
	Content     string
	IsImportant bool
	IsVisible   bool
	Author      string
}

// UpdateAnnouncementInput updates an existing announcement in place.
type UpdateAnnouncementInput struct {
	ID          string
	Title       string
	Content     string
	IsImportant bool
	IsVisible   bool
}

// AnnouncementPage is a page of announcements plus pagination totals.
type AnnouncementPage struct {
	Items      []*domain.Announcement
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AnnouncementService defines use-case operations for announcements.
// Deleting an announcement also deletes all of its attachments.
type AnnouncementService interface {
	Create(ctx context.Context, input CreateAnnouncementInput) (*domain.Announcement, error)
	Get(ctx context.Context, id string) (*domain.Announcement, error)
	List(ctx context.Context, filter ListAnnouncementsFilter) (*AnnouncementPage, error)
	Update(ctx context.Context, input UpdateAnnouncementInput) (*domain.Announcement, error)
	Delete(ctx context.Context, id string) error
}
