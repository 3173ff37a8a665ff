package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wanxuanju/monument-api/internal/core/domain"
	"github.com/wanxuanju/monument-api/internal/core/ports"
)

const maxPageSize = 100

// AnnouncementService implements announcement use cases. Deleting an
// announcement cascades into its attachments through the attachment manager
// so storage and metadata stay consistent.
type AnnouncementService struct {
	repo        ports.AnnouncementRepository
	attachments ports.AttachmentManager
	log         zerolog.Logger
}

func NewAnnouncementService(repo ports.AnnouncementRepository, attachments ports.AttachmentManager, log zerolog.Logger) *AnnouncementService {
	return &AnnouncementService{repo: repo, attachments: attachments, log: log}
}

func (s *AnnouncementService) Create(ctx context.Context, input ports.CreateAnnouncementInput) (*domain.Announcement, error) {
	now := time.Now().UTC()
	created, err := s.repo.Insert(ctx, &domain.Announcement{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Content:     input.Content,
		IsImportant: input.IsImportant,
		IsVisible:   input.IsVisible,
		Author:      input.Author,
		PublishedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}

	s.log.Info().Str("announcement_id", created.ID).Str("title", created.Title).Msg("announcement created")
	return created, nil
}

func (s *AnnouncementService) Get(ctx context.Context, id string) (*domain.Announcement, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AnnouncementService) List(ctx context.Context, filter ports.ListAnnouncementsFilter) (*ports.AnnouncementPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.AnnouncementPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *AnnouncementService) Update(ctx context.Context, input ports.UpdateAnnouncementInput) (*domain.Announcement, error) {
	existing, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	existing.Title = input.Title
	existing.Content = input.Content
	existing.IsImportant = input.IsImportant
	existing.IsVisible = input.IsVisible
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update announcement: %w", err)
	}
	return existing, nil
}

// Delete removes the announcement and all of its attachments. Attachments
// go first: once the parent row is gone their records would be unreachable.
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.attachments.DeleteAll(ctx, id); err != nil {
		return fmt.Errorf("delete announcement attachments: %w", err)
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}

	s.log.Info().Str("announcement_id", id).Msg("announcement deleted")
	return nil
}
