package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/wanxuanju/monument-api/internal/core/domain"
	"github.com/wanxuanju/monument-api/internal/core/ports"
)

type stubAnnouncementService struct {
	lastFilter ports.ListAnnouncementsFilter
	lastCreate ports.CreateAnnouncementInput
	deletedIDs []string
	getErr     error
}

func (s *stubAnnouncementService) Create(_ context.Context, input ports.CreateAnnouncementInput) (*domain.Announcement, error) {
	s.lastCreate = input
	return &domain.Announcement{ID: "a1", Title: input.Title, Content: input.Content}, nil
}

func (s *stubAnnouncementService) Get(_ context.Context, id string) (*domain.Announcement, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &domain.Announcement{ID: id, Title: "t"}, nil
}

func (s *stubAnnouncementService) List(_ context.Context, filter ports.ListAnnouncementsFilter) (*ports.AnnouncementPage, error) {
	s.lastFilter = filter
	return &ports.AnnouncementPage{Items: nil, Page: 1, Limit: 10}, nil
}

func (s *stubAnnouncementService) Update(_ context.Context, input ports.UpdateAnnouncementInput) (*domain.Announcement, error) {
	return &domain.Announcement{ID: input.ID, Title: input.Title}, nil
}

func (s *stubAnnouncementService) Delete(_ context.Context, id string) error {
	s.deletedIDs = append(s.deletedIDs, id)
	return nil
}

func TestAnnouncementHandler_ListDefaultsToVisibleOnly(t *testing.T) {
	svc := &stubAnnouncementService{}
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/announcements?page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewAnnouncementHandler(svc).List(c); err != nil {
		t.Fatalf("list: %v", err)
	}

	if !svc.lastFilter.VisibleOnly {
		t.Fatalf("anonymous list must be visible-only")
	}
	if svc.lastFilter.Page != 2 || svc.lastFilter.Limit != 5 {
		t.Fatalf("pagination not forwarded: %+v", svc.lastFilter)
	}
}

func TestAnnouncementHandler_AdminCanListAll(t *testing.T) {
	svc := &stubAnnouncementService{}
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/announcements?all=true", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("is_admin", true)

	if err := NewAnnouncementHandler(svc).List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if svc.lastFilter.VisibleOnly {
		t.Fatalf("admin ?all=true must include hidden announcements")
	}
}

func TestAnnouncementHandler_NonAdminCannotListAll(t *testing.T) {
	svc := &stubAnnouncementService{}
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/announcements?all=true", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewAnnouncementHandler(svc).List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !svc.lastFilter.VisibleOnly {
		t.Fatalf("?all=true without admin must stay visible-only")
	}
}

func TestAnnouncementHandler_CreateUsesIdentityAsAuthor(t *testing.T) {
	svc := &stubAnnouncementService{}
	e := echo.New()
	e.Validator = NewValidator()

	body := `{"title":"修復公告","content":"東側迴廊整修","is_visible":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/announcements", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity", &domain.Identity{
		ID:       "u1",
		Email:    "admin@example.com",
		Metadata: map[string]any{"full_name": "張文華"},
	})

	if err := NewAnnouncementHandler(svc).Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastCreate.Author != "張文華" {
		t.Fatalf("author not taken from identity: %q", svc.lastCreate.Author)
	}
}

func TestAnnouncementHandler_CreateWithoutIdentity(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(http.MethodPost, "/api/announcements", strings.NewReader(`{"title":"t","content":"c"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewAnnouncementHandler(&stubAnnouncementService{}).Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAnnouncementHandler_Delete(t *testing.T) {
	svc := &stubAnnouncementService{}
	e := echo.New()

	req := httptest.NewRequest(http.MethodDelete, "/api/announcements/a1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("a1")

	if err := NewAnnouncementHandler(svc).Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(svc.deletedIDs) != 1 || svc.deletedIDs[0] != "a1" {
		t.Fatalf("delete not forwarded: %v", svc.deletedIDs)
	}
}
