package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wanxuanju/monument-api/internal/api/metrics"
	"github.com/wanxuanju/monument-api/internal/core/ports"
)

// AnnouncementHandler exposes announcement CRUD. Reads are public; writes
// sit behind the admin middleware.
type AnnouncementHandler struct {
	announcements ports.AnnouncementService
}

func NewAnnouncementHandler(announcements ports.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

type announcementRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Content     string `json:"content" validate:"required"`
	IsImportant bool   `json:"is_important"`
	IsVisible   bool   `json:"is_visible"`
}

// List returns a page of announcements. Anonymous callers only see visible
// ones; admins can pass ?all=true to include drafts.
func (h *AnnouncementHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	isAdmin, _ := c.Get("is_admin").(bool)
	showAll := isAdmin && c.QueryParam("all") == "true"

	result, err := h.announcements.List(c.Request().Context(), ports.ListAnnouncementsFilter{
		VisibleOnly: !showAll,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *AnnouncementHandler) Get(c echo.Context) error {
	a, err := h.announcements.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AnnouncementHandler) Create(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req announcementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a, err := h.announcements.Create(c.Request().Context(), ports.CreateAnnouncementInput{
		Title:       req.Title,
		Content:     req.Content,
		IsImportant: req.IsImportant,
		IsVisible:   req.IsVisible,
		Author:      identity.ProviderName(),
	})
	if err != nil {
		return err
	}

	metrics.AnnouncementsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, a)
}

func (h *AnnouncementHandler) Update(c echo.Context) error {
	var req announcementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a, err := h.announcements.Update(c.Request().Context(), ports.UpdateAnnouncementInput{
		ID:          c.Param("id"),
		Title:       req.Title,
		Content:     req.Content,
		IsImportant: req.IsImportant,
		IsVisible:   req.IsVisible,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, a)
}

// Delete removes an announcement together with all of its attachments.
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	if err := h.announcements.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
