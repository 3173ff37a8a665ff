package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanxuanju/monument-api/internal/content"
)

// ContentHandler serves the curated informational datasets. All routes are
// public and the payloads are compiled in, so handlers are pure reads.
type ContentHandler struct{}

func NewContentHandler() *ContentHandler {
	return &ContentHandler{}
}

func (h *ContentHandler) History(c echo.Context) error {
	return c.JSON(http.StatusOK, content.HistoryData())
}

func (h *ContentHandler) Directors(c echo.Context) error {
	return c.JSON(http.StatusOK, content.BoardMembers())
}

func (h *ContentHandler) Features(c echo.Context) error {
	return c.JSON(http.StatusOK, content.Features())
}

func (h *ContentHandler) PublicAffairs(c echo.Context) error {
	return c.JSON(http.StatusOK, content.PublicAffairsData())
}
