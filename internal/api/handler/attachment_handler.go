package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wanxuanju/monument-api/internal/api/metrics"
	"github.com/wanxuanju/monument-api/internal/core/domain"
	"github.com/wanxuanju/monument-api/internal/core/ports"
	"github.com/wanxuanju/monument-api/internal/core/service"
)

// AttachmentHandler exposes attachment management for announcements. All
// mutating routes sit behind the admin middleware.
type AttachmentHandler struct {
	attachments ports.AttachmentManager
}

func NewAttachmentHandler(attachments ports.AttachmentManager) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments}
}

type uploadResponse struct {
	Uploaded []*domain.Attachment `json:"uploaded"`
	Error    string               `json:"error,omitempty"`
}

// Upload accepts a multipart form with one or more "files" parts and uploads
// them as attachments of the announcement. On partial failure the response
// still lists the attachments that made it; those are not rolled back.
func (h *AttachmentHandler) Upload(c echo.Context) error {
	announcementID := c.Param("id")

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form required")
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no files in request")
	}

	files := make([]ports.FileInput, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable file part")
		}
		defer f.Close()

		files = append(files, ports.FileInput{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Reader:      f,
		})
	}

	created, uploadErr := h.attachments.UploadMany(c.Request().Context(), announcementID, files)
	for _, att := range created {
		metrics.AttachmentUploadsTotal.WithLabelValues("success").Inc()
		metrics.AttachmentUploadBytes.Observe(float64(att.FileSize))
	}

	if uploadErr != nil {
		metrics.AttachmentUploadsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusInternalServerError, uploadResponse{
			Uploaded: created,
			Error:    "one or more uploads failed",
		})
	}

	return c.JSON(http.StatusCreated, uploadResponse{Uploaded: created})
}

// List returns an announcement's attachments in display order.
func (h *AttachmentHandler) List(c echo.Context) error {
	atts, err := h.attachments.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, atts)
}

// Delete removes one attachment: the metadata record first, then the
// storage object.
func (h *AttachmentHandler) Delete(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path query parameter required")
	}

	if err := h.attachments.Delete(c.Request().Context(), c.Param("id"), path); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SignedURL returns a time-limited download URL for a storage path. The
// expires_in query parameter is in seconds and defaults to one hour.
func (h *AttachmentHandler) SignedURL(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path query parameter required")
	}

	expiresIn := service.DefaultSignedURLExpiry
	if raw := c.QueryParam("expires_in"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "expires_in must be a positive integer")
		}
		expiresIn = time.Duration(secs) * time.Second
	}

	url, err := h.attachments.GetSignedURL(c.Request().Context(), path, expiresIn)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
