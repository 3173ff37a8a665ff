package handler

import (
	"context"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/wanxuanju/monument-api/internal/core/domain"
)

// objectStore is the slice of the storage backend the download routes need.
type objectStore interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Verify(token string) (string, error)
}

// ObjectHandler streams stored objects. Public objects are addressed by
// bucket and path; signed access additionally requires a valid token whose
// embedded path matches the requested one.
type ObjectHandler struct {
	store  objectStore
	bucket string
}

func NewObjectHandler(store objectStore, bucket string) *ObjectHandler {
	return &ObjectHandler{store: store, bucket: bucket}
}

// Public handles GET /storage/v1/object/public/:bucket/*.
func (h *ObjectHandler) Public(c echo.Context) error {
	return h.serve(c, c.Param("*"))
}

// Signed handles GET /storage/v1/object/sign/:bucket/*?token=...
func (h *ObjectHandler) Signed(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	signedPath, err := h.store.Verify(token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}

	path := c.Param("*")
	if signedPath != path {
		return domain.ErrForbidden
	}
	return h.serve(c, path)
}

func (h *ObjectHandler) serve(c echo.Context, path string) error {
	if c.Param("bucket") != h.bucket || path == "" {
		return domain.ErrObjectNotFound
	}

	rc, err := h.store.Open(c.Request().Context(), path)
	if err != nil {
		return err
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Stream(http.StatusOK, contentType, rc)
}
