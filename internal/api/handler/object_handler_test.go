package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/wanxuanju/monument-api/internal/core/domain"
)

type stubObjectStore struct {
	objects map[string]string
	tokens  map[string]string
}

func (s *stubObjectStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	content, ok := s.objects[path]
	if !ok {
		return nil, domain.ErrObjectNotFound
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (s *stubObjectStore) Verify(token string) (string, error) {
	path, ok := s.tokens[token]
	if !ok {
		return "", errors.New("verify token: invalid")
	}
	return path, nil
}

func objectTestContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestObjectHandler_Public(t *testing.T) {
	store := &stubObjectStore{objects: map[string]string{"announcements/a1/doc.pdf": "pdf bytes"}}
	h := NewObjectHandler(store, "wanxuanju-files")

	c, rec := objectTestContext("/storage/v1/object/public/wanxuanju-files/announcements/a1/doc.pdf")
	c.SetParamNames("bucket", "*")
	c.SetParamValues("wanxuanju-files", "announcements/a1/doc.pdf")

	if err := h.Public(c); err != nil {
		t.Fatalf("public: %v", err)
	}
	if rec.Body.String() != "pdf bytes" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "application/pdf" {
		t.Fatalf("unexpected content type: %s", ct)
	}
}

func TestObjectHandler_WrongBucket(t *testing.T) {
	store := &stubObjectStore{objects: map[string]string{"doc.pdf": "x"}}
	h := NewObjectHandler(store, "wanxuanju-files")

	c, _ := objectTestContext("/storage/v1/object/public/other/doc.pdf")
	c.SetParamNames("bucket", "*")
	c.SetParamValues("other", "doc.pdf")

	if err := h.Public(c); !errors.Is(err, domain.ErrObjectNotFound) {
		t.Fatalf("expected object not found, got %v", err)
	}
}

func TestObjectHandler_SignedHappyPath(t *testing.T) {
	store := &stubObjectStore{
		objects: map[string]string{"announcements/a1/doc.pdf": "pdf bytes"},
		tokens:  map[string]string{"tok-ok": "announcements/a1/doc.pdf"},
	}
	h := NewObjectHandler(store, "wanxuanju-files")

	c, rec := objectTestContext("/storage/v1/object/sign/wanxuanju-files/announcements/a1/doc.pdf?token=tok-ok")
	c.SetParamNames("bucket", "*")
	c.SetParamValues("wanxuanju-files", "announcements/a1/doc.pdf")

	if err := h.Signed(c); err != nil {
		t.Fatalf("signed: %v", err)
	}
	if rec.Body.String() != "pdf bytes" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestObjectHandler_SignedPathMismatch(t *testing.T) {
	store := &stubObjectStore{
		objects: map[string]string{"announcements/a1/other.pdf": "x"},
		tokens:  map[string]string{"tok-ok": "announcements/a1/doc.pdf"},
	}
	h := NewObjectHandler(store, "wanxuanju-files")

	c, _ := objectTestContext("/storage/v1/object/sign/wanxuanju-files/announcements/a1/other.pdf?token=tok-ok")
	c.SetParamNames("bucket", "*")
	c.SetParamValues("wanxuanju-files", "announcements/a1/other.pdf")

	if err := h.Signed(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestObjectHandler_SignedRejectsBadToken(t *testing.T) {
	store := &stubObjectStore{tokens: map[string]string{}}
	h := NewObjectHandler(store, "wanxuanju-files")

	for name, target := range map[string]string{
		"missing token": "/storage/v1/object/sign/wanxuanju-files/doc.pdf",
		"unknown token": "/storage/v1/object/sign/wanxuanju-files/doc.pdf?token=nope",
	} {
		c, _ := objectTestContext(target)
		c.SetParamNames("bucket", "*")
		c.SetParamValues("wanxuanju-files", "doc.pdf")

		err := h.Signed(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %v", name, err)
		}
	}
}
