package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/wanxuanju/monument-api/internal/core/domain"
	"github.com/wanxuanju/monument-api/internal/core/ports"
)

type stubStorage struct {
	mu          sync.Mutex
	objects     map[string][]byte
	contentType map[string]string
	uploadErr   error
	removeErr   error
	removeCalls int
	signErr     error
	lastExpiry  time.Duration
}

func newStubStorage() *stubStorage {
	return &stubStorage{objects: make(map[string][]byte), contentType: make(map[string]string)}
}

func (s *stubStorage) Upload(_ context.Context, path string, r io.Reader, _ int64, opts ports.UploadOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return s.uploadErr
	}
	if _, exists := s.objects[path]; exists && !opts.Upsert {
		return domain.ErrObjectExists
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[path] = data
	s.contentType[path] = opts.ContentType
	return nil
}

func (s *stubStorage) Remove(_ context.Context, paths ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeCalls++
	if s.removeErr != nil {
		return s.removeErr
	}
	for _, p := range paths {
		delete(s.objects, p)
	}
	return nil
}

func (s *stubStorage) PublicURL(path string) string {
	return "https://cdn.example/object/public/wanxuanju-files/" + path
}

func (s *stubStorage) SignedURL(_ context.Context, path string, expiresIn time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.signErr != nil {
		return "", s.signErr
	}
	s.lastExpiry = expiresIn
	return s.PublicURL(path) + "?token=signed", nil
}

type stubAttachmentRepo struct {
	mu          sync.Mutex
	records     map[string]*domain.Attachment
	nextID      int
	insertErr   error
	failForName string
	findErr     error
	deleteErr   error
}

func newStubAttachmentRepo() *stubAttachmentRepo {
	return &stubAttachmentRepo{records: make(map[string]*domain.Attachment)}
}

func (r *stubAttachmentRepo) Insert(_ context.Context, att *domain.Attachment) (*domain.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	if r.failForName != "" && att.FileName == r.failForName {
		return nil, errors.New("insert rejected")
	}
	r.nextID++
	clone := *att
	clone.ID = fmt.Sprintf("att-%d", r.nextID)
	r.records[clone.ID] = &clone
	return &clone, nil
}

func (r *stubAttachmentRepo) FindByAnnouncement(_ context.Context, announcementID string) ([]*domain.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*domain.Attachment
	for _, att := range r.records {
		if att.AnnouncementID == announcementID {
			clone := *att
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubAttachmentRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.records[id]; !ok {
		return domain.ErrAttachmentNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *stubAttachmentRepo) DeleteByAnnouncement(_ context.Context, announcementID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for id, att := range r.records {
		if att.AnnouncementID == announcementID {
			delete(r.records, id)
		}
	}
	return nil
}

func fileInput(name, content string) ports.FileInput {
	return ports.FileInput{
		Name:        name,
		ContentType: "application/pdf",
		Size:        int64(len(content)),
		Reader:      bytes.NewReader([]byte(content)),
	}
}

func newAttachmentService(storage *stubStorage, repo *stubAttachmentRepo) *AttachmentService {
	return NewAttachmentService(storage, repo, zerolog.Nop())
}

func TestAttachmentService_Upload_Success(t *testing.T) {
	storage := newStubStorage()
	repo := newStubAttachmentRepo()
	svc := newAttachmentService(storage, repo)

	att, err := svc.Upload(context.Background(), "ann-1", fileInput("visit-form.pdf", "pdf-bytes"), 3)
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	if len(storage.objects) != 1 || len(repo.records) != 1 {
		t.Fatalf("expected exactly one object and one record, got %d/%d", len(storage.objects), len(repo.records))
	}
	if _, ok := storage.objects[att.StoragePath]; !ok {
		t.Fatalf("record path %q does not match stored object", att.StoragePath)
	}
	if !strings.HasPrefix(att.StoragePath, "announcements/ann-1/") {
		t.Fatalf("path not scoped to announcement: %q", att.StoragePath)
	}
	if !strings.HasSuffix(att.StoragePath, ".pdf") {
		t.Fatalf("path lost original extension: %q", att.StoragePath)
	}
	if att.FileName != "visit-form.pdf" || att.FileSize != int64(len("pdf-bytes")) || att.DisplayOrder != 3 {
		t.Fatalf("record fields wrong: %+v", att)
	}
	if att.FileURL != storage.PublicURL(att.StoragePath) {
		t.Fatalf("record URL %q does not match derived URL", att.FileURL)
	}
}

func TestAttachmentService_Upload_CompensatingDelete(t *testing.T) {
	storage := newStubStorage()
	repo := newStubAttachmentRepo()
	repo.insertErr = errors.New("insert rejected")
	svc := newAttachmentService(storage, repo)

	_, err := svc.Upload(context.Background(), "ann-1", fileInput("a.pdf", "data"), 0)
	if err == nil {
		t.Fatalf("expected error when metadata insert fails")
	}
	if len(storage.objects) != 0 {
		t.Fatalf("stored object must be removed after failed insert, %d left", len(storage.objects))
	}
}

func TestAttachmentService_Upload_StorageFailureSkipsInsert(t *testing.T) {
	storage := newStubStorage()
	storage.uploadErr = errors.New("bucket unavailable")
	repo := newStubAttachmentRepo()
	svc := newAttachmentService(storage, repo)

	_, err := svc.Upload(context.Background(), "ann-1", fileInput("a.pdf", "data"), 0)
	if err == nil {
		t.Fatalf("expected error when storage write fails")
	}
	if len(repo.records) != 0 {
		t.Fatalf("no metadata insert may be attempted after failed write")
	}
}

func TestAttachmentService_UploadMany_Success(t *testing.T) {
	storage := newStubStorage()
	repo := newStubAttachmentRepo()
	svc := newAttachmentService(storage, repo)

	files := []ports.FileInput{
		fileInput("one.pdf", "1"),
		fileInput("two.pdf", "22"),
		fileInput("three.pdf", "333"),
	}
	created, err := svc.UploadMany(context.Background(), "ann-1", files)
	if err != nil {
		t.Fatalf("UploadMany returned error: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("expected 3 attachments, got %d", len(created))
	}
	for i, att := range created {
		if att.DisplayOrder != i {
			t.Fatalf("expected index as display order, got %d at %d", att.DisplayOrder, i)
		}
	}
}

func TestAttachmentService_UploadMany_PartialFailureKeepsSucceeded(t *testing.T) {
	storage := newStubStorage()
	repo := newStubAttachmentRepo()
	svc := newAttachmentService(storage, repo)

	repo.failForName = "bad.pdf"
	created, err := svc.UploadMany(context.Background(), "ann-1", []ports.FileInput{
		fileInput("ok.pdf", "1"),
		fileInput("bad.pdf", "22"),
	})
	if err == nil {
		t.Fatalf("expected aggregate failure")
	}
	if len(created) != 1 || created[0].FileName != "ok.pdf" {
		t.Fatalf("succeeded upload must be kept and reported, got %+v", created)
	}
	if len(storage.objects) != 1 {
		t.Fatalf("failed upload's object must be compensated away, leaving 1, got %d", len(storage.objects))
	}
	if _, ok := storage.objects[created[0].StoragePath]; !ok {
		t.Fatalf("surviving object must belong to the succeeded upload")
	}
}

func TestAttachmentService_Delete_RecordThenObject(t *testing.T) {
	storage := newStubStorage()
	repo := newStubAttachmentRepo()
	svc := newAttachmentService(storage, repo)

	att, err := svc.Upload(context.Background(), "ann-1", fileInput("a.pdf", "data"), 0)
	if err != nil {
		t.Fatalf("seed upload failed: %v", err)
	}

	if err := svc.Delete(context.Background(), att.ID, att.StoragePath); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(repo.records) != 0 || len(storage.objects) != 0 {
		t.Fatalf("expected record and object gone, got %d/%d", len(repo.records), len(storage.objects))
	}
}

func TestAttachmentService_Delete_RecordFailureKeepsObject(t *testing.T) {
	storage := newStubStorage()
	repo := newStubAttachmentRepo()
	svc := newAttachmentService(storage, repo)

	att, _ := svc.Upload(context.Background(), "ann-1", fileInput("a.pdf", "data"), 0)
	repo.deleteErr = errors.New("db down")

	if err := svc.Delete(context.Background(), att.ID, att.StoragePath); err == nil {
		t.Fatalf("expected failure when record delete fails")
	}
	if len(storage.objects) != 1 {
		t.Fatalf("object must be retained when the record delete fails")
	}
}

func TestAttachmentService_Delete_ObjectFailureStillSucceeds(t *testing.T) {
	storage := newStubStorage()
	repo := newStubAttachmentRepo()
	svc := newAttachmentService(storage, repo)

	att, _ := svc.Upload(context.Background(), "ann-1", fileInput("a.pdf", "data"), 0)
	storage.removeErr = errors.New("storage down")

	if err := svc.Delete(context.Background(), att.ID, att.StoragePath); err != nil {
		t.Fatalf("operation must succeed when only the object delete fails, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Fatalf("record must be gone")
	}
}

func TestAttachmentService_DeleteAll(t *testing.T) {
	storage := newStubStorage()
	repo := newStubAttachmentRepo()
	svc := newAttachmentService(storage, repo)

	for i := 0; i < 3; i++ {
		if _, err := svc.Upload(context.Background(), "ann-1", fileInput(fmt.Sprintf("f%d.pdf", i), "data"), i); err != nil {
			t.Fatalf("seed upload failed: %v", err)
		}
	}
	svc.Upload(context.Background(), "ann-2", fileInput("other.pdf", "data"), 0)

	if err := svc.DeleteAll(context.Background(), "ann-1"); err != nil {
		t.Fatalf("DeleteAll returned error: %v", err)
	}
	if len(repo.records) != 1 {
		t.Fatalf("only the other announcement's record should remain, got %d", len(repo.records))
	}
	if len(storage.objects) != 1 {
		t.Fatalf("only the other announcement's object should remain, got %d", len(storage.objects))
	}
}

func TestAttachmentService_DeleteAll_EmptyIsNoOp(t *testing.T) {
	storage := newStubStorage()
	repo := newStubAttachmentRepo()
	svc := newAttachmentService(storage, repo)

	if err := svc.DeleteAll(context.Background(), "ann-empty"); err != nil {
		t.Fatalf("DeleteAll on empty announcement must succeed, got %v", err)
	}
	if storage.removeCalls != 0 {
		t.Fatalf("no storage remove may be issued for zero attachments")
	}
}

func TestAttachmentService_SignedURL_DefaultExpiry(t *testing.T) {
	storage := newStubStorage()
	svc := newAttachmentService(storage, newStubAttachmentRepo())

	url, err := svc.GetSignedURL(context.Background(), "announcements/a/x.pdf", 0)
	if err != nil {
		t.Fatalf("GetSignedURL returned error: %v", err)
	}
	if url == "" {
		t.Fatalf("expected signed url")
	}
	if storage.lastExpiry != DefaultSignedURLExpiry {
		t.Fatalf("expected default expiry %v, got %v", DefaultSignedURLExpiry, storage.lastExpiry)
	}

	storage.signErr = errors.New("rejected")
	if _, err := svc.GetSignedURL(context.Background(), "announcements/a/x.pdf", time.Minute); err == nil {
		t.Fatalf("expected access error when backend rejects the request")
	}
}
