package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrAnnouncementNotFound = errors.New("announcement not found")
var ErrAttachmentNotFound = errors.New("attachment not found")
var ErrObjectExists = errors.New("storage object already exists")
var ErrObjectNotFound = errors.New("storage object not found")
var ErrForbidden = errors.New("access forbidden")

// Announcement is the parent aggregate attachments belong to.
type Announcement struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Content     string    `json:"content" bson:"content"`
	IsImportant bool      `json:"is_important" bson:"is_important"`
	IsVisible   bool      `json:"is_visible" bson:"is_visible"`
	Author      string    `json:"author" bson:"author"`
	PublishedAt time.Time `json:"published_at" bson:"published_at"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Attachment pairs a stored binary object with its metadata record. The two
// are created and deleted as a unit by the attachment service.
type Attachment struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	AnnouncementID string    `json:"announcement_id" bson:"announcement_id"`
	FileName       string    `json:"file_name" bson:"file_name"`
	StoragePath    string    `json:"storage_path" bson:"storage_path"`
	FileURL        string    `json:"file_url" bson:"file_url"`
	FileSize       int64     `json:"file_size" bson:"file_size"`
	FileType       string    `json:"file_type" bson:"file_type"`
	DisplayOrder   int       `json:"display_order" bson:"display_order"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
