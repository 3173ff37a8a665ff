package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wanxuanju/monument-api/internal/core/domain"
)

const attachmentCollection = "announcement_attachments"

// MongoAttachmentRepository persists announcement attachment records.
type MongoAttachmentRepository struct {
	coll *mongo.Collection
}

func NewAttachmentRepository(db *mongo.Database) *MongoAttachmentRepository {
	return &MongoAttachmentRepository{coll: db.Collection(attachmentCollection)}
}

type mongoAttachment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	AnnouncementID string             `bson:"announcement_id"`
	FileName       string             `bson:"file_name"`
	StoragePath    string             `bson:"storage_path"`
	FileURL        string             `bson:"file_url"`
	FileSize       int64              `bson:"file_size"`
	FileType       string             `bson:"file_type"`
	DisplayOrder   int                `bson:"display_order"`
	CreatedAt      int64              `bson:"created_at"`
}

func (r *MongoAttachmentRepository) Insert(ctx context.Context, att *domain.Attachment) (*domain.Attachment, error) {
	doc := mongoAttachment{
		ID:             primitive.NewObjectID(),
		AnnouncementID: att.AnnouncementID,
		FileName:       att.FileName,
		StoragePath:    att.StoragePath,
		FileURL:        att.FileURL,
		FileSize:       att.FileSize,
		FileType:       att.FileType,
		DisplayOrder:   att.DisplayOrder,
		CreatedAt:      att.CreatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert attachment: %w", err)
	}
	return toAttachment(&doc), nil
}

func (r *MongoAttachmentRepository) FindByAnnouncement(ctx context.Context, announcementID string) ([]*domain.Attachment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"announcement_id": announcementID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find attachments: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Attachment
	for cursor.Next(ctx) {
		var ma mongoAttachment
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode attachment: %w", err)
		}
		out = append(out, toAttachment(&ma))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate attachments: %w", err)
	}
	return out, nil
}

func (r *MongoAttachmentRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAttachmentNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAttachmentNotFound
	}
	return nil
}

func (r *MongoAttachmentRepository) DeleteByAnnouncement(ctx context.Context, announcementID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"announcement_id": announcementID}); err != nil {
		return fmt.Errorf("delete attachments: %w", err)
	}
	return nil
}

func toAttachment(ma *mongoAttachment) *domain.Attachment {
	return &domain.Attachment{
		ID:             ma.ID.Hex(),
		AnnouncementID: ma.AnnouncementID,
		FileName:       ma.FileName,
		StoragePath:    ma.StoragePath,
		FileURL:        ma.FileURL,
		FileSize:       ma.FileSize,
		FileType:       ma.FileType,
		DisplayOrder:   ma.DisplayOrder,
		CreatedAt:      time.Unix(ma.CreatedAt, 0).UTC(),
	}
}
