package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wanxuanju/monument-api/internal/core/domain"
	"github.com/wanxuanju/monument-api/internal/core/ports"
)

const announcementCollection = "announcements"

// MongoAnnouncementRepository persists announcements. Announcement ids are
// caller-assigned UUIDs, stored as the document _id.
type MongoAnnouncementRepository struct {
	coll *mongo.Collection
}

func NewAnnouncementRepository(db *mongo.Database) *MongoAnnouncementRepository {
	return &MongoAnnouncementRepository{coll: db.Collection(announcementCollection)}
}

func (r *MongoAnnouncementRepository) Insert(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return nil, fmt.Errorf("insert announcement: %w", err)
	}
	return a, nil
}

func (r *MongoAnnouncementRepository) FindByID(ctx context.Context, id string) (*domain.Announcement, error) {
	var a domain.Announcement
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("find announcement: %w", err)
	}
	return &a, nil
}

func (r *MongoAnnouncementRepository) List(ctx context.Context, filter ports.ListAnnouncementsFilter) ([]*domain.Announcement, int64, error) {
	query := bson.M{}
	if filter.VisibleOnly {
		query["is_visible"] = true
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count announcements: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "published_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list announcements: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Announcement
	for cursor.Next(ctx) {
		var a domain.Announcement
		if err := cursor.Decode(&a); err != nil {
			return nil, 0, fmt.Errorf("decode announcement: %w", err)
		}
		out = append(out, &a)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate announcements: %w", err)
	}
	return out, total, nil
}

func (r *MongoAnnouncementRepository) Update(ctx context.Context, a *domain.Announcement) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAnnouncementNotFound
	}
	return nil
}

func (r *MongoAnnouncementRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	return nil
}
