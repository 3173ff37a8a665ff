package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wanxuanju/monument-api/internal/core/domain"
)

const metaCollection = "user_meta_info"

// MongoMetaRepository persists user_meta_info records, one per identity.
type MongoMetaRepository struct {
	coll *mongo.Collection
}

func NewMetaRepository(db *mongo.Database) *MongoMetaRepository {
	return &MongoMetaRepository{coll: db.Collection(metaCollection)}
}

type mongoUserMeta struct {
	UserID   string `bson:"user_id"`
	FullName string `bson:"full_name"`
	Role     string `bson:"role"`
}

func (r *MongoMetaRepository) FindByUserID(ctx context.Context, userID string) (*domain.UserMeta, error) {
	var mm mongoUserMeta
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user meta: %w", err)
	}
	return &domain.UserMeta{UserID: mm.UserID, FullName: mm.FullName, Role: mm.Role}, nil
}

func (r *MongoMetaRepository) Insert(ctx context.Context, meta *domain.UserMeta) (*domain.UserMeta, error) {
	doc := mongoUserMeta{UserID: meta.UserID, FullName: meta.FullName, Role: meta.Role}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user meta: %w", err)
	}
	return meta, nil
}

func (r *MongoMetaRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete user meta: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique user_id index that backs the
// one-record-per-identity invariant. Call once at startup.
func (r *MongoMetaRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: uniqueIndex(),
	})
	if err != nil {
		return fmt.Errorf("user meta indexes: %w", err)
	}
	return nil
}

func uniqueIndex() *options.IndexOptions {
	return options.Index().SetUnique(true)
}
