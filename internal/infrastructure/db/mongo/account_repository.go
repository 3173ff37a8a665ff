package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wanxuanju/monument-api/internal/core/domain"
)

const accountCollection = "auth_accounts"

// MongoAccountRepository is the credential store behind the auth backend.
type MongoAccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *MongoAccountRepository {
	return &MongoAccountRepository{coll: db.Collection(accountCollection)}
}

type mongoAccount struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Email          string             `bson:"email"`
	PasswordHash   string             `bson:"password_hash"`
	Metadata       map[string]any     `bson:"metadata,omitempty"`
	EmailConfirmed bool               `bson:"email_confirmed"`
	CreatedAt      int64              `bson:"created_at"`
}

func (r *MongoAccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	doc := mongoAccount{
		Email:          account.Email,
		PasswordHash:   account.PasswordHash,
		Metadata:       account.Metadata,
		EmailConfirmed: account.EmailConfirmed,
		CreatedAt:      account.CreatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	// fetch back to get the generated id
	return r.FindByEmail(ctx, account.Email)
}

func (r *MongoAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var ma mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return toAccount(&ma), nil
}

func (r *MongoAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var ma mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return toAccount(&ma), nil
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (r *MongoAccountRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: uniqueIndex(),
	})
	if err != nil {
		return fmt.Errorf("account indexes: %w", err)
	}
	return nil
}

func toAccount(ma *mongoAccount) *domain.Account {
	return &domain.Account{
		ID:             ma.ID.Hex(),
		Email:          ma.Email,
		PasswordHash:   ma.PasswordHash,
		Metadata:       ma.Metadata,
		EmailConfirmed: ma.EmailConfirmed,
		CreatedAt:      time.Unix(ma.CreatedAt, 0).UTC(),
	}
}
