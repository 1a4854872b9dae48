package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/inkwell-labs/blog_backend/internal/apperrors"
	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portsrepo "github.com/inkwell-labs/blog_backend/internal/core/ports/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoUserRepository struct {
	coll *mongo.Collection
}

func newMongoUserRepository(db *mongo.Database) portsrepo.UserRepositoryFacade {
	return &MongoUserRepository{coll: db.Collection("users")}
}

var _ portsrepo.UserRepositoryFacade = (*MongoUserRepository)(nil)

func (r *MongoUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	_, err := r.coll.InsertOne(ctx, toUserDocument(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("username or email taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUserWhere(ctx, bson.M{"_id": userID})
}

func (r *MongoUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUserWhere(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *MongoUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUserWhere(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) FindUserByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findUserWhere(ctx, bson.M{"email_verification_token": token})
}

func (r *MongoUserRepository) FindUserByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findUserWhere(ctx, bson.M{"password_reset_token": token})
}

func (r *MongoUserRepository) findUserWhere(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user := doc.toDomain()
	return &user, nil
}

func (r *MongoUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	doc := toUserDocument(user)
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.UserID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("username or email taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *MongoUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error {
	update := bson.M{"$set": bson.M{
		"refresh_token_hash":   tokenHash,
		"refresh_token_expiry": expiry,
		"updated_at":           time.Now().UTC(),
	}}
	result, err := r.coll.UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *MongoUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	update := bson.M{
		"$unset": bson.M{"refresh_token_hash": "", "refresh_token_expiry": ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	}
	result, err := r.coll.UpdateByID(ctx, userID, update)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}
