package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/inkwell-labs/blog_backend/internal/apperrors"
	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portsrepo "github.com/inkwell-labs/blog_backend/internal/core/ports/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoLikeRepository struct {
	coll  *mongo.Collection
	blogs *mongo.Collection
}

func newMongoLikeRepository(db *mongo.Database) portsrepo.LikeRepositoryFacade {
	return &MongoLikeRepository{coll: db.Collection("likes"), blogs: db.Collection("blogs")}
}

var _ portsrepo.LikeRepositoryFacade = (*MongoLikeRepository)(nil)

// SaveLike inserts the like and bumps the blog's like counter. The unique
// {blog_id, user_id} index rejects a second like from the same user.
func (r *MongoLikeRepository) SaveLike(ctx context.Context, like domain.Like) error {
	_, err := r.coll.InsertOne(ctx, toLikeDocument(like))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("blog already liked: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return adjustBlogCounter(ctx, r.blogs, like.BlogID, "like_count", 1)
}

func (r *MongoLikeRepository) FindLike(ctx context.Context, blogID string, userID string) (*domain.Like, error) {
	var doc likeDocument
	err := r.coll.FindOne(ctx, bson.M{"blog_id": blogID, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find like: %w", err)
	}
	like := doc.toDomain()
	return &like, nil
}

// DeleteLike removes the like and drops the blog's like counter when a
// document actually went away.
func (r *MongoLikeRepository) DeleteLike(ctx context.Context, blogID string, userID string) (bool, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"blog_id": blogID, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}
	if result.DeletedCount == 0 {
		return false, nil
	}
	if err := adjustBlogCounter(ctx, r.blogs, blogID, "like_count", -1); err != nil {
		return false, err
	}
	return true, nil
}
