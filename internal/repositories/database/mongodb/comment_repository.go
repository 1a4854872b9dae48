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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCommentRepository struct {
	coll     *mongo.Collection
	blogs    *mongo.Collection
	userRepo portsrepo.UserReader
}

func newMongoCommentRepository(db *mongo.Database, userRepo portsrepo.UserReader) portsrepo.CommentRepositoryFacade {
	return &MongoCommentRepository{
		coll:     db.Collection("comments"),
		blogs:    db.Collection("blogs"),
		userRepo: userRepo,
	}
}

var _ portsrepo.CommentRepositoryFacade = (*MongoCommentRepository)(nil)

// SaveComment inserts the comment and bumps the blog's comment counter.
// Standalone mongod has no cross-collection transactions, so the counter
// lands as a second step.
func (r *MongoCommentRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	_, err := r.coll.InsertOne(ctx, toCommentDocument(comment))
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return adjustBlogCounter(ctx, r.blogs, comment.BlogID, "comment_count", 1)
}

func (r *MongoCommentRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	var doc commentDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": commentID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	comment := doc.toDomain()
	return &comment, nil
}

// ListCommentsByBlog loads the blog's comments newest first, then resolves
// author usernames in one pass over distinct user ids.
func (r *MongoCommentRepository) ListCommentsByBlog(ctx context.Context, blogID string) ([]domain.CommentWithAuthor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"blog_id": blogID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []commentDocument{}
	for cursor.Next(ctx) {
		var doc commentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode comment document: %w", err)
		}
		docs = append(docs, doc)
	}
	if cursor.Err() != nil {
		return nil, fmt.Errorf("error iterating comment cursor: %w", cursor.Err())
	}

	authors := map[string]*domain.User{}
	comments := make([]domain.CommentWithAuthor, 0, len(docs))
	for _, doc := range docs {
		author, ok := authors[doc.UserID]
		if !ok {
			author, err = r.userRepo.FindUserByID(ctx, doc.UserID)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("failed to resolve comment author: %w", err)
			}
			authors[doc.UserID] = author
		}

		c := domain.CommentWithAuthor{Comment: doc.toDomain()}
		if author != nil {
			c.AuthorUsername = author.Username
			c.AuthorAvatar = author.Avatar
		}
		comments = append(comments, c)
	}
	return comments, nil
}

func (r *MongoCommentRepository) UpdateComment(ctx context.Context, comment domain.Comment) error {
	update := bson.M{"$set": bson.M{
		"content":    comment.Content,
		"is_edited":  comment.IsEdited,
		"updated_at": comment.UpdatedAt,
	}}
	result, err := r.coll.UpdateByID(ctx, comment.CommentID, update)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("comment %s: %w", comment.CommentID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteCommentTree walks the reply graph breadth-first, removes the whole
// subtree and drops the blog's comment counter by the same amount,
// reporting how many documents went away.
func (r *MongoCommentRepository) DeleteCommentTree(ctx context.Context, commentID string) (int64, error) {
	root, err := r.FindCommentByID(ctx, commentID)
	if err != nil {
		return 0, err
	}

	toDelete := []string{commentID}
	frontier := []string{commentID}

	for len(frontier) > 0 {
		cursor, err := r.coll.Find(ctx,
			bson.M{"parent_id": bson.M{"$in": frontier}},
			options.Find().SetProjection(bson.M{"_id": 1}),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to collect comment replies: %w", err)
		}

		next := []string{}
		for cursor.Next(ctx) {
			var doc struct {
				CommentID string `bson:"_id"`
			}
			if err := cursor.Decode(&doc); err != nil {
				cursor.Close(ctx)
				return 0, fmt.Errorf("failed to decode reply id: %w", err)
			}
			next = append(next, doc.CommentID)
		}
		if err := cursor.Err(); err != nil {
			cursor.Close(ctx)
			return 0, fmt.Errorf("error iterating reply cursor: %w", err)
		}
		cursor.Close(ctx)

		toDelete = append(toDelete, next...)
		frontier = next
	}

	result, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": toDelete}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete comment tree: %w", err)
	}
	if result.DeletedCount == 0 {
		return 0, fmt.Errorf("comment %s: %w", commentID, apperrors.ErrNotFound)
	}

	if err := adjustBlogCounter(ctx, r.blogs, root.BlogID, "comment_count", -result.DeletedCount); err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
