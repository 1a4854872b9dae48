package mongodb

import (
	"context"
	"fmt"

	portsrepo "github.com/inkwell-labs/blog_backend/internal/core/ports/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewRepositoryProvider wires the document adapters over a shared database
// handle and makes sure the uniqueness indexes the adapters rely on exist.
func NewRepositoryProvider(ctx context.Context, db *mongo.Database) (*portsrepo.RepositoryProvider, error) {
	if err := EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}

	userRepo := newMongoUserRepository(db)
	catRepo := newMongoCategoryRepository(db)
	tagRepo := newMongoTagRepository(db)

	return &portsrepo.RepositoryProvider{
		UserRepo:     userRepo,
		BlogRepo:     newMongoBlogRepository(db, userRepo, catRepo, tagRepo),
		CategoryRepo: catRepo,
		TagRepo:      tagRepo,
		CommentRepo:  newMongoCommentRepository(db, userRepo),
		LikeRepo:     newMongoLikeRepository(db),
	}, nil
}

// EnsureIndexes creates the indexes the repositories depend on. Creation is
// idempotent, so running it on every startup is safe.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"blogs": {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "tag_ids", Value: 1}}},
		},
		"categories": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"tags": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"comments": {
			{Keys: bson.D{{Key: "blog_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "parent_id", Value: 1}}},
		},
		"likes": {
			{Keys: bson.D{{Key: "blog_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", coll, err)
		}
	}
	return nil
}
