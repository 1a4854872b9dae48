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

type MongoTagRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func newMongoTagRepository(db *mongo.Database) portsrepo.TagRepositoryFacade {
	return &MongoTagRepository{db: db, coll: db.Collection("tags")}
}

var _ portsrepo.TagRepositoryFacade = (*MongoTagRepository)(nil)

func (r *MongoTagRepository) SaveTag(ctx context.Context, tag domain.Tag) error {
	_, err := r.coll.InsertOne(ctx, toTagDocument(tag))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("tag name or slug taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert tag: %w", err)
	}
	return nil
}

func (r *MongoTagRepository) FindTagByID(ctx context.Context, tagID string) (*domain.Tag, error) {
	return r.findTagWhere(ctx, bson.M{"_id": tagID})
}

func (r *MongoTagRepository) FindTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	return r.findTagWhere(ctx, bson.M{"name": domain.NormalizeName(name)})
}

func (r *MongoTagRepository) findTagWhere(ctx context.Context, filter bson.M) (*domain.Tag, error) {
	var doc tagDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	tag := doc.toDomain()
	return &tag, nil
}

func (r *MongoTagRepository) FindTagsByIDs(ctx context.Context, tagIDs []string) ([]domain.Tag, error) {
	if len(tagIDs) == 0 {
		return []domain.Tag{}, nil
	}
	filter := bson.M{"_id": bson.M{"$in": tagIDs}}
	return r.listTags(ctx, filter)
}

func (r *MongoTagRepository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return r.listTags(ctx, bson.M{})
}

func (r *MongoTagRepository) listTags(ctx context.Context, filter bson.M) ([]domain.Tag, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer cursor.Close(ctx)

	tags := []domain.Tag{}
	for cursor.Next(ctx) {
		var doc tagDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode tag document: %w", err)
		}
		tags = append(tags, doc.toDomain())
	}
	return tags, cursor.Err()
}

func (r *MongoTagRepository) UpdateTag(ctx context.Context, tag domain.Tag) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": tag.TagID}, toTagDocument(tag))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("tag name or slug taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update tag: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("tag %s: %w", tag.TagID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *MongoTagRepository) DeleteTag(ctx context.Context, tagID string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": tagID})
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("tag %s: %w", tagID, apperrors.ErrNotFound)
	}

	_, err = r.db.Collection("blogs").UpdateMany(ctx,
		bson.M{"tag_ids": tagID},
		bson.M{"$pull": bson.M{"tag_ids": tagID}},
	)
	if err != nil {
		return fmt.Errorf("failed to detach tag from blogs: %w", err)
	}
	return nil
}

func (r *MongoTagRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	filter := bson.M{"slug": slug, "_id": bson.M{"$ne": excludeID}}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check tag slug: %w", err)
	}
	return count > 0, nil
}
