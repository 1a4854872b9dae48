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

type MongoCategoryRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func newMongoCategoryRepository(db *mongo.Database) portsrepo.CategoryRepositoryFacade {
	return &MongoCategoryRepository{db: db, coll: db.Collection("categories")}
}

var _ portsrepo.CategoryRepositoryFacade = (*MongoCategoryRepository)(nil)

func (r *MongoCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	_, err := r.coll.InsertOne(ctx, toCategoryDocument(category))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("category name or slug taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *MongoCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	return r.findCategoryWhere(ctx, bson.M{"_id": categoryID})
}

func (r *MongoCategoryRepository) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.findCategoryWhere(ctx, bson.M{"name": domain.NormalizeName(name)})
}

func (r *MongoCategoryRepository) FindCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return r.findCategoryWhere(ctx, bson.M{"slug": slug})
}

func (r *MongoCategoryRepository) findCategoryWhere(ctx context.Context, filter bson.M) (*domain.Category, error) {
	var doc categoryDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	category := doc.toDomain()
	return &category, nil
}

func (r *MongoCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := []domain.Category{}
	for cursor.Next(ctx) {
		var doc categoryDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode category document: %w", err)
		}
		categories = append(categories, doc.toDomain())
	}
	return categories, cursor.Err()
}

func (r *MongoCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": category.CategoryID}, toCategoryDocument(category))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("category name or slug taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("category %s: %w", category.CategoryID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *MongoCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": categoryID})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("category %s: %w", categoryID, apperrors.ErrNotFound)
	}

	// Detach so posts survive as uncategorized.
	_, err = r.db.Collection("blogs").UpdateMany(ctx,
		bson.M{"category_id": categoryID},
		bson.M{"$unset": bson.M{"category_id": ""}},
	)
	if err != nil {
		return fmt.Errorf("failed to detach category from blogs: %w", err)
	}
	return nil
}

func (r *MongoCategoryRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	filter := bson.M{"slug": slug, "_id": bson.M{"$ne": excludeID}}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check category slug: %w", err)
	}
	return count > 0, nil
}
