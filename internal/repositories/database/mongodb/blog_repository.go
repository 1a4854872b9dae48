package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/inkwell-labs/blog_backend/internal/apperrors"
	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portsrepo "github.com/inkwell-labs/blog_backend/internal/core/ports/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoBlogRepository struct {
	db       *mongo.Database
	coll     *mongo.Collection
	userRepo portsrepo.UserReader
	catRepo  portsrepo.CategoryRepositoryFacade
	tagRepo  portsrepo.TagRepositoryFacade
}

func newMongoBlogRepository(db *mongo.Database, userRepo portsrepo.UserReader, catRepo portsrepo.CategoryRepositoryFacade, tagRepo portsrepo.TagRepositoryFacade) portsrepo.BlogRepositoryFacade {
	return &MongoBlogRepository{
		db:       db,
		coll:     db.Collection("blogs"),
		userRepo: userRepo,
		catRepo:  catRepo,
		tagRepo:  tagRepo,
	}
}

var _ portsrepo.BlogRepositoryFacade = (*MongoBlogRepository)(nil)

// blogSortFields whitelists sortable fields against document keys.
var blogSortFields = map[string]string{
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"published_at": "published_at",
	"title":        "title",
	"view_count":   "view_count",
	"like_count":   "like_count",
}

func (r *MongoBlogRepository) SaveBlog(ctx context.Context, blog domain.Blog) error {
	_, err := r.coll.InsertOne(ctx, toBlogDocument(blog))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("blog slug taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert blog: %w", err)
	}
	return nil
}

func (r *MongoBlogRepository) UpdateBlog(ctx context.Context, blog domain.Blog) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": blog.BlogID}, toBlogDocument(blog))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("blog slug taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update blog: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("blog %s: %w", blog.BlogID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteBlog removes the blog with its comments and likes. Without
// cross-collection transactions on standalone servers the cascades run
// best-effort after the blog delete succeeds.
func (r *MongoBlogRepository) DeleteBlog(ctx context.Context, blogID string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": blogID})
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("blog %s: %w", blogID, apperrors.ErrNotFound)
	}

	if _, err := r.db.Collection("comments").DeleteMany(ctx, bson.M{"blog_id": blogID}); err != nil {
		return fmt.Errorf("failed to cascade blog comments: %w", err)
	}
	if _, err := r.db.Collection("likes").DeleteMany(ctx, bson.M{"blog_id": blogID}); err != nil {
		return fmt.Errorf("failed to cascade blog likes: %w", err)
	}
	return nil
}

func (r *MongoBlogRepository) FindBlogByID(ctx context.Context, blogID string) (*domain.Blog, error) {
	return r.findBlogWhere(ctx, bson.M{"_id": blogID})
}

func (r *MongoBlogRepository) FindBlogBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	return r.findBlogWhere(ctx, bson.M{"slug": slug})
}

func (r *MongoBlogRepository) findBlogWhere(ctx context.Context, filter bson.M) (*domain.Blog, error) {
	var doc blogDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find blog: %w", err)
	}
	blog := doc.toDomain()
	return &blog, nil
}

func (r *MongoBlogRepository) FindBlogWithRelations(ctx context.Context, blogID string) (*domain.BlogWithRelations, error) {
	blog, err := r.FindBlogByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return r.loadRelations(ctx, blog)
}

func (r *MongoBlogRepository) FindBlogWithRelationsBySlug(ctx context.Context, slug string) (*domain.BlogWithRelations, error) {
	blog, err := r.FindBlogBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return r.loadRelations(ctx, blog)
}

func (r *MongoBlogRepository) loadRelations(ctx context.Context, blog *domain.Blog) (*domain.BlogWithRelations, error) {
	result := &domain.BlogWithRelations{Blog: *blog}

	author, err := r.userRepo.FindUserByID(ctx, blog.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load blog author: %w", err)
	}
	result.Author = *author

	if blog.CategoryID != nil {
		category, err := r.catRepo.FindCategoryByID(ctx, *blog.CategoryID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load blog category: %w", err)
		}
		result.Category = category
	}

	if len(blog.TagIDs) > 0 {
		tags, err := r.tagRepo.FindTagsByIDs(ctx, blog.TagIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load blog tags: %w", err)
		}
		result.Tags = tags
	}

	return result, nil
}

// buildBlogFilter translates structured predicates into a Mongo filter.
func buildBlogFilter(filters []domain.Filter) (bson.M, error) {
	query := bson.M{}
	var and []bson.M

	for _, f := range filters {
		switch f.Op {
		case domain.OpEq:
			key, err := blogFilterKey(f.Field)
			if err != nil {
				return nil, err
			}
			if f.Field == "tag_id" {
				and = append(and, bson.M{"tag_ids": f.Value})
			} else {
				and = append(and, bson.M{key: f.Value})
			}
		case domain.OpContains:
			val, ok := f.Value.(string)
			if !ok {
				return nil, fmt.Errorf("contains filter on %s: %w", f.Field, apperrors.ErrValidation)
			}
			pattern := primitive.Regex{Pattern: regexp.QuoteMeta(val), Options: "i"}
			if f.Field == "search" {
				and = append(and, bson.M{"$or": []bson.M{
					{"title": pattern},
					{"content": pattern},
				}})
			} else {
				key, err := blogFilterKey(f.Field)
				if err != nil {
					return nil, err
				}
				and = append(and, bson.M{key: pattern})
			}
		case domain.OpIn:
			key, err := blogFilterKey(f.Field)
			if err != nil {
				return nil, err
			}
			and = append(and, bson.M{key: bson.M{"$in": f.Value}})
		case domain.OpIsNull:
			key, err := blogFilterKey(f.Field)
			if err != nil {
				return nil, err
			}
			wantNull, _ := f.Value.(bool)
			and = append(and, bson.M{key: bson.M{"$exists": !wantNull}})
		default:
			return nil, fmt.Errorf("unsupported filter op %q: %w", f.Op, apperrors.ErrValidation)
		}
	}

	if len(and) > 0 {
		query["$and"] = and
	}
	return query, nil
}

func blogFilterKey(field string) (string, error) {
	switch field {
	case "status":
		return "status", nil
	case "author_id":
		return "user_id", nil
	case "category_id":
		return "category_id", nil
	case "tag_id":
		return "tag_ids", nil
	case "is_featured":
		return "is_featured", nil
	case "published_at":
		return "published_at", nil
	case "title":
		return "title", nil
	}
	return "", fmt.Errorf("unknown filter field %q: %w", field, apperrors.ErrValidation)
}

func (r *MongoBlogRepository) ListBlogs(ctx context.Context, filters []domain.Filter, sort domain.Sort, page domain.Pagination) ([]domain.Blog, int64, error) {
	filter, err := buildBlogFilter(filters)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}

	sortKey, ok := blogSortFields[sort.Field]
	if !ok {
		sortKey = "created_at"
	}
	dir := -1
	if sort.Direction == domain.SortAsc {
		dir = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortKey, Value: dir}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query blogs: %w", err)
	}
	defer cursor.Close(ctx)

	blogs := []domain.Blog{}
	for cursor.Next(ctx) {
		var doc blogDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("failed to decode blog document: %w", err)
		}
		blogs = append(blogs, doc.toDomain())
	}
	if cursor.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating blog cursor: %w", cursor.Err())
	}

	return blogs, total, nil
}

func (r *MongoBlogRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	filter := bson.M{"slug": slug, "_id": bson.M{"$ne": excludeID}}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check blog slug: %w", err)
	}
	return count > 0, nil
}

func (r *MongoBlogRepository) IncrementViewCount(ctx context.Context, blogID string) error {
	return adjustBlogCounter(ctx, r.coll, blogID, "view_count", 1)
}

// adjustBlogCounter applies the delta server-side with $inc, then clamps a
// racing decrement that dipped below zero.
func adjustBlogCounter(ctx context.Context, blogs *mongo.Collection, blogID string, field string, delta int64) error {
	result, err := blogs.UpdateByID(ctx, blogID, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return fmt.Errorf("failed to adjust %s: %w", field, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("blog %s: %w", blogID, apperrors.ErrNotFound)
	}
	if delta < 0 {
		clamp := bson.M{"_id": blogID, field: bson.M{"$lt": 0}}
		if _, err := blogs.UpdateOne(ctx, clamp, bson.M{"$set": bson.M{field: int64(0)}}); err != nil {
			return fmt.Errorf("failed to clamp %s: %w", field, err)
		}
	}
	return nil
}
