package repositories

import (
	"context"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
)

// CategoryRepositoryFacade exposes CRUD and lookup operations for categories.
type CategoryRepositoryFacade interface {
	// SaveCategory persists a new category. Returns apperrors.ErrDuplicate
	// when the name or slug is taken.
	SaveCategory(ctx context.Context, category domain.Category) error

	// FindCategoryByID retrieves a category by ID.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// FindCategoryByName retrieves a category by its normalized name.
	FindCategoryByName(ctx context.Context, normalizedName string) (*domain.Category, error)

	// FindCategoryBySlug retrieves a category by slug.
	FindCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)

	// ListCategories returns all categories sorted by name.
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// UpdateCategory updates an existing category.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes a category. Blogs referencing it keep a null
	// category afterwards.
	DeleteCategory(ctx context.Context, categoryID string) error

	// SlugExists reports whether a slug is taken by a category other than
	// excludeID.
	SlugExists(ctx context.Context, slug string, excludeID string) (bool, error)
}

// TagRepositoryFacade exposes CRUD and lookup operations for tags.
type TagRepositoryFacade interface {
	// SaveTag persists a new tag. Returns apperrors.ErrDuplicate when the
	// name or slug is taken.
	SaveTag(ctx context.Context, tag domain.Tag) error

	// FindTagByID retrieves a tag by ID.
	FindTagByID(ctx context.Context, tagID string) (*domain.Tag, error)

	// FindTagByName retrieves a tag by its normalized name.
	FindTagByName(ctx context.Context, normalizedName string) (*domain.Tag, error)

	// FindTagsByIDs retrieves the tags for the given IDs, preserving input
	// order for IDs that exist.
	FindTagsByIDs(ctx context.Context, tagIDs []string) ([]domain.Tag, error)

	// ListTags returns all tags sorted by name.
	ListTags(ctx context.Context) ([]domain.Tag, error)

	// UpdateTag updates an existing tag.
	UpdateTag(ctx context.Context, tag domain.Tag) error

	// DeleteTag removes a tag and its blog links.
	DeleteTag(ctx context.Context, tagID string) error

	// SlugExists reports whether a slug is taken by a tag other than
	// excludeID.
	SlugExists(ctx context.Context, slug string, excludeID string) (bool, error)
}
