package services

import (
	"context"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	"github.com/inkwell-labs/blog_backend/internal/dto"
)

// CategorySvcFacade defines category management. Names are normalized
// before lookup so "Go" and "go" resolve to the same category.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	// FindOrCreateCategory resolves a category by normalized name, creating
	// it on first use.
	FindOrCreateCategory(ctx context.Context, name string) (*domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

// TagSvcFacade defines tag management with the same normalization rules.
type TagSvcFacade interface {
	// FindOrCreateTags resolves tag names to tags, creating missing ones.
	// Duplicate names in the input collapse to one tag.
	FindOrCreateTags(ctx context.Context, names []string) ([]domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	DeleteTag(ctx context.Context, tagID string) error
}
