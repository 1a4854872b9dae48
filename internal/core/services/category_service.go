package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-labs/blog_backend/internal/apperrors"
	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portsrepo "github.com/inkwell-labs/blog_backend/internal/core/ports/repositories"
	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/dto"
	"github.com/inkwell-labs/blog_backend/internal/utils/slugutil"
)

// categoryService implements CategorySvcFacade. Names normalize to
// lowercase before any lookup so casing never forks a category.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new instance of categoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	return s.create(ctx, req.Name, req.Description, req.Color)
}

// FindOrCreateCategory resolves a category by normalized name, creating it
// on first use. Losing a concurrent create just means someone else made it
// first, so the loser refetches.
func (s *categoryService) FindOrCreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	normalized := domain.NormalizeName(name)
	if normalized == "" {
		return nil, apperrors.NewValidationError("category name cannot be empty")
	}

	category, err := s.categoryRepo.FindCategoryByName(ctx, normalized)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	category, err = s.create(ctx, name, "", "")
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.categoryRepo.FindCategoryByName(ctx, normalized)
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) create(ctx context.Context, name, description, color string) (*domain.Category, error) {
	normalized := domain.NormalizeName(name)
	if normalized == "" {
		return nil, apperrors.NewValidationError("category name cannot be empty")
	}

	now := time.Now()
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        normalized,
		Description: description,
		Color:       color,
		Timestamps:  domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	slug, err := slugutil.UniqueSlug(ctx, slugutil.Slugify(normalized), func(ctx context.Context, candidate string) (bool, error) {
		return s.categoryRepo.SlugExists(ctx, candidate, category.CategoryID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to allocate category slug: %w", err)
	}
	category.Slug = slug

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *categoryService) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryBySlug(ctx, slug)
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.ListCategories(ctx)
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		normalized := domain.NormalizeName(*req.Name)
		if normalized == "" {
			return nil, apperrors.NewValidationError("category name cannot be empty")
		}
		if normalized != category.Name {
			category.Name = normalized
			slug, err := slugutil.UniqueSlug(ctx, slugutil.Slugify(normalized), func(ctx context.Context, candidate string) (bool, error) {
				return s.categoryRepo.SlugExists(ctx, candidate, category.CategoryID)
			})
			if err != nil {
				return nil, fmt.Errorf("failed to allocate category slug: %w", err)
			}
			category.Slug = slug
		}
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Color != nil {
		category.Color = *req.Color
	}

	category.UpdatedAt = time.Now()
	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	return s.categoryRepo.DeleteCategory(ctx, categoryID)
}

// tagService implements TagSvcFacade with the same normalization rules.
type tagService struct {
	tagRepo portsrepo.TagRepositoryFacade
}

// NewTagService creates a new instance of tagService.
func NewTagService(tagRepo portsrepo.TagRepositoryFacade) portssvc.TagSvcFacade {
	return &tagService{tagRepo: tagRepo}
}

// FindOrCreateTags resolves tag names to tags, creating missing ones.
// Duplicate names in the input collapse to one tag.
func (s *tagService) FindOrCreateTags(ctx context.Context, names []string) ([]domain.Tag, error) {
	seen := map[string]bool{}
	tags := make([]domain.Tag, 0, len(names))

	for _, name := range names {
		normalized := domain.NormalizeName(name)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true

		tag, err := s.findOrCreateTag(ctx, normalized)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *tagService) findOrCreateTag(ctx context.Context, normalized string) (*domain.Tag, error) {
	tag, err := s.tagRepo.FindTagByName(ctx, normalized)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	newTag := domain.Tag{
		TagID:      uuid.NewString(),
		Name:       normalized,
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	slug, err := slugutil.UniqueSlug(ctx, slugutil.Slugify(normalized), func(ctx context.Context, candidate string) (bool, error) {
		return s.tagRepo.SlugExists(ctx, candidate, newTag.TagID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to allocate tag slug: %w", err)
	}
	newTag.Slug = slug

	if err := s.tagRepo.SaveTag(ctx, newTag); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.tagRepo.FindTagByName(ctx, normalized)
		}
		return nil, err
	}
	return &newTag, nil
}

func (s *tagService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tagRepo.ListTags(ctx)
}

func (s *tagService) DeleteTag(ctx context.Context, tagID string) error {
	return s.tagRepo.DeleteTag(ctx, tagID)
}
