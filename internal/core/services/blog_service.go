package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-labs/blog_backend/internal/apperrors"
	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portsrepo "github.com/inkwell-labs/blog_backend/internal/core/ports/repositories"
	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/dto"
	"github.com/inkwell-labs/blog_backend/internal/platform/config"
	"github.com/inkwell-labs/blog_backend/internal/utils/slugutil"
	"github.com/inkwell-labs/blog_backend/internal/utils/textutil"
)

// blogService implements BlogSvcFacade: the post lifecycle, listing and
// the like toggle. Slug, excerpt and reading time always derive here, never
// in handlers or storage.
type blogService struct {
	cfg         *config.Config
	blogRepo    portsrepo.BlogRepositoryFacade
	likeRepo    portsrepo.LikeRepositoryFacade
	categorySvc portssvc.CategorySvcFacade
	tagSvc      portssvc.TagSvcFacade
}

// NewBlogService creates a new instance of blogService.
func NewBlogService(cfg *config.Config, blogRepo portsrepo.BlogRepositoryFacade, likeRepo portsrepo.LikeRepositoryFacade, categorySvc portssvc.CategorySvcFacade, tagSvc portssvc.TagSvcFacade) portssvc.BlogSvcFacade {
	return &blogService{
		cfg:         cfg,
		blogRepo:    blogRepo,
		likeRepo:    likeRepo,
		categorySvc: categorySvc,
		tagSvc:      tagSvc,
	}
}

// ListBlogs returns a filtered page of posts. Anonymous callers and callers
// without moderation rights only ever see published posts unless they
// filter down to their own author id, which ListMyBlogs handles instead.
func (s *blogService) ListBlogs(ctx context.Context, params dto.ListBlogsParams, viewer *portssvc.Viewer) ([]domain.Blog, domain.Pagination, int64, error) {
	filters, err := s.buildFilters(ctx, params)
	if err != nil {
		return nil, domain.Pagination{}, 0, err
	}

	status := params.Status
	if viewer == nil || !viewer.CanModerate() {
		status = string(domain.StatusPublished)
	}
	if status != "" {
		filters = append(filters, domain.Filter{Field: "status", Op: domain.OpEq, Value: status})
	}

	return s.listWithFilters(ctx, filters, params)
}

// ListMyBlogs returns the author's own posts in every status.
func (s *blogService) ListMyBlogs(ctx context.Context, authorID string, params dto.ListBlogsParams) ([]domain.Blog, domain.Pagination, int64, error) {
	filters, err := s.buildFilters(ctx, params)
	if err != nil {
		return nil, domain.Pagination{}, 0, err
	}
	filters = append(filters, domain.Filter{Field: "author_id", Op: domain.OpEq, Value: authorID})
	if params.Status != "" {
		filters = append(filters, domain.Filter{Field: "status", Op: domain.OpEq, Value: params.Status})
	}

	return s.listWithFilters(ctx, filters, params)
}

func (s *blogService) listWithFilters(ctx context.Context, filters []domain.Filter, params dto.ListBlogsParams) ([]domain.Blog, domain.Pagination, int64, error) {
	page := domain.Pagination{Page: params.Page, Limit: params.Limit}.Normalize(s.cfg.MaxPageSize)

	sort := domain.Sort{Field: params.SortBy, Direction: domain.SortDesc}
	if params.SortDir == "asc" {
		sort.Direction = domain.SortAsc
	}

	blogs, total, err := s.blogRepo.ListBlogs(ctx, filters, sort, page)
	if err != nil {
		return nil, domain.Pagination{}, 0, fmt.Errorf("failed to list blogs: %w", err)
	}
	return blogs, page, total, nil
}

// buildFilters translates list query parameters into structured predicates.
// Category and tag arrive as slugs/names and resolve to ids first; an
// unknown one yields an empty result, not an error.
func (s *blogService) buildFilters(ctx context.Context, params dto.ListBlogsParams) ([]domain.Filter, error) {
	var filters []domain.Filter

	if params.Search != "" {
		filters = append(filters, domain.Filter{Field: "search", Op: domain.OpContains, Value: params.Search})
	}
	if params.Author != "" {
		filters = append(filters, domain.Filter{Field: "author_id", Op: domain.OpEq, Value: params.Author})
	}
	if params.Featured != nil {
		filters = append(filters, domain.Filter{Field: "is_featured", Op: domain.OpEq, Value: *params.Featured})
	}

	if params.Category != "" {
		category, err := s.categorySvc.GetCategoryBySlug(ctx, params.Category)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				filters = append(filters, domain.Filter{Field: "category_id", Op: domain.OpEq, Value: uuid.Nil.String()})
				return filters, nil
			}
			return nil, err
		}
		filters = append(filters, domain.Filter{Field: "category_id", Op: domain.OpEq, Value: category.CategoryID})
	}

	if params.Tag != "" {
		tags, err := s.tagSvc.ListTags(ctx)
		if err != nil {
			return nil, err
		}
		tagID := uuid.Nil.String()
		for _, tag := range tags {
			if tag.Slug == params.Tag || tag.Name == domain.NormalizeName(params.Tag) {
				tagID = tag.TagID
				break
			}
		}
		filters = append(filters, domain.Filter{Field: "tag_id", Op: domain.OpEq, Value: tagID})
	}

	return filters, nil
}

// GetBlogBySlug returns a post with its relations. Drafts and archived
// posts stay hidden from everyone but their author and moderators. Reading
// a published post bumps its view count; a failed bump only logs.
func (s *blogService) GetBlogBySlug(ctx context.Context, slug string, viewer *portssvc.Viewer) (*domain.BlogWithRelations, error) {
	blog, err := s.blogRepo.FindBlogWithRelationsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if blog.Status != domain.StatusPublished {
		if viewer == nil || (viewer.UserID != blog.AuthorID && !viewer.CanModerate()) {
			return nil, apperrors.ErrNotFound
		}
		return blog, nil
	}

	if err := s.blogRepo.IncrementViewCount(ctx, blog.BlogID); err != nil {
		slog.Warn("failed to increment view count", slog.String("blog_id", blog.BlogID), slog.String("error", err.Error()))
	} else {
		blog.ViewCount++
	}

	return blog, nil
}

// CreateBlog creates a post for the author, resolving category and tags by
// name and deriving slug, excerpt and reading time from the content.
func (s *blogService) CreateBlog(ctx context.Context, authorID string, req dto.CreateBlogRequest) (*domain.Blog, error) {
	now := time.Now()
	blog := domain.Blog{
		BlogID:          uuid.NewString(),
		Title:           req.Title,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		FeaturedImage:   req.FeaturedImage,
		AuthorID:        authorID,
		Status:          domain.StatusDraft,
		IsFeatured:      req.IsFeatured,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
		Timestamps:      domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if req.Status != "" {
		status := domain.BlogStatus(req.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("invalid blog status")
		}
		blog.Status = status
	}
	if blog.Status == domain.StatusPublished {
		blog.MarkPublished(now)
	}

	if err := s.resolveRelations(ctx, &blog, req.Category, req.Tags); err != nil {
		return nil, err
	}
	s.derive(&blog, req.Excerpt != "")

	slug, err := slugutil.UniqueSlug(ctx, slugutil.Slugify(blog.Title), func(ctx context.Context, candidate string) (bool, error) {
		return s.blogRepo.SlugExists(ctx, candidate, blog.BlogID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to allocate slug: %w", err)
	}
	blog.Slug = slug

	if err := s.blogRepo.SaveBlog(ctx, blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// UpdateBlog applies a partial update. Only the author or a moderator may
// edit; a changed title re-derives the slug.
func (s *blogService) UpdateBlog(ctx context.Context, blogID string, req dto.UpdateBlogRequest, viewer portssvc.Viewer) (*domain.Blog, error) {
	blog, err := s.blogRepo.FindBlogByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != viewer.UserID && !viewer.CanModerate() {
		return nil, apperrors.ErrForbidden
	}

	explicitExcerpt := blog.Excerpt != ""
	titleChanged := false

	if req.Title != nil && *req.Title != blog.Title {
		blog.Title = *req.Title
		titleChanged = true
	}
	if req.Content != nil {
		blog.Content = *req.Content
		// A content rewrite invalidates a derived excerpt.
		if !explicitExcerpt || req.Excerpt != nil {
			blog.Excerpt = ""
			explicitExcerpt = false
		}
	}
	if req.Excerpt != nil {
		blog.Excerpt = *req.Excerpt
		explicitExcerpt = *req.Excerpt != ""
	}
	if req.FeaturedImage != nil {
		blog.FeaturedImage = *req.FeaturedImage
	}
	if req.IsFeatured != nil {
		blog.IsFeatured = *req.IsFeatured
	}
	if req.MetaTitle != nil {
		blog.MetaTitle = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		blog.MetaDescription = *req.MetaDescription
	}
	if req.MetaKeywords != nil {
		blog.MetaKeywords = *req.MetaKeywords
	}

	if req.Category != nil {
		if *req.Category == "" {
			blog.CategoryID = nil
		} else {
			category, err := s.categorySvc.FindOrCreateCategory(ctx, *req.Category)
			if err != nil {
				return nil, err
			}
			blog.CategoryID = &category.CategoryID
		}
	}
	if req.Tags != nil {
		tags, err := s.tagSvc.FindOrCreateTags(ctx, *req.Tags)
		if err != nil {
			return nil, err
		}
		blog.TagIDs = tagIDsOf(tags)
	}

	s.derive(blog, explicitExcerpt)

	if titleChanged {
		slug, err := slugutil.UniqueSlug(ctx, slugutil.Slugify(blog.Title), func(ctx context.Context, candidate string) (bool, error) {
			return s.blogRepo.SlugExists(ctx, candidate, blog.BlogID)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to allocate slug: %w", err)
		}
		blog.Slug = slug
	}

	blog.UpdatedAt = time.Now()
	if err := s.blogRepo.UpdateBlog(ctx, *blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// ChangeStatus moves a post through its lifecycle. Illegal transitions,
// like resurrecting an archived post, are validation errors.
func (s *blogService) ChangeStatus(ctx context.Context, blogID string, status domain.BlogStatus, viewer portssvc.Viewer) (*domain.Blog, error) {
	blog, err := s.blogRepo.FindBlogByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != viewer.UserID && !viewer.CanModerate() {
		return nil, apperrors.ErrForbidden
	}

	if !blog.Status.CanTransitionTo(status) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("cannot transition blog from %s to %s", blog.Status, status))
	}

	now := time.Now()
	blog.Status = status
	if status == domain.StatusPublished {
		blog.MarkPublished(now)
	}
	blog.UpdatedAt = now

	if err := s.blogRepo.UpdateBlog(ctx, *blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// DeleteBlog removes a post with its comments and likes.
func (s *blogService) DeleteBlog(ctx context.Context, blogID string, viewer portssvc.Viewer) error {
	blog, err := s.blogRepo.FindBlogByID(ctx, blogID)
	if err != nil {
		return err
	}
	if blog.AuthorID != viewer.UserID && !viewer.CanModerate() {
		return apperrors.ErrForbidden
	}
	return s.blogRepo.DeleteBlog(ctx, blogID)
}

// ToggleLike likes the post when no like exists and removes the like
// otherwise. The unique pair constraint decides races: losing a concurrent
// insert means someone else's toggle landed first, which reads as already
// liked and is not an error.
func (s *blogService) ToggleLike(ctx context.Context, blogID string, userID string) (bool, int64, error) {
	blog, err := s.blogRepo.FindBlogByID(ctx, blogID)
	if err != nil {
		return false, 0, err
	}
	if blog.Status != domain.StatusPublished {
		return false, 0, apperrors.ErrNotFound
	}

	removed, err := s.likeRepo.DeleteLike(ctx, blogID, userID)
	if err != nil {
		return false, 0, err
	}
	if removed {
		return false, max64(blog.LikeCount-1, 0), nil
	}

	like := domain.Like{
		LikeID:    uuid.NewString(),
		BlogID:    blogID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := s.likeRepo.SaveLike(ctx, like); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return true, blog.LikeCount, nil
		}
		return false, 0, err
	}
	return true, blog.LikeCount + 1, nil
}

func (s *blogService) resolveRelations(ctx context.Context, blog *domain.Blog, categoryName string, tagNames []string) error {
	if categoryName != "" {
		category, err := s.categorySvc.FindOrCreateCategory(ctx, categoryName)
		if err != nil {
			return err
		}
		blog.CategoryID = &category.CategoryID
	}
	if len(tagNames) > 0 {
		tags, err := s.tagSvc.FindOrCreateTags(ctx, tagNames)
		if err != nil {
			return err
		}
		blog.TagIDs = tagIDsOf(tags)
	}
	return nil
}

// derive computes reading time always and the excerpt only when the author
// did not supply one.
func (s *blogService) derive(blog *domain.Blog, explicitExcerpt bool) {
	blog.ReadingTime = textutil.ReadingTime(blog.Content)
	if !explicitExcerpt {
		blog.Excerpt = textutil.Excerpt(blog.Content)
	}
}

func tagIDsOf(tags []domain.Tag) []string {
	ids := make([]string, len(tags))
	for i, tag := range tags {
		ids[i] = tag.TagID
	}
	return ids
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
