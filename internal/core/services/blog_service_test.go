package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-labs/blog_backend/internal/apperrors"
	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/core/services"
	"github.com/inkwell-labs/blog_backend/internal/dto"
	"github.com/inkwell-labs/blog_backend/internal/platform/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BlogServiceTestSuite struct {
	suite.Suite
	mockBlogRepo    *MockBlogRepository
	mockLikeRepo    *MockLikeRepository
	mockCategorySvc *MockCategoryService
	mockTagSvc      *MockTagService
	service         portssvc.BlogSvcFacade
}

func (suite *BlogServiceTestSuite) SetupTest() {
	suite.mockBlogRepo = new(MockBlogRepository)
	suite.mockLikeRepo = new(MockLikeRepository)
	suite.mockCategorySvc = new(MockCategoryService)
	suite.mockTagSvc = new(MockTagService)
	cfg := &config.Config{MaxPageSize: 50}
	suite.service = services.NewBlogService(cfg, suite.mockBlogRepo, suite.mockLikeRepo, suite.mockCategorySvc, suite.mockTagSvc)
}

func (suite *BlogServiceTestSuite) publishedBlog(authorID string) *domain.Blog {
	now := time.Now()
	publishedAt := now.Add(-time.Hour)
	return &domain.Blog{
		BlogID:      uuid.NewString(),
		Title:       "A Post",
		Slug:        "a-post",
		Content:     "Some content.",
		AuthorID:    authorID,
		Status:      domain.StatusPublished,
		LikeCount:   3,
		PublishedAt: &publishedAt,
		Timestamps:  domain.Timestamps{CreatedAt: now.Add(-2 * time.Hour), UpdatedAt: now.Add(-time.Hour)},
	}
}

// --- CreateBlog ---

func (suite *BlogServiceTestSuite) TestCreateBlog_DefaultsToDraftAndDerives() {
	ctx := context.Background()
	authorID := uuid.NewString()
	req := dto.CreateBlogRequest{
		Title:   "My First Post",
		Content: "This is the body of the post with enough words to read.",
	}

	suite.mockBlogRepo.On("SlugExists", ctx, "my-first-post", mock.AnythingOfType("string")).Return(false, nil).Once()

	var saved domain.Blog
	suite.mockBlogRepo.On("SaveBlog", ctx, mock.AnythingOfType("domain.Blog")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.Blog)
	}).Return(nil).Once()

	blog, err := suite.service.CreateBlog(ctx, authorID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusDraft, blog.Status)
	suite.Nil(blog.PublishedAt)
	suite.Equal("my-first-post", saved.Slug)
	suite.NotEmpty(saved.Excerpt)
	suite.Greater(saved.ReadingTime, 0)
	suite.Equal(authorID, saved.AuthorID)
}

func (suite *BlogServiceTestSuite) TestCreateBlog_PublishedStampsPublishedAt() {
	ctx := context.Background()
	req := dto.CreateBlogRequest{
		Title:   "Published Right Away",
		Content: "Body.",
		Status:  "published",
	}

	suite.mockBlogRepo.On("SlugExists", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockBlogRepo.On("SaveBlog", ctx, mock.AnythingOfType("domain.Blog")).Return(nil).Once()

	blog, err := suite.service.CreateBlog(ctx, uuid.NewString(), req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPublished, blog.Status)
	suite.Require().NotNil(blog.PublishedAt)
}

func (suite *BlogServiceTestSuite) TestCreateBlog_ResolvesCategoryAndTags() {
	ctx := context.Background()
	category := &domain.Category{CategoryID: uuid.NewString(), Name: "golang", Slug: "golang"}
	tags := []domain.Tag{
		{TagID: uuid.NewString(), Name: "web", Slug: "web"},
		{TagID: uuid.NewString(), Name: "api", Slug: "api"},
	}

	suite.mockCategorySvc.On("FindOrCreateCategory", ctx, "Golang").Return(category, nil).Once()
	suite.mockTagSvc.On("FindOrCreateTags", ctx, []string{"Web", "API"}).Return(tags, nil).Once()
	suite.mockBlogRepo.On("SlugExists", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(false, nil).Once()

	var saved domain.Blog
	suite.mockBlogRepo.On("SaveBlog", ctx, mock.AnythingOfType("domain.Blog")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.Blog)
	}).Return(nil).Once()

	_, err := suite.service.CreateBlog(ctx, uuid.NewString(), dto.CreateBlogRequest{
		Title:    "Tagged Post",
		Content:  "Body.",
		Category: "Golang",
		Tags:     []string{"Web", "API"},
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(saved.CategoryID)
	suite.Equal(category.CategoryID, *saved.CategoryID)
	suite.Equal([]string{tags[0].TagID, tags[1].TagID}, saved.TagIDs)
}

func (suite *BlogServiceTestSuite) TestCreateBlog_SlugCollisionGetsSuffix() {
	ctx := context.Background()
	suite.mockBlogRepo.On("SlugExists", ctx, "taken-title", mock.AnythingOfType("string")).Return(true, nil).Once()
	suite.mockBlogRepo.On("SlugExists", ctx, "taken-title-1", mock.AnythingOfType("string")).Return(false, nil).Once()

	var saved domain.Blog
	suite.mockBlogRepo.On("SaveBlog", ctx, mock.AnythingOfType("domain.Blog")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.Blog)
	}).Return(nil).Once()

	_, err := suite.service.CreateBlog(ctx, uuid.NewString(), dto.CreateBlogRequest{Title: "Taken Title", Content: "Body."})

	suite.Require().NoError(err)
	suite.Equal("taken-title-1", saved.Slug)
}

// --- UpdateBlog / ChangeStatus / DeleteBlog ---

func (suite *BlogServiceTestSuite) TestUpdateBlog_ForbiddenForOtherUser() {
	ctx := context.Background()
	blog := suite.publishedBlog(uuid.NewString())
	suite.mockBlogRepo.On("FindBlogByID", ctx, blog.BlogID).Return(blog, nil).Once()

	viewer := portssvc.Viewer{UserID: uuid.NewString(), Role: domain.RoleUser}
	_, err := suite.service.UpdateBlog(ctx, blog.BlogID, dto.UpdateBlogRequest{}, viewer)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *BlogServiceTestSuite) TestUpdateBlog_AdminMayEdit() {
	ctx := context.Background()
	blog := suite.publishedBlog(uuid.NewString())
	suite.mockBlogRepo.On("FindBlogByID", ctx, blog.BlogID).Return(blog, nil).Once()
	suite.mockBlogRepo.On("UpdateBlog", ctx, mock.AnythingOfType("domain.Blog")).Return(nil).Once()

	newContent := "Fresh content."
	viewer := portssvc.Viewer{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	updated, err := suite.service.UpdateBlog(ctx, blog.BlogID, dto.UpdateBlogRequest{Content: &newContent}, viewer)

	suite.Require().NoError(err)
	suite.Equal(newContent, updated.Content)
}

func (suite *BlogServiceTestSuite) TestUpdateBlog_TitleChangeRederivesSlug() {
	ctx := context.Background()
	authorID := uuid.NewString()
	blog := suite.publishedBlog(authorID)
	suite.mockBlogRepo.On("FindBlogByID", ctx, blog.BlogID).Return(blog, nil).Once()
	suite.mockBlogRepo.On("SlugExists", ctx, "renamed-post", blog.BlogID).Return(false, nil).Once()

	var saved domain.Blog
	suite.mockBlogRepo.On("UpdateBlog", ctx, mock.AnythingOfType("domain.Blog")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.Blog)
	}).Return(nil).Once()

	newTitle := "Renamed Post"
	viewer := portssvc.Viewer{UserID: authorID, Role: domain.RoleUser}
	_, err := suite.service.UpdateBlog(ctx, blog.BlogID, dto.UpdateBlogRequest{Title: &newTitle}, viewer)

	suite.Require().NoError(err)
	suite.Equal("renamed-post", saved.Slug)
}

func (suite *BlogServiceTestSuite) TestUpdateBlog_EmptyCategoryDetaches() {
	ctx := context.Background()
	authorID := uuid.NewString()
	blog := suite.publishedBlog(authorID)
	categoryID := uuid.NewString()
	blog.CategoryID = &categoryID

	suite.mockBlogRepo.On("FindBlogByID", ctx, blog.BlogID).Return(blog, nil).Once()

	var saved domain.Blog
	suite.mockBlogRepo.On("UpdateBlog", ctx, mock.AnythingOfType("domain.Blog")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.Blog)
	}).Return(nil).Once()

	empty := ""
	viewer := portssvc.Viewer{UserID: authorID, Role: domain.RoleUser}
	_, err := suite.service.UpdateBlog(ctx, blog.BlogID, dto.UpdateBlogRequest{Category: &empty}, viewer)

	suite.Require().NoError(err)
	suite.Nil(saved.CategoryID)
}

func (suite *BlogServiceTestSuite) TestChangeStatus_DraftToPublished() {
	ctx := context.Background()
	authorID := uuid.NewString()
	blog := suite.publishedBlog(authorID)
	blog.Status = domain.StatusDraft
	blog.PublishedAt = nil

	suite.mockBlogRepo.On("FindBlogByID", ctx, blog.BlogID).Return(blog, nil).Once()
	suite.mockBlogRepo.On("UpdateBlog", ctx, mock.AnythingOfType("domain.Blog")).Return(nil).Once()

	viewer := portssvc.Viewer{UserID: authorID, Role: domain.RoleUser}
	updated, err := suite.service.ChangeStatus(ctx, blog.BlogID, domain.StatusPublished, viewer)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPublished, updated.Status)
	suite.Require().NotNil(updated.PublishedAt)
}

func (suite *BlogServiceTestSuite) TestChangeStatus_RepublishKeepsOriginalStamp() {
	ctx := context.Background()
	authorID := uuid.NewString()
	blog := suite.publishedBlog(authorID)
	blog.Status = domain.StatusDraft
	original := *blog.PublishedAt

	suite.mockBlogRepo.On("FindBlogByID", ctx, blog.BlogID).Return(blog, nil).Once()
	suite.mockBlogRepo.On("UpdateBlog", ctx, mock.AnythingOfType("domain.Blog")).Return(nil).Once()

	viewer := portssvc.Viewer{UserID: authorID, Role: domain.RoleUser}
	updated, err := suite.service.ChangeStatus(ctx, blog.BlogID, domain.StatusPublished, viewer)

	suite.Require().NoError(err)
	suite.Equal(original, *updated.PublishedAt)
}

func (suite *BlogServiceTestSuite) TestChangeStatus_ArchivedCannotRepublish() {
	ctx := context.Background()
	authorID := uuid.NewString()
	blog := suite.publishedBlog(authorID)
	blog.Status = domain.StatusArchived

	suite.mockBlogRepo.On("FindBlogByID", ctx, blog.BlogID).Return(blog, nil).Once()

	viewer := portssvc.Viewer{UserID: authorID, Role: domain.RoleUser}
	_, err := suite.service.ChangeStatus(ctx, blog.BlogID, domain.StatusPublished, viewer)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockBlogRepo.AssertNotCalled(suite.T(), "UpdateBlog", mock.Anything, mock.Anything)
}

func (suite *BlogServiceTestSuite) TestDeleteBlog_AuthorMayDelete() {
	ctx := context.Background()
	authorID := uuid.NewString()
	blog := suite.publishedBlog(authorID)

	suite.mockBlogRepo.On("FindBlogByID", ctx, blog.BlogID).Return(blog, nil).Once()
	suite.mockBlogRepo.On("DeleteBlog", ctx, blog.BlogID).Return(nil).Once()

	viewer := portssvc.Viewer{UserID: authorID, Role: domain.RoleUser}
	err := suite.service.DeleteBlog(ctx, blog.BlogID, viewer)

	suite.Require().NoError(err)
	suite.mockBlogRepo.AssertExpectations(suite.T())
}

// --- GetBlogBySlug ---

func (suite *BlogServiceTestSuite) TestGetBlogBySlug_BumpsViewCount() {
	ctx := context.Background()
	blog := suite.publishedBlog(uuid.NewString())
	withRelations := &domain.BlogWithRelations{Blog: *blog}

	suite.mockBlogRepo.On("FindBlogWithRelationsBySlug", ctx, blog.Slug).Return(withRelations, nil).Once()
	suite.mockBlogRepo.On("IncrementViewCount", ctx, blog.BlogID).Return(nil).Once()

	got, err := suite.service.GetBlogBySlug(ctx, blog.Slug, nil)

	suite.Require().NoError(err)
	suite.Equal(blog.ViewCount+1, got.ViewCount)
}

func (suite *BlogServiceTestSuite) TestGetBlogBySlug_DraftHiddenFromAnonymous() {
	ctx := context.Background()
	blog := suite.publishedBlog(uuid.NewString())
	blog.Status = domain.StatusDraft
	withRelations := &domain.BlogWithRelations{Blog: *blog}

	suite.mockBlogRepo.On("FindBlogWithRelationsBySlug", ctx, blog.Slug).Return(withRelations, nil).Once()

	_, err := suite.service.GetBlogBySlug(ctx, blog.Slug, nil)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBlogRepo.AssertNotCalled(suite.T(), "IncrementViewCount", mock.Anything, mock.Anything)
}

func (suite *BlogServiceTestSuite) TestGetBlogBySlug_DraftVisibleToAuthorWithoutBump() {
	ctx := context.Background()
	authorID := uuid.NewString()
	blog := suite.publishedBlog(authorID)
	blog.Status = domain.StatusDraft
	withRelations := &domain.BlogWithRelations{Blog: *blog}

	suite.mockBlogRepo.On("FindBlogWithRelationsBySlug", ctx, blog.Slug).Return(withRelations, nil).Once()

	viewer := &portssvc.Viewer{UserID: authorID, Role: domain.RoleUser}
	got, err := suite.service.GetBlogBySlug(ctx, blog.Slug, viewer)

	suite.Require().NoError(err)
	suite.Equal(blog.ViewCount, got.ViewCount)
	suite.mockBlogRepo.AssertNotCalled(suite.T(), "IncrementViewCount", mock.Anything, mock.Anything)
}

// --- ListBlogs ---

func (suite *BlogServiceTestSuite) TestListBlogs_AnonymousForcedToPublished() {
	ctx := context.Background()

	var gotFilters []domain.Filter
	suite.mockBlogRepo.On("ListBlogs", ctx, mock.AnythingOfType("[]domain.Filter"), mock.AnythingOfType("domain.Sort"), mock.AnythingOfType("domain.Pagination")).
		Run(func(args mock.Arguments) {
			gotFilters = args.Get(1).([]domain.Filter)
		}).Return([]domain.Blog{}, int64(0), nil).Once()

	_, _, _, err := suite.service.ListBlogs(ctx, dto.ListBlogsParams{Status: "draft"}, nil)

	suite.Require().NoError(err)
	suite.Require().Len(gotFilters, 1)
	suite.Equal("status", gotFilters[0].Field)
	suite.Equal(string(domain.StatusPublished), gotFilters[0].Value)
}

func (suite *BlogServiceTestSuite) TestListBlogs_AdminMayFilterAnyStatus() {
	ctx := context.Background()

	var gotFilters []domain.Filter
	suite.mockBlogRepo.On("ListBlogs", ctx, mock.AnythingOfType("[]domain.Filter"), mock.AnythingOfType("domain.Sort"), mock.AnythingOfType("domain.Pagination")).
		Run(func(args mock.Arguments) {
			gotFilters = args.Get(1).([]domain.Filter)
		}).Return([]domain.Blog{}, int64(0), nil).Once()

	viewer := &portssvc.Viewer{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	_, _, _, err := suite.service.ListBlogs(ctx, dto.ListBlogsParams{Status: "draft"}, viewer)

	suite.Require().NoError(err)
	suite.Require().Len(gotFilters, 1)
	suite.Equal("draft", gotFilters[0].Value)
}

func (suite *BlogServiceTestSuite) TestListBlogs_UnknownCategoryYieldsEmptyPage() {
	ctx := context.Background()
	suite.mockCategorySvc.On("GetCategoryBySlug", ctx, "no-such").Return(nil, apperrors.ErrNotFound).Once()

	var gotFilters []domain.Filter
	suite.mockBlogRepo.On("ListBlogs", ctx, mock.AnythingOfType("[]domain.Filter"), mock.AnythingOfType("domain.Sort"), mock.AnythingOfType("domain.Pagination")).
		Run(func(args mock.Arguments) {
			gotFilters = args.Get(1).([]domain.Filter)
		}).Return([]domain.Blog{}, int64(0), nil).Once()

	_, _, total, err := suite.service.ListBlogs(ctx, dto.ListBlogsParams{Category: "no-such"}, nil)

	suite.Require().NoError(err)
	suite.Equal(int64(0), total)
	suite.Equal(uuid.Nil.String(), gotFilters[0].Value)
}

func (suite *BlogServiceTestSuite) TestListBlogs_PaginationClampedToMax() {
	ctx := context.Background()

	var gotPage domain.Pagination
	suite.mockBlogRepo.On("ListBlogs", ctx, mock.AnythingOfType("[]domain.Filter"), mock.AnythingOfType("domain.Sort"), mock.AnythingOfType("domain.Pagination")).
		Run(func(args mock.Arguments) {
			gotPage = args.Get(3).(domain.Pagination)
		}).Return([]domain.Blog{}, int64(0), nil).Once()

	_, page, _, err := suite.service.ListBlogs(ctx, dto.ListBlogsParams{Page: -2, Limit: 1000}, nil)

	suite.Require().NoError(err)
	suite.Equal(1, gotPage.Page)
	suite.Equal(50, gotPage.Limit)
	suite.Equal(gotPage, page)
}

// --- ToggleLike ---

func (suite *BlogServiceTestSuite) TestToggleLike_LikesWhenNoneExists() {
	ctx := context.Background()
	blog := suite.publishedBlog(uuid.NewString())
	userID := uuid.NewString()

	suite.mockBlogRepo.On("FindBlogByID", ctx, blog.BlogID).Return(blog, nil).Once()
	suite.mockLikeRepo.On("DeleteLike", ctx, blog.BlogID, userID).Return(false, nil).Once()
	suite.mockLikeRepo.On("SaveLike", ctx, mock.AnythingOfType("domain.Like")).Return(nil).Once()

	liked, count, err := suite.service.ToggleLike(ctx, blog.BlogID, userID)

	suite.Require().NoError(err)
	suite.True(liked)
	suite.Equal(blog.LikeCount+1, count)
}

func (suite *BlogServiceTestSuite) TestToggleLike_UnlikesWhenLikeExists() {
	ctx := context.Background()
	blog := suite.publishedBlog(uuid.NewString())
	userID := uuid.NewString()

	suite.mockBlogRepo.On("FindBlogByID", ctx, blog.BlogID).Return(blog, nil).Once()
	suite.mockLikeRepo.On("DeleteLike", ctx, blog.BlogID, userID).Return(true, nil).Once()

	liked, count, err := suite.service.ToggleLike(ctx, blog.BlogID, userID)

	suite.Require().NoError(err)
	suite.False(liked)
	suite.Equal(blog.LikeCount-1, count)
	suite.mockLikeRepo.AssertNotCalled(suite.T(), "SaveLike", mock.Anything, mock.Anything)
}

func (suite *BlogServiceTestSuite) TestToggleLike_LostInsertRaceReadsAsLiked() {
	ctx := context.Background()
	blog := suite.publishedBlog(uuid.NewString())
	userID := uuid.NewString()

	suite.mockBlogRepo.On("FindBlogByID", ctx, blog.BlogID).Return(blog, nil).Once()
	suite.mockLikeRepo.On("DeleteLike", ctx, blog.BlogID, userID).Return(false, nil).Once()
	suite.mockLikeRepo.On("SaveLike", ctx, mock.AnythingOfType("domain.Like")).Return(apperrors.ErrDuplicate).Once()

	liked, count, err := suite.service.ToggleLike(ctx, blog.BlogID, userID)

	suite.Require().NoError(err)
	suite.True(liked)
	suite.Equal(blog.LikeCount, count)
}

func (suite *BlogServiceTestSuite) TestToggleLike_UnpublishedPostNotFound() {
	ctx := context.Background()
	blog := suite.publishedBlog(uuid.NewString())
	blog.Status = domain.StatusDraft

	suite.mockBlogRepo.On("FindBlogByID", ctx, blog.BlogID).Return(blog, nil).Once()

	_, _, err := suite.service.ToggleLike(ctx, blog.BlogID, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestBlogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BlogServiceTestSuite))
}
