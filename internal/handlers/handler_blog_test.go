package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/inkwell-labs/blog_backend/internal/apperrors"
	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/dto"
	"github.com/inkwell-labs/blog_backend/internal/handlers"
	"github.com/inkwell-labs/blog_backend/internal/platform/config"
	"github.com/inkwell-labs/blog_backend/internal/utils"
)

// --- Mock BlogService ---
type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) ListBlogs(ctx context.Context, params dto.ListBlogsParams, viewer *portssvc.Viewer) ([]domain.Blog, domain.Pagination, int64, error) {
	args := m.Called(ctx, params, viewer)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.Pagination), args.Get(2).(int64), args.Error(3)
	}
	return args.Get(0).([]domain.Blog), args.Get(1).(domain.Pagination), args.Get(2).(int64), args.Error(3)
}

func (m *MockBlogService) ListMyBlogs(ctx context.Context, authorID string, params dto.ListBlogsParams) ([]domain.Blog, domain.Pagination, int64, error) {
	args := m.Called(ctx, authorID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.Pagination), args.Get(2).(int64), args.Error(3)
	}
	return args.Get(0).([]domain.Blog), args.Get(1).(domain.Pagination), args.Get(2).(int64), args.Error(3)
}

func (m *MockBlogService) GetBlogBySlug(ctx context.Context, slug string, viewer *portssvc.Viewer) (*domain.BlogWithRelations, error) {
	args := m.Called(ctx, slug, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlogWithRelations), args.Error(1)
}

func (m *MockBlogService) CreateBlog(ctx context.Context, authorID string, req dto.CreateBlogRequest) (*domain.Blog, error) {
	args := m.Called(ctx, authorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}

func (m *MockBlogService) UpdateBlog(ctx context.Context, blogID string, req dto.UpdateBlogRequest, viewer portssvc.Viewer) (*domain.Blog, error) {
	args := m.Called(ctx, blogID, req, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}

func (m *MockBlogService) ChangeStatus(ctx context.Context, blogID string, status domain.BlogStatus, viewer portssvc.Viewer) (*domain.Blog, error) {
	args := m.Called(ctx, blogID, status, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}

func (m *MockBlogService) DeleteBlog(ctx context.Context, blogID string, viewer portssvc.Viewer) error {
	args := m.Called(ctx, blogID, viewer)
	return args.Error(0)
}

func (m *MockBlogService) ToggleLike(ctx context.Context, blogID string, userID string) (bool, int64, error) {
	args := m.Called(ctx, blogID, userID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

var _ portssvc.BlogSvcFacade = (*MockBlogService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*domain.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.User, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*domain.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) Logout(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAuthService) LoginWithGoogle(ctx context.Context, idToken string) (*domain.User, string, string, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*domain.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) ResendVerification(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID string, currentPassword string, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock CategoryService ---
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) FindOrCreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

// --- Mock TagService ---
type MockTagService struct {
	mock.Mock
}

func (m *MockTagService) FindOrCreateTags(ctx context.Context, names []string) ([]domain.Tag, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockTagService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockTagService) DeleteTag(ctx context.Context, tagID string) error {
	args := m.Called(ctx, tagID)
	return args.Error(0)
}

var _ portssvc.TagSvcFacade = (*MockTagService)(nil)

// --- Mock CommentService ---
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) CreateComment(ctx context.Context, blogID string, userID string, content string, parentID *string) (*domain.CommentWithAuthor, error) {
	args := m.Called(ctx, blogID, userID, content, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommentWithAuthor), args.Error(1)
}

func (m *MockCommentService) ListCommentsByBlog(ctx context.Context, blogID string) ([]*domain.CommentNode, error) {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CommentNode), args.Error(1)
}

func (m *MockCommentService) UpdateComment(ctx context.Context, commentID string, content string, viewer portssvc.Viewer) (*domain.Comment, error) {
	args := m.Called(ctx, commentID, content, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, commentID string, viewer portssvc.Viewer) error {
	args := m.Called(ctx, commentID, viewer)
	return args.Error(0)
}

var _ portssvc.CommentSvcFacade = (*MockCommentService)(nil)

// --- Test Suite ---
type BlogHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockBlogService *MockBlogService
	jwtSecret       string
}

func (suite *BlogHandlerTestSuite) generateTestToken(userID string, role domain.Role) string {
	token, err := utils.GenerateJWT(userID, string(role), suite.jwtSecret, time.Hour, "blog-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *BlogHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockBlogService = new(MockBlogService)

	cfg := &config.Config{
		JWTSecret:          suite.jwtSecret,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
	}
	services := &portssvc.ServiceContainer{
		Auth:     new(MockAuthService),
		User:     new(MockUserService),
		Blog:     suite.mockBlogService,
		Category: new(MockCategoryService),
		Tag:      new(MockTagService),
		Comment:  new(MockCommentService),
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *BlogHandlerTestSuite) TestListBlogs_Anonymous() {
	page := domain.Pagination{Page: 1, Limit: 10}
	blogs := []domain.Blog{
		{BlogID: uuid.NewString(), Title: "First", Slug: "first", Status: domain.StatusPublished},
		{BlogID: uuid.NewString(), Title: "Second", Slug: "second", Status: domain.StatusPublished},
	}

	suite.mockBlogService.On("ListBlogs",
		mock.Anything,
		mock.MatchedBy(func(p dto.ListBlogsParams) bool {
			return p.Page == 1 && p.Limit == 10 && p.SortBy == "created_at" && p.SortDir == "desc"
		}),
		(*portssvc.Viewer)(nil),
	).Return(blogs, page, int64(2), nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/blogs", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ListBlogsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Blogs, 2)
	suite.Equal(int64(2), body.Total)
	suite.Equal(int64(1), body.TotalPages)
	suite.Empty(body.Blogs[0].Content)
	suite.mockBlogService.AssertExpectations(suite.T())
}

func (suite *BlogHandlerTestSuite) TestListBlogs_AuthenticatedViewerForwarded() {
	userID := uuid.NewString()
	page := domain.Pagination{Page: 1, Limit: 10}

	suite.mockBlogService.On("ListBlogs",
		mock.Anything,
		mock.AnythingOfType("dto.ListBlogsParams"),
		mock.MatchedBy(func(v *portssvc.Viewer) bool {
			return v != nil && v.UserID == userID && v.Role == domain.RoleAdmin
		}),
	).Return([]domain.Blog{}, page, int64(0), nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/blogs?status=draft", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, domain.RoleAdmin))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockBlogService.AssertExpectations(suite.T())
}

func (suite *BlogHandlerTestSuite) TestGetBlogBySlug_NotFound() {
	suite.mockBlogService.On("GetBlogBySlug", mock.Anything, "missing-post", (*portssvc.Viewer)(nil)).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/blogs/missing-post", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *BlogHandlerTestSuite) TestCreateBlog_Success() {
	userID := uuid.NewString()
	created := &domain.Blog{
		BlogID:   uuid.NewString(),
		Title:    "Hello World",
		Slug:     "hello-world",
		AuthorID: userID,
		Status:   domain.StatusDraft,
	}

	suite.mockBlogService.On("CreateBlog",
		mock.Anything,
		userID,
		mock.MatchedBy(func(r dto.CreateBlogRequest) bool {
			return r.Title == "Hello World" && r.Content == "Some body text."
		}),
	).Return(created, nil).Once()

	payload, _ := json.Marshal(dto.CreateBlogRequest{Title: "Hello World", Content: "Some body text."})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/blogs", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, domain.RoleUser))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var body dto.BlogResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("hello-world", body.Slug)
	suite.mockBlogService.AssertExpectations(suite.T())
}

func (suite *BlogHandlerTestSuite) TestCreateBlog_MissingToken() {
	payload, _ := json.Marshal(dto.CreateBlogRequest{Title: "Hello World", Content: "Some body text."})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/blogs", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockBlogService.AssertNotCalled(suite.T(), "CreateBlog", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BlogHandlerTestSuite) TestChangeStatus_InvalidStatusRejected() {
	userID := uuid.NewString()
	blogID := uuid.NewString()

	body := bytes.NewReader([]byte(`{"status":"deleted"}`))
	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/blogs/"+blogID+"/status", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, domain.RoleUser))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBlogService.AssertNotCalled(suite.T(), "ChangeStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BlogHandlerTestSuite) TestToggleLike_Success() {
	userID := uuid.NewString()
	blogID := uuid.NewString()

	suite.mockBlogService.On("ToggleLike", mock.Anything, blogID, userID).
		Return(true, int64(4), nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/blogs/"+blogID+"/like", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, domain.RoleUser))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.LikeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.Liked)
	suite.Equal(int64(4), body.LikeCount)
}

func (suite *BlogHandlerTestSuite) TestDeleteBlog_ForbiddenFromService() {
	userID := uuid.NewString()
	blogID := uuid.NewString()

	suite.mockBlogService.On("DeleteBlog", mock.Anything, blogID,
		mock.MatchedBy(func(v portssvc.Viewer) bool { return v.UserID == userID }),
	).Return(apperrors.ErrForbidden).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/blogs/"+blogID, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, domain.RoleUser))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
}

func TestBlogHandler(t *testing.T) {
	suite.Run(t, new(BlogHandlerTestSuite))
}
