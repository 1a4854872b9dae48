package services_test

import (
	"context"
	"time"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	"github.com/inkwell-labs/blog_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByResetToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock BlogRepository ---

type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) FindBlogByID(ctx context.Context, blogID string) (*domain.Blog, error) {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}

func (m *MockBlogRepository) FindBlogBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}

func (m *MockBlogRepository) FindBlogWithRelations(ctx context.Context, blogID string) (*domain.BlogWithRelations, error) {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlogWithRelations), args.Error(1)
}

func (m *MockBlogRepository) FindBlogWithRelationsBySlug(ctx context.Context, slug string) (*domain.BlogWithRelations, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlogWithRelations), args.Error(1)
}

func (m *MockBlogRepository) ListBlogs(ctx context.Context, filters []domain.Filter, sort domain.Sort, page domain.Pagination) ([]domain.Blog, int64, error) {
	args := m.Called(ctx, filters, sort, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Blog), args.Get(1).(int64), args.Error(2)
}

func (m *MockBlogRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlogRepository) SaveBlog(ctx context.Context, blog domain.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) UpdateBlog(ctx context.Context, blog domain.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) DeleteBlog(ctx context.Context, blogID string) error {
	args := m.Called(ctx, blogID)
	return args.Error(0)
}

func (m *MockBlogRepository) IncrementViewCount(ctx context.Context, blogID string) error {
	args := m.Called(ctx, blogID)
	return args.Error(0)
}

// --- Mock LikeRepository ---

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) SaveLike(ctx context.Context, like domain.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockLikeRepository) FindLike(ctx context.Context, blogID string, userID string) (*domain.Like, error) {
	args := m.Called(ctx, blogID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Like), args.Error(1)
}

func (m *MockLikeRepository) DeleteLike(ctx context.Context, blogID string, userID string) (bool, error) {
	args := m.Called(ctx, blogID, userID)
	return args.Bool(0), args.Error(1)
}

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByName(ctx context.Context, normalizedName string) (*domain.Category, error) {
	args := m.Called(ctx, normalizedName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func (m *MockCategoryRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

// --- Mock TagRepository ---

type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) SaveTag(ctx context.Context, tag domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) FindTagByID(ctx context.Context, tagID string) (*domain.Tag, error) {
	args := m.Called(ctx, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) FindTagByName(ctx context.Context, normalizedName string) (*domain.Tag, error) {
	args := m.Called(ctx, normalizedName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) FindTagsByIDs(ctx context.Context, tagIDs []string) ([]domain.Tag, error) {
	args := m.Called(ctx, tagIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockTagRepository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockTagRepository) UpdateTag(ctx context.Context, tag domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) DeleteTag(ctx context.Context, tagID string) error {
	args := m.Called(ctx, tagID)
	return args.Error(0)
}

func (m *MockTagRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

// --- Mock CommentRepository ---

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListCommentsByBlog(ctx context.Context, blogID string) ([]domain.CommentWithAuthor, error) {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommentWithAuthor), args.Error(1)
}

func (m *MockCommentRepository) UpdateComment(ctx context.Context, comment domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) DeleteCommentTree(ctx context.Context, commentID string) (int64, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock TokenService ---

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) ValidateAndParseRefreshToken(ctx context.Context, refreshTokenString string) (*domain.User, error) {
	args := m.Called(ctx, refreshTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock GoogleOAuthService ---

type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	args := m.Called(ctx, state)
	return args.String(0)
}

func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

// --- Mock CategoryService / TagService ---

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

// --- Mock Mailer ---

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationEmail(ctx context.Context, to string, username string, token string) error {
	args := m.Called(ctx, to, username, token)
	return args.Error(0)
}

func (m *MockMailer) SendPasswordResetEmail(ctx context.Context, to string, username string, token string) error {
	args := m.Called(ctx, to, username, token)
	return args.Error(0)
}
