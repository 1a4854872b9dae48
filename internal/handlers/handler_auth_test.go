package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/dto"
	"github.com/inkwell-labs/blog_backend/internal/handlers"
	"github.com/inkwell-labs/blog_backend/internal/platform/config"
)

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

var _ portssvc.GoogleOAuthSvcFacade = (*MockGoogleOAuthService)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockAuthService   *MockAuthService
	mockGoogleService *MockGoogleOAuthService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockAuthService = new(MockAuthService)
	suite.mockGoogleService = new(MockGoogleOAuthService)

	cfg := &config.Config{
		JWTSecret:          "test-secret-key-that-is-long-enough",
		CORSAllowedOrigins: []string{"http://localhost:3000"},
	}
	services := &portssvc.ServiceContainer{
		Auth:        suite.mockAuthService,
		GoogleOAuth: suite.mockGoogleService,
		User:        new(MockUserService),
		Blog:        new(MockBlogService),
		Category:    new(MockCategoryService),
		Tag:         new(MockTagService),
		Comment:     new(MockCommentService),
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *AuthHandlerTestSuite) stateCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "oauth_state" {
			return cookie
		}
	}
	return nil
}

func (suite *AuthHandlerTestSuite) TestGoogleLoginRedirect_SendsBrowserToGoogle() {
	loginURL := "https://accounts.google.com/o/oauth2/auth?state=random-state"
	suite.mockGoogleService.On("GenerateStateString", mock.Anything).Return("random-state", nil).Once()
	suite.mockGoogleService.On("GetGoogleLoginURL", mock.Anything, "random-state").Return(loginURL).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/google/login", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusTemporaryRedirect, w.Code)
	suite.Equal(loginURL, w.Header().Get("Location"))

	cookie := suite.stateCookie(w)
	suite.Require().NotNil(cookie)
	suite.Equal("random-state", cookie.Value)
	suite.True(cookie.HttpOnly)
	suite.mockGoogleService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestGoogleCallback_Success() {
	user := &domain.User{UserID: uuid.NewString(), Username: "gopher", Email: "gopher@example.com"}
	googleToken := (&oauth2.Token{AccessToken: "google-access"}).
		WithExtra(map[string]interface{}{"id_token": "google-id-token"})

	suite.mockGoogleService.On("ExchangeCodeForToken", mock.Anything, "auth-code").Return(googleToken, nil).Once()
	suite.mockAuthService.On("LoginWithGoogle", mock.Anything, "google-id-token").
		Return(user, "access-token", "refresh-token", nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=random-state&code=auth-code", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "random-state"})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("access-token", resp.AccessToken)
	suite.Equal("refresh-token", resp.RefreshToken)
	suite.Equal("gopher", resp.User.Username)

	cookie := suite.stateCookie(w)
	suite.Require().NotNil(cookie)
	suite.Less(cookie.MaxAge, 0)
	suite.mockAuthService.AssertExpectations(suite.T())
	suite.mockGoogleService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestGoogleCallback_StateMismatchRejected() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=forged&code=auth-code", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "random-state"})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockGoogleService.AssertNotCalled(suite.T(), "ExchangeCodeForToken", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestGoogleCallback_MissingStateCookieRejected() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=random-state&code=auth-code", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockGoogleService.AssertNotCalled(suite.T(), "ExchangeCodeForToken", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestGoogleCallback_MissingIDTokenRejected() {
	googleToken := &oauth2.Token{AccessToken: "google-access"}
	suite.mockGoogleService.On("ExchangeCodeForToken", mock.Anything, "auth-code").Return(googleToken, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=random-state&code=auth-code", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "random-state"})
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadGateway, w.Code)
	suite.mockAuthService.AssertNotCalled(suite.T(), "LoginWithGoogle", mock.Anything, mock.Anything)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
