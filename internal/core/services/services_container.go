package services

import (
	portsrepo "github.com/inkwell-labs/blog_backend/internal/core/ports/repositories"
	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, mailer portssvc.Mailer, images portssvc.ImageStore) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Token = NewTokenService(cfg, repos.UserRepo)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)
	container.Auth = NewAuthService(cfg, repos.UserRepo, container.Token, container.GoogleOAuth, mailer)
	container.User = NewUserService(cfg, repos.UserRepo)

	// Category and tag services come first since blog creation resolves
	// names through them.
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Tag = NewTagService(repos.TagRepo)
	container.Blog = NewBlogService(cfg, repos.BlogRepo, repos.LikeRepo, container.Category, container.Tag)
	container.Comment = NewCommentService(repos.CommentRepo, repos.BlogRepo, repos.UserRepo)

	container.Images = images

	return container
}

// Compile time interface checks.
var (
	_ portssvc.AuthSvcFacade        = (*authService)(nil)
	_ portssvc.TokenSvcFacade       = (*tokenService)(nil)
	_ portssvc.GoogleOAuthSvcFacade = (*googleOAuthService)(nil)
	_ portssvc.UserSvcFacade        = (*userService)(nil)
	_ portssvc.BlogSvcFacade        = (*blogService)(nil)
	_ portssvc.CategorySvcFacade    = (*categoryService)(nil)
	_ portssvc.TagSvcFacade         = (*tagService)(nil)
	_ portssvc.CommentSvcFacade     = (*commentService)(nil)
)
