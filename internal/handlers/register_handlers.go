package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/inkwell-labs/blog_backend/cmd/docs"
	"github.com/inkwell-labs/blog_backend/internal/apperrors"
	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/dto"
	"github.com/inkwell-labs/blog_backend/internal/middleware"
	"github.com/inkwell-labs/blog_backend/internal/platform/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", healthHandler(cfg))

	// Public authentication routes (rate limited separately)
	registerAuthRoutes(r, cfg, services)

	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (not available in production)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Public reads carry OptionalAuth so drafts resolve for their authors.
	public := r.Group("/api/v1", middleware.OptionalAuthMiddleware(cfg.JWTSecret))
	// Writes require a valid token.
	private := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(public, private, services.User)
	registerBlogRoutes(public, private, services.Blog)
	registerCategoryRoutes(public, private, services.Category, services.Tag)
	registerCommentRoutes(public, private, services.Comment)
	registerUploadRoutes(private, services.Images)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthHandler godoc
// @Summary Health check
// @Description Reports service liveness and the configured storage backend.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func healthHandler(cfg *config.Config) gin.HandlerFunc {
	environment := "development"
	if cfg.IsProduction {
		environment = "production"
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Success:     true,
			Message:     "Server is running",
			Timestamp:   time.Now().UTC(),
			Database:    cfg.DatabaseKind,
			Environment: environment,
		})
	}
}

// registerCustomValidators installs domain validations on gin's binding engine.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("blogstatus", func(fl validator.FieldLevel) bool {
			return domain.BlogStatus(fl.Field().String()).IsValid()
		})
	}
}

// respondServiceError translates service errors into HTTP responses.
// Sentinels map to their status; anything unrecognized is a 500 with a
// generic body so internals never leak.
func respondServiceError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Resource already exists"})
	case errors.Is(err, apperrors.ErrRefreshTokenExpired):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token has expired"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions"})
	default:
		logger.Error("Unhandled service error", "error", err.Error())
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
