package handlers

import (
	"net/http"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/dto"
	"github.com/inkwell-labs/blog_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
	tagService      portssvc.TagSvcFacade
}

// registerCategoryRoutes sets up the routes for categories and tags.
// Writes are admin only.
func registerCategoryRoutes(public *gin.RouterGroup, private *gin.RouterGroup, cs portssvc.CategorySvcFacade, ts portssvc.TagSvcFacade) {
	h := &categoryHandler{categoryService: cs, tagService: ts}

	public.GET("/categories", h.ListCategories)
	public.GET("/categories/:slug", h.GetCategoryBySlug)
	public.GET("/tags", h.ListTags)

	admin := private.Group("", middleware.RequireRoles(domain.RoleAdmin))
	{
		admin.POST("/categories", h.CreateCategory)
		admin.PUT("/categories/:id", h.UpdateCategory)
		admin.DELETE("/categories/:id", h.DeleteCategory)
		admin.DELETE("/tags/:id", h.DeleteTag)
	}
}

// ListCategories godoc
// @Summary List categories
// @Description Lists all categories ordered by name.
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Failure 500 {object} ErrorResponse
// @Router /categories [get]
func (h *categoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListCategoryResponse(categories))
}

// GetCategoryBySlug godoc
// @Summary Get category by slug
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /categories/{slug} [get]
func (h *categoryHandler) GetCategoryBySlug(c *gin.Context) {
	category, err := h.categoryService.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// CreateCategory godoc
// @Summary Create category
// @Description Creates a category. Names are unique after normalization, so "Go" and "go" collide.
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// UpdateCategory godoc
// @Summary Update category
// @Description Applies partial updates to a category. A changed name re-derives the slug.
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{id} [put]
func (h *categoryHandler) UpdateCategory(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// DeleteCategory godoc
// @Summary Delete category
// @Description Deletes a category. Posts keep existing and are detached from it.
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *categoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.categoryService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Category deleted"})
}

// ListTags godoc
// @Summary List tags
// @Description Lists all tags ordered by name.
// @Tags tags
// @Produce json
// @Success 200 {array} dto.TagResponse
// @Failure 500 {object} ErrorResponse
// @Router /tags [get]
func (h *categoryHandler) ListTags(c *gin.Context) {
	tags, err := h.tagService.ListTags(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListTagResponse(tags))
}

// DeleteTag godoc
// @Summary Delete tag
// @Description Deletes a tag and removes it from every post.
// @Tags tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /tags/{id} [delete]
func (h *categoryHandler) DeleteTag(c *gin.Context) {
	if err := h.tagService.DeleteTag(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Tag deleted"})
}
