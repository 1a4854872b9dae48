package handlers

import (
	"net/http"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/dto"
	"github.com/inkwell-labs/blog_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type blogHandler struct {
	blogService portssvc.BlogSvcFacade
}

// registerBlogRoutes sets up the routes for posts.
func registerBlogRoutes(public *gin.RouterGroup, private *gin.RouterGroup, bs portssvc.BlogSvcFacade) {
	h := &blogHandler{blogService: bs}

	public.GET("/blogs", h.ListBlogs)
	public.GET("/blogs/:slug", h.GetBlogBySlug)

	// Own posts live under /me to stay clear of the /blogs/:slug wildcard.
	private.GET("/me/blogs", h.ListMyBlogs)
	private.POST("/blogs", h.CreateBlog)
	private.PUT("/blogs/:id", h.UpdateBlog)
	private.PATCH("/blogs/:id/status", h.ChangeStatus)
	private.DELETE("/blogs/:id", h.DeleteBlog)
	private.POST("/blogs/:id/like", h.ToggleLike)
}

// ListBlogs godoc
// @Summary List posts
// @Description Lists posts with filtering, sorting, and pagination. Anonymous callers see published posts only; admins may filter by any status.
// @Tags blogs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param status query string false "Status filter (draft, published, archived)"
// @Param category query string false "Category slug"
// @Param tag query string false "Tag slug or name"
// @Param author query string false "Author user ID"
// @Param search query string false "Search term across title and content"
// @Param featured query bool false "Featured posts only"
// @Param sortBy query string false "Sort field" default(created_at)
// @Param sortDir query string false "Sort direction (asc, desc)" default(desc)
// @Success 200 {object} dto.ListBlogsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /blogs [get]
func (h *blogHandler) ListBlogs(c *gin.Context) {
	var params dto.ListBlogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	viewer := middleware.GetViewerFromContext(c)
	blogs, page, total, err := h.blogService.ListBlogs(c.Request.Context(), params, viewer)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListBlogsResponse(blogs, page, total))
}

// ListMyBlogs godoc
// @Summary List own posts
// @Description Lists the authenticated user's posts in every status.
// @Tags blogs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param status query string false "Status filter (draft, published, archived)"
// @Success 200 {object} dto.ListBlogsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /me/blogs [get]
func (h *blogHandler) ListMyBlogs(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var params dto.ListBlogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	blogs, page, total, err := h.blogService.ListMyBlogs(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListBlogsResponse(blogs, page, total))
}

// GetBlogBySlug godoc
// @Summary Get post by slug
// @Description Returns a post with its author, category, and tags. Reading a published post increments its view count. Drafts are visible to their author and admins only.
// @Tags blogs
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} dto.BlogResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /blogs/{slug} [get]
func (h *blogHandler) GetBlogBySlug(c *gin.Context) {
	viewer := middleware.GetViewerFromContext(c)
	blog, err := h.blogService.GetBlogBySlug(c.Request.Context(), c.Param("slug"), viewer)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBlogWithRelationsResponse(blog))
}

// CreateBlog godoc
// @Summary Create post
// @Description Creates a post for the authenticated user. Slug, excerpt, and reading time are derived when not supplied. Unknown categories and tags are created on the fly.
// @Tags blogs
// @Accept json
// @Produce json
// @Param blog body dto.CreateBlogRequest true "Post details"
// @Success 201 {object} dto.BlogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /blogs [post]
func (h *blogHandler) CreateBlog(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	blog, err := h.blogService.CreateBlog(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBlogResponse(blog))
}

// UpdateBlog godoc
// @Summary Update post
// @Description Applies partial updates to a post. Only the author or an admin may update it. A changed title re-derives the slug.
// @Tags blogs
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param blog body dto.UpdateBlogRequest true "Fields to update"
// @Success 200 {object} dto.BlogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /blogs/{id} [put]
func (h *blogHandler) UpdateBlog(c *gin.Context) {
	viewer := middleware.GetViewerFromContext(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	blog, err := h.blogService.UpdateBlog(c.Request.Context(), c.Param("id"), req, *viewer)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBlogResponse(blog))
}

// ChangeStatus godoc
// @Summary Change post status
// @Description Moves a post through its lifecycle (draft, published, archived). The first publish stamps the publication time; republishing keeps the original stamp.
// @Tags blogs
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param status body dto.ChangeBlogStatusRequest true "Target status"
// @Success 200 {object} dto.BlogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /blogs/{id}/status [patch]
func (h *blogHandler) ChangeStatus(c *gin.Context) {
	viewer := middleware.GetViewerFromContext(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.ChangeBlogStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	blog, err := h.blogService.ChangeStatus(c.Request.Context(), c.Param("id"), domain.BlogStatus(req.Status), *viewer)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBlogResponse(blog))
}

// DeleteBlog godoc
// @Summary Delete post
// @Description Deletes a post together with its comments, likes, and tag links. Only the author or an admin may delete it.
// @Tags blogs
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /blogs/{id} [delete]
func (h *blogHandler) DeleteBlog(c *gin.Context) {
	viewer := middleware.GetViewerFromContext(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.blogService.DeleteBlog(c.Request.Context(), c.Param("id"), *viewer); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Post deleted"})
}

// ToggleLike godoc
// @Summary Toggle like
// @Description Likes the post when the caller has not liked it yet and removes the like otherwise.
// @Tags blogs
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.LikeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /blogs/{id}/like [post]
func (h *blogHandler) ToggleLike(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	liked, likeCount, err := h.blogService.ToggleLike(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LikeResponse{Liked: liked, LikeCount: likeCount})
}
