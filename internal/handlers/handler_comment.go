package handlers

import (
	"net/http"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/dto"
	"github.com/inkwell-labs/blog_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type commentHandler struct {
	commentService portssvc.CommentSvcFacade
}

// registerCommentRoutes sets up the routes for comments.
func registerCommentRoutes(public *gin.RouterGroup, private *gin.RouterGroup, cs portssvc.CommentSvcFacade) {
	h := &commentHandler{commentService: cs}

	public.GET("/comments/blog/:blogID", h.ListCommentsByBlog)

	private.POST("/comments/blog/:blogID", h.CreateComment)
	private.PUT("/comments/:id", h.UpdateComment)
	private.DELETE("/comments/:id", h.DeleteComment)
}

// ListCommentsByBlog godoc
// @Summary List comments for a post
// @Description Returns the post's comments as a nested tree, top-level comments newest first.
// @Tags comments
// @Produce json
// @Param blogID path string true "Post ID"
// @Success 200 {array} dto.CommentResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /comments/blog/{blogID} [get]
func (h *commentHandler) ListCommentsByBlog(c *gin.Context) {
	nodes, err := h.commentService.ListCommentsByBlog(c.Request.Context(), c.Param("blogID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentTreeResponse(nodes))
}

// CreateComment godoc
// @Summary Create comment
// @Description Adds a comment to a published post. Supplying parentID makes it a reply; the parent must belong to the same post.
// @Tags comments
// @Accept json
// @Produce json
// @Param blogID path string true "Post ID"
// @Param comment body dto.CreateCommentRequest true "Comment content"
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /comments/blog/{blogID} [post]
func (h *commentHandler) CreateComment(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), c.Param("blogID"), userID, req.Content, req.ParentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

// UpdateComment godoc
// @Summary Update comment
// @Description Edits a comment's content. Only the author may edit; the comment is marked edited.
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Comment ID"
// @Param comment body dto.UpdateCommentRequest true "New content"
// @Success 200 {object} dto.CommentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [put]
func (h *commentHandler) UpdateComment(c *gin.Context) {
	viewer := middleware.GetViewerFromContext(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), c.Param("id"), req.Content, *viewer)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentResponse(&domain.CommentWithAuthor{Comment: *comment}))
}

// DeleteComment godoc
// @Summary Delete comment
// @Description Deletes a comment and its whole reply subtree. Only the author or an admin may delete it.
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (h *commentHandler) DeleteComment(c *gin.Context) {
	viewer := middleware.GetViewerFromContext(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), c.Param("id"), *viewer); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Comment deleted"})
}
