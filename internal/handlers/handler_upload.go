package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/dto"
	"github.com/inkwell-labs/blog_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps image uploads at 5 MiB.
const maxUploadBytes = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type uploadHandler struct {
	images portssvc.ImageStore
}

// registerUploadRoutes sets up the image upload route. When no image store
// is configured the route responds 503.
func registerUploadRoutes(private *gin.RouterGroup, images portssvc.ImageStore) {
	h := &uploadHandler{images: images}
	private.POST("/uploads", h.UploadImage)
}

// UploadImage godoc
// @Summary Upload image
// @Description Stores a multipart image under a generated key and returns its public URL.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file (jpeg, png, gif, or webp, max 5 MiB)"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /uploads [post]
func (h *uploadHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Image storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing image file"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Image exceeds the 5 MiB limit"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		ext = strings.ToLower(filepath.Ext(fileHeader.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".gif" && ext != ".webp" {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unsupported image type"})
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unable to read image file"})
		return
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Unable to read image file"})
		return
	}
	if len(body) > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Image exceeds the 5 MiB limit"})
		return
	}

	key := fmt.Sprintf("uploads/%s/%s%s", time.Now().UTC().Format("2006/01"), uuid.NewString(), ext)
	url, err := h.images.UploadImage(c.Request.Context(), key, contentType, body)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Image upload failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to store image"})
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{URL: url})
}
