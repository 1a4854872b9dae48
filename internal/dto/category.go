package dto

import (
	"time"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=50"`
	Description string `json:"description" binding:"max=300"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=50"`
	Description *string `json:"description" binding:"omitempty,max=300"`
	Color       *string `json:"color" binding:"omitempty,hexcolor"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID  string    `json:"categoryID"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO.
func ToCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:  category.CategoryID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		Color:       category.Color,
		CreatedAt:   category.CreatedAt,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to DTOs.
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		res[i] = ToCategoryResponse(&category)
	}
	return res
}

// CreateTagRequest defines the data needed to create a tag.
type CreateTagRequest struct {
	Name string `json:"name" binding:"required,min=2,max=30"`
}

// TagResponse defines the data returned for a tag.
type TagResponse struct {
	TagID string `json:"tagID"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
}

// ToTagResponse converts a domain.Tag to TagResponse DTO.
func ToTagResponse(tag *domain.Tag) TagResponse {
	return TagResponse{TagID: tag.TagID, Name: tag.Name, Slug: tag.Slug}
}

// ToListTagResponse converts a slice of domain.Tag to DTOs.
func ToListTagResponse(tags []domain.Tag) []TagResponse {
	res := make([]TagResponse, len(tags))
	for i, tag := range tags {
		res[i] = ToTagResponse(&tag)
	}
	return res
}
