package dto

import (
	"time"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
)

// CreateBlogRequest defines the data needed to create a post. Category and
// tags are given by name and resolved (or created) server side.
type CreateBlogRequest struct {
	Title           string   `json:"title" binding:"required,min=3,max=200"`
	Content         string   `json:"content" binding:"required"`
	Excerpt         string   `json:"excerpt" binding:"max=300"`
	FeaturedImage   string   `json:"featuredImage" binding:"omitempty,url"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags" binding:"max=10"`
	Status          string   `json:"status" binding:"omitempty,oneof=draft published"`
	IsFeatured      bool     `json:"isFeatured"`
	MetaTitle       string   `json:"metaTitle" binding:"max=200"`
	MetaDescription string   `json:"metaDescription" binding:"max=300"`
	MetaKeywords    string   `json:"metaKeywords" binding:"max=300"`
}

// UpdateBlogRequest defines the data allowed for updating a post.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateBlogRequest struct {
	Title           *string   `json:"title" binding:"omitempty,min=3,max=200"`
	Content         *string   `json:"content"`
	Excerpt         *string   `json:"excerpt" binding:"omitempty,max=300"`
	FeaturedImage   *string   `json:"featuredImage" binding:"omitempty,url"`
	Category        *string   `json:"category"`
	Tags            *[]string `json:"tags" binding:"omitempty,max=10"`
	IsFeatured      *bool     `json:"isFeatured"`
	MetaTitle       *string   `json:"metaTitle" binding:"omitempty,max=200"`
	MetaDescription *string   `json:"metaDescription" binding:"omitempty,max=300"`
	MetaKeywords    *string   `json:"metaKeywords" binding:"omitempty,max=300"`
}

// ChangeBlogStatusRequest moves a post through its lifecycle.
type ChangeBlogStatusRequest struct {
	Status string `json:"status" binding:"required,blogstatus"`
}

// ListBlogsParams defines query parameters for listing posts.
type ListBlogsParams struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=10"`
	Status   string `form:"status" binding:"omitempty,blogstatus"`
	Category string `form:"category"`
	Tag      string `form:"tag"`
	Author   string `form:"author"`
	Search   string `form:"search"`
	Featured *bool  `form:"featured"`
	SortBy   string `form:"sortBy,default=created_at"`
	SortDir  string `form:"sortDir,default=desc" binding:"omitempty,oneof=asc desc"`
}

// BlogResponse defines the data returned for a post.
type BlogResponse struct {
	BlogID          string                `json:"blogID"`
	Title           string                `json:"title"`
	Slug            string                `json:"slug"`
	Content         string                `json:"content,omitempty"`
	Excerpt         string                `json:"excerpt,omitempty"`
	FeaturedImage   string                `json:"featuredImage,omitempty"`
	Author          *PublicAuthorResponse `json:"author,omitempty"`
	AuthorID        string                `json:"authorID"`
	Category        *CategoryResponse     `json:"category,omitempty"`
	Tags            []TagResponse         `json:"tags,omitempty"`
	Status          string                `json:"status"`
	ViewCount       int64                 `json:"viewCount"`
	LikeCount       int64                 `json:"likeCount"`
	CommentCount    int64                 `json:"commentCount"`
	ReadingTime     int                   `json:"readingTime"`
	IsFeatured      bool                  `json:"isFeatured"`
	PublishedAt     *time.Time            `json:"publishedAt,omitempty"`
	MetaTitle       string                `json:"metaTitle,omitempty"`
	MetaDescription string                `json:"metaDescription,omitempty"`
	MetaKeywords    string                `json:"metaKeywords,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// ToBlogResponse converts a domain.Blog to BlogResponse DTO.
func ToBlogResponse(blog *domain.Blog) BlogResponse {
	return BlogResponse{
		BlogID:          blog.BlogID,
		Title:           blog.Title,
		Slug:            blog.Slug,
		Content:         blog.Content,
		Excerpt:         blog.Excerpt,
		FeaturedImage:   blog.FeaturedImage,
		AuthorID:        blog.AuthorID,
		Status:          string(blog.Status),
		ViewCount:       blog.ViewCount,
		LikeCount:       blog.LikeCount,
		CommentCount:    blog.CommentCount,
		ReadingTime:     blog.ReadingTime,
		IsFeatured:      blog.IsFeatured,
		PublishedAt:     blog.PublishedAt,
		MetaTitle:       blog.MetaTitle,
		MetaDescription: blog.MetaDescription,
		MetaKeywords:    blog.MetaKeywords,
		CreatedAt:       blog.CreatedAt,
		UpdatedAt:       blog.UpdatedAt,
	}
}

// ToBlogWithRelationsResponse converts a blog plus its resolved relations.
func ToBlogWithRelationsResponse(blog *domain.BlogWithRelations) BlogResponse {
	resp := ToBlogResponse(&blog.Blog)
	author := ToPublicAuthorResponse(&blog.Author)
	resp.Author = &author
	if blog.Category != nil {
		category := ToCategoryResponse(blog.Category)
		resp.Category = &category
	}
	if len(blog.Tags) > 0 {
		resp.Tags = ToListTagResponse(blog.Tags)
	}
	return resp
}

// ListBlogsResponse wraps a page of posts with pagination metadata.
type ListBlogsResponse struct {
	Blogs      []BlogResponse `json:"blogs"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int64          `json:"total"`
	TotalPages int64          `json:"totalPages"`
}

// ToListBlogsResponse converts a page of domain blogs plus its metadata.
func ToListBlogsResponse(blogs []domain.Blog, page domain.Pagination, total int64) ListBlogsResponse {
	blogResponses := make([]BlogResponse, len(blogs))
	for i, blog := range blogs {
		blogResponses[i] = ToBlogResponse(&blog)
		// Full content stays out of list payloads.
		blogResponses[i].Content = ""
	}

	totalPages := int64(0)
	if page.Limit > 0 {
		totalPages = (total + int64(page.Limit) - 1) / int64(page.Limit)
	}
	return ListBlogsResponse{
		Blogs:      blogResponses,
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// LikeResponse reports the state after a like toggle.
type LikeResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}
