package mongodb

import (
	"time"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
)

// Documents keep the domain's uuid strings as _id so both storage
// backends share one identifier scheme.

type userDocument struct {
	UserID                 string     `bson:"_id"`
	Username               string     `bson:"username"`
	Email                  string     `bson:"email"`
	PasswordHash           string     `bson:"password_hash,omitempty"`
	FirstName              string     `bson:"first_name,omitempty"`
	LastName               string     `bson:"last_name,omitempty"`
	Bio                    string     `bson:"bio,omitempty"`
	Avatar                 string     `bson:"avatar,omitempty"`
	Role                   string     `bson:"role"`
	AuthProvider           string     `bson:"auth_provider"`
	IsEmailVerified        bool       `bson:"is_email_verified"`
	EmailVerificationToken *string    `bson:"email_verification_token,omitempty"`
	PasswordResetToken     *string    `bson:"password_reset_token,omitempty"`
	PasswordResetExpires   *time.Time `bson:"password_reset_expires,omitempty"`
	RefreshTokenHash       string     `bson:"refresh_token_hash,omitempty"`
	RefreshTokenExpiry     *time.Time `bson:"refresh_token_expiry,omitempty"`
	IsActive               bool       `bson:"is_active"`
	LastLoginAt            *time.Time `bson:"last_login_at,omitempty"`
	CreatedAt              time.Time  `bson:"created_at"`
	UpdatedAt              time.Time  `bson:"updated_at"`
}

func toUserDocument(u domain.User) userDocument {
	return userDocument{
		UserID:                 u.UserID,
		Username:               u.Username,
		Email:                  u.Email,
		PasswordHash:           u.PasswordHash,
		FirstName:              u.FirstName,
		LastName:               u.LastName,
		Bio:                    u.Bio,
		Avatar:                 u.Avatar,
		Role:                   string(u.Role),
		AuthProvider:           string(u.AuthProvider),
		IsEmailVerified:        u.IsEmailVerified,
		EmailVerificationToken: u.EmailVerificationToken,
		PasswordResetToken:     u.PasswordResetToken,
		PasswordResetExpires:   u.PasswordResetExpires,
		RefreshTokenHash:       u.RefreshTokenHash,
		RefreshTokenExpiry:     u.RefreshTokenExpiry,
		IsActive:               u.IsActive,
		LastLoginAt:            u.LastLoginAt,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		UserID:                 d.UserID,
		Username:               d.Username,
		Email:                  d.Email,
		PasswordHash:           d.PasswordHash,
		FirstName:              d.FirstName,
		LastName:               d.LastName,
		Bio:                    d.Bio,
		Avatar:                 d.Avatar,
		Role:                   domain.Role(d.Role),
		AuthProvider:           domain.AuthProvider(d.AuthProvider),
		IsEmailVerified:        d.IsEmailVerified,
		EmailVerificationToken: d.EmailVerificationToken,
		PasswordResetToken:     d.PasswordResetToken,
		PasswordResetExpires:   d.PasswordResetExpires,
		RefreshTokenHash:       d.RefreshTokenHash,
		RefreshTokenExpiry:     d.RefreshTokenExpiry,
		IsActive:               d.IsActive,
		LastLoginAt:            d.LastLoginAt,
		Timestamps:             domain.Timestamps{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
	}
}

type blogDocument struct {
	BlogID          string     `bson:"_id"`
	Title           string     `bson:"title"`
	Slug            string     `bson:"slug"`
	Content         string     `bson:"content"`
	Excerpt         string     `bson:"excerpt,omitempty"`
	FeaturedImage   string     `bson:"featured_image,omitempty"`
	AuthorID        string     `bson:"user_id"`
	CategoryID      *string    `bson:"category_id,omitempty"`
	TagIDs          []string   `bson:"tag_ids,omitempty"`
	Status          string     `bson:"status"`
	ViewCount       int64      `bson:"view_count"`
	LikeCount       int64      `bson:"like_count"`
	CommentCount    int64      `bson:"comment_count"`
	ReadingTime     int        `bson:"reading_time"`
	IsFeatured      bool       `bson:"is_featured"`
	PublishedAt     *time.Time `bson:"published_at,omitempty"`
	MetaTitle       string     `bson:"meta_title,omitempty"`
	MetaDescription string     `bson:"meta_description,omitempty"`
	MetaKeywords    string     `bson:"meta_keywords,omitempty"`
	CreatedAt       time.Time  `bson:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at"`
}

func toBlogDocument(b domain.Blog) blogDocument {
	return blogDocument{
		BlogID:          b.BlogID,
		Title:           b.Title,
		Slug:            b.Slug,
		Content:         b.Content,
		Excerpt:         b.Excerpt,
		FeaturedImage:   b.FeaturedImage,
		AuthorID:        b.AuthorID,
		CategoryID:      b.CategoryID,
		TagIDs:          b.TagIDs,
		Status:          string(b.Status),
		ViewCount:       b.ViewCount,
		LikeCount:       b.LikeCount,
		CommentCount:    b.CommentCount,
		ReadingTime:     b.ReadingTime,
		IsFeatured:      b.IsFeatured,
		PublishedAt:     b.PublishedAt,
		MetaTitle:       b.MetaTitle,
		MetaDescription: b.MetaDescription,
		MetaKeywords:    b.MetaKeywords,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (d blogDocument) toDomain() domain.Blog {
	return domain.Blog{
		BlogID:          d.BlogID,
		Title:           d.Title,
		Slug:            d.Slug,
		Content:         d.Content,
		Excerpt:         d.Excerpt,
		FeaturedImage:   d.FeaturedImage,
		AuthorID:        d.AuthorID,
		CategoryID:      d.CategoryID,
		TagIDs:          d.TagIDs,
		Status:          domain.BlogStatus(d.Status),
		ViewCount:       d.ViewCount,
		LikeCount:       d.LikeCount,
		CommentCount:    d.CommentCount,
		ReadingTime:     d.ReadingTime,
		IsFeatured:      d.IsFeatured,
		PublishedAt:     d.PublishedAt,
		MetaTitle:       d.MetaTitle,
		MetaDescription: d.MetaDescription,
		MetaKeywords:    d.MetaKeywords,
		Timestamps:      domain.Timestamps{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
	}
}

type categoryDocument struct {
	CategoryID  string    `bson:"_id"`
	Name        string    `bson:"name"`
	Slug        string    `bson:"slug"`
	Description string    `bson:"description,omitempty"`
	Color       string    `bson:"color,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toCategoryDocument(c domain.Category) categoryDocument {
	return categoryDocument{
		CategoryID:  c.CategoryID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Color:       c.Color,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (d categoryDocument) toDomain() domain.Category {
	return domain.Category{
		CategoryID:  d.CategoryID,
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		Color:       d.Color,
		Timestamps:  domain.Timestamps{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
	}
}

type tagDocument struct {
	TagID     string    `bson:"_id"`
	Name      string    `bson:"name"`
	Slug      string    `bson:"slug"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toTagDocument(t domain.Tag) tagDocument {
	return tagDocument{TagID: t.TagID, Name: t.Name, Slug: t.Slug, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

func (d tagDocument) toDomain() domain.Tag {
	return domain.Tag{
		TagID:      d.TagID,
		Name:       d.Name,
		Slug:       d.Slug,
		Timestamps: domain.Timestamps{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
	}
}

type commentDocument struct {
	CommentID string    `bson:"_id"`
	Content   string    `bson:"content"`
	BlogID    string    `bson:"blog_id"`
	UserID    string    `bson:"user_id"`
	ParentID  *string   `bson:"parent_id,omitempty"`
	IsEdited  bool      `bson:"is_edited"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toCommentDocument(c domain.Comment) commentDocument {
	return commentDocument{
		CommentID: c.CommentID,
		Content:   c.Content,
		BlogID:    c.BlogID,
		UserID:    c.UserID,
		ParentID:  c.ParentID,
		IsEdited:  c.IsEdited,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (d commentDocument) toDomain() domain.Comment {
	return domain.Comment{
		CommentID:  d.CommentID,
		Content:    d.Content,
		BlogID:     d.BlogID,
		UserID:     d.UserID,
		ParentID:   d.ParentID,
		IsEdited:   d.IsEdited,
		Timestamps: domain.Timestamps{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
	}
}

type likeDocument struct {
	LikeID    string    `bson:"_id"`
	BlogID    string    `bson:"blog_id"`
	UserID    string    `bson:"user_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func toLikeDocument(l domain.Like) likeDocument {
	return likeDocument{LikeID: l.LikeID, BlogID: l.BlogID, UserID: l.UserID, CreatedAt: l.CreatedAt}
}

func (d likeDocument) toDomain() domain.Like {
	return domain.Like{LikeID: d.LikeID, BlogID: d.BlogID, UserID: d.UserID, CreatedAt: d.CreatedAt}
}
