package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/inkwell-labs/blog_backend/internal/apperrors"
	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portsrepo "github.com/inkwell-labs/blog_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBlogRepository struct {
	BaseRepository
	userRepo portsrepo.UserReader
	catRepo  portsrepo.CategoryRepositoryFacade
	tagRepo  portsrepo.TagRepositoryFacade
}

func newPgxBlogRepository(pool *pgxpool.Pool, userRepo portsrepo.UserReader, catRepo portsrepo.CategoryRepositoryFacade, tagRepo portsrepo.TagRepositoryFacade) portsrepo.BlogRepositoryFacade {
	return &PgxBlogRepository{
		BaseRepository: BaseRepository{Pool: pool},
		userRepo:       userRepo,
		catRepo:        catRepo,
		tagRepo:        tagRepo,
	}
}

var _ portsrepo.BlogRepositoryFacade = (*PgxBlogRepository)(nil)

const blogColumns = `
	blog_id, title, slug, content, excerpt, featured_image, user_id, category_id,
	status, view_count, like_count, comment_count, reading_time, is_featured,
	published_at, meta_title, meta_description, meta_keywords, created_at, updated_at`

// sortColumns whitelists sortable fields against their columns.
var sortColumns = map[string]string{
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"published_at": "published_at",
	"title":        "title",
	"view_count":   "view_count",
	"like_count":   "like_count",
}

func scanBlog(row rowScanner) (*domain.Blog, error) {
	var b domain.Blog
	var excerpt, featuredImage, categoryID, metaTitle, metaDesc, metaKeywords sql.NullString
	var publishedAt sql.NullTime

	err := row.Scan(
		&b.BlogID, &b.Title, &b.Slug, &b.Content, &excerpt, &featuredImage,
		&b.AuthorID, &categoryID, &b.Status, &b.ViewCount, &b.LikeCount,
		&b.CommentCount, &b.ReadingTime, &b.IsFeatured, &publishedAt,
		&metaTitle, &metaDesc, &metaKeywords, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Excerpt = excerpt.String
	b.FeaturedImage = featuredImage.String
	b.MetaTitle = metaTitle.String
	b.MetaDescription = metaDesc.String
	b.MetaKeywords = metaKeywords.String
	if categoryID.Valid {
		b.CategoryID = &categoryID.String
	}
	if publishedAt.Valid {
		b.PublishedAt = &publishedAt.Time
	}
	return &b, nil
}

func (r *PgxBlogRepository) SaveBlog(ctx context.Context, blog domain.Blog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
        INSERT INTO blogs (` + blogColumns + `)
        VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9,
                $10, $11, $12, $13, $14, $15, NULLIF($16, ''), NULLIF($17, ''), NULLIF($18, ''), $19, $20);
    `
	_, err = tx.Exec(ctx, query,
		blog.BlogID, blog.Title, blog.Slug, blog.Content, blog.Excerpt,
		blog.FeaturedImage, blog.AuthorID, blog.CategoryID, blog.Status,
		blog.ViewCount, blog.LikeCount, blog.CommentCount, blog.ReadingTime,
		blog.IsFeatured, blog.PublishedAt, blog.MetaTitle,
		blog.MetaDescription, blog.MetaKeywords, blog.CreatedAt, blog.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("blog slug taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert blog: %w", err)
	}

	if err := replaceBlogTags(ctx, tx, blog.BlogID, blog.TagIDs); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxBlogRepository) UpdateBlog(ctx context.Context, blog domain.Blog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
        UPDATE blogs SET
            title = $1, slug = $2, content = $3, excerpt = NULLIF($4, ''),
            featured_image = NULLIF($5, ''), category_id = $6, status = $7,
            reading_time = $8, is_featured = $9, published_at = $10,
            meta_title = NULLIF($11, ''), meta_description = NULLIF($12, ''),
            meta_keywords = NULLIF($13, ''), updated_at = $14
        WHERE blog_id = $15;
    `
	cmdTag, err := tx.Exec(ctx, query,
		blog.Title, blog.Slug, blog.Content, blog.Excerpt, blog.FeaturedImage,
		blog.CategoryID, blog.Status, blog.ReadingTime, blog.IsFeatured,
		blog.PublishedAt, blog.MetaTitle, blog.MetaDescription,
		blog.MetaKeywords, blog.UpdatedAt, blog.BlogID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("blog slug taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update blog: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("blog %s: %w", blog.BlogID, apperrors.ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM blog_tags WHERE blog_id = $1;`, blog.BlogID); err != nil {
		return fmt.Errorf("failed to clear blog tags: %w", err)
	}
	if err := replaceBlogTags(ctx, tx, blog.BlogID, blog.TagIDs); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func replaceBlogTags(ctx context.Context, tx pgx.Tx, blogID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(`INSERT INTO blog_tags (blog_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;`, blogID, tagID)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range tagIDs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to link blog tag: %w", err)
		}
	}
	return nil
}

// DeleteBlog removes the blog and cascades to its comments, likes and tag
// links inside one transaction.
func (r *PgxBlogRepository) DeleteBlog(ctx context.Context, blogID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	for _, q := range []string{
		`DELETE FROM comments WHERE blog_id = $1;`,
		`DELETE FROM likes WHERE blog_id = $1;`,
		`DELETE FROM blog_tags WHERE blog_id = $1;`,
	} {
		if _, err := tx.Exec(ctx, q, blogID); err != nil {
			return fmt.Errorf("failed to cascade blog delete: %w", err)
		}
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM blogs WHERE blog_id = $1;`, blogID)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("blog %s: %w", blogID, apperrors.ErrNotFound)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxBlogRepository) FindBlogByID(ctx context.Context, blogID string) (*domain.Blog, error) {
	return r.findBlogWhere(ctx, "blog_id = $1", blogID)
}

func (r *PgxBlogRepository) FindBlogBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	return r.findBlogWhere(ctx, "slug = $1", slug)
}

func (r *PgxBlogRepository) findBlogWhere(ctx context.Context, where string, arg any) (*domain.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE ` + where + `;`
	blog, err := scanBlog(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find blog: %w", err)
	}

	blog.TagIDs, err = r.blogTagIDs(ctx, blog.BlogID)
	if err != nil {
		return nil, err
	}
	return blog, nil
}

func (r *PgxBlogRepository) blogTagIDs(ctx context.Context, blogID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT tag_id FROM blog_tags WHERE blog_id = $1;`, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to query blog tags: %w", err)
	}
	defer rows.Close()

	var tagIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan blog tag: %w", err)
		}
		tagIDs = append(tagIDs, id)
	}
	return tagIDs, rows.Err()
}

func (r *PgxBlogRepository) FindBlogWithRelations(ctx context.Context, blogID string) (*domain.BlogWithRelations, error) {
	blog, err := r.FindBlogByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return r.loadRelations(ctx, blog)
}

func (r *PgxBlogRepository) FindBlogWithRelationsBySlug(ctx context.Context, slug string) (*domain.BlogWithRelations, error) {
	blog, err := r.FindBlogBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return r.loadRelations(ctx, blog)
}

func (r *PgxBlogRepository) loadRelations(ctx context.Context, blog *domain.Blog) (*domain.BlogWithRelations, error) {
	result := &domain.BlogWithRelations{Blog: *blog}

	author, err := r.userRepo.FindUserByID(ctx, blog.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load blog author: %w", err)
	}
	result.Author = *author

	if blog.CategoryID != nil {
		category, err := r.catRepo.FindCategoryByID(ctx, *blog.CategoryID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load blog category: %w", err)
		}
		result.Category = category
	}

	if len(blog.TagIDs) > 0 {
		tags, err := r.tagRepo.FindTagsByIDs(ctx, blog.TagIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load blog tags: %w", err)
		}
		result.Tags = tags
	}

	return result, nil
}

// buildWhere translates structured predicates into a WHERE clause.
func buildWhere(filters []domain.Filter) (string, []any, error) {
	var clauses []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	for _, f := range filters {
		switch f.Op {
		case domain.OpEq:
			col, err := filterColumn(f.Field)
			if err != nil {
				return "", nil, err
			}
			if f.Field == "tag_id" {
				clauses = append(clauses, fmt.Sprintf(
					"EXISTS (SELECT 1 FROM blog_tags bt WHERE bt.blog_id = blogs.blog_id AND bt.tag_id = %s)", arg(f.Value)))
			} else {
				clauses = append(clauses, fmt.Sprintf("%s = %s", col, arg(f.Value)))
			}
		case domain.OpContains:
			val, ok := f.Value.(string)
			if !ok {
				return "", nil, fmt.Errorf("contains filter on %s: %w", f.Field, apperrors.ErrValidation)
			}
			pattern := "%" + val + "%"
			if f.Field == "search" {
				p := arg(pattern)
				clauses = append(clauses, fmt.Sprintf("(title ILIKE %s OR content ILIKE %s)", p, p))
			} else {
				col, err := filterColumn(f.Field)
				if err != nil {
					return "", nil, err
				}
				clauses = append(clauses, fmt.Sprintf("%s ILIKE %s", col, arg(pattern)))
			}
		case domain.OpIn:
			col, err := filterColumn(f.Field)
			if err != nil {
				return "", nil, err
			}
			clauses = append(clauses, fmt.Sprintf("%s = ANY(%s)", col, arg(f.Value)))
		case domain.OpIsNull:
			col, err := filterColumn(f.Field)
			if err != nil {
				return "", nil, err
			}
			wantNull, _ := f.Value.(bool)
			if wantNull {
				clauses = append(clauses, col+" IS NULL")
			} else {
				clauses = append(clauses, col+" IS NOT NULL")
			}
		default:
			return "", nil, fmt.Errorf("unsupported filter op %q: %w", f.Op, apperrors.ErrValidation)
		}
	}

	if len(clauses) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func filterColumn(field string) (string, error) {
	switch field {
	case "status":
		return "status", nil
	case "author_id":
		return "user_id", nil
	case "category_id":
		return "category_id", nil
	case "tag_id":
		return "tag_id", nil
	case "is_featured":
		return "is_featured", nil
	case "published_at":
		return "published_at", nil
	case "title":
		return "title", nil
	}
	return "", fmt.Errorf("unknown filter field %q: %w", field, apperrors.ErrValidation)
}

func (r *PgxBlogRepository) ListBlogs(ctx context.Context, filters []domain.Filter, sort domain.Sort, page domain.Pagination) ([]domain.Blog, int64, error) {
	where, args, err := buildWhere(filters)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM blogs` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}

	orderCol, ok := sortColumns[sort.Field]
	if !ok {
		orderCol = "created_at"
	}
	dir := "DESC"
	if sort.Direction == domain.SortAsc {
		dir = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM blogs%s ORDER BY %s %s NULLS LAST LIMIT $%d OFFSET $%d;`,
		blogColumns, where, orderCol, dir, len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Offset())

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query blogs: %w", err)
	}
	defer rows.Close()

	blogs := []domain.Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan blog row: %w", err)
		}
		blogs = append(blogs, *blog)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating blog rows: %w", rows.Err())
	}

	return blogs, total, nil
}

func (r *PgxBlogRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM blogs WHERE slug = $1 AND blog_id <> $2);`
	if err := r.Pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check blog slug: %w", err)
	}
	return exists, nil
}

func (r *PgxBlogRepository) IncrementViewCount(ctx context.Context, blogID string) error {
	return adjustBlogCounter(ctx, r.Pool, blogID, "view_count", 1)
}
