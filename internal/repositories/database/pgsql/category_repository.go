package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inkwell-labs/blog_backend/internal/apperrors"
	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portsrepo "github.com/inkwell-labs/blog_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, name, slug, description, color, created_at, updated_at`

func scanCategory(row rowScanner) (*domain.Category, error) {
	var c domain.Category
	var description, color sql.NullString
	err := row.Scan(&c.CategoryID, &c.Name, &c.Slug, &description, &color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Description = description.String
	c.Color = color.String
	return &c, nil
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
        INSERT INTO categories (` + categoryColumns + `)
        VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7);
    `
	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID, category.Name, category.Slug, category.Description,
		category.Color, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category name or slug taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	return r.findCategoryWhere(ctx, "category_id = $1", categoryID)
}

func (r *PgxCategoryRepository) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.findCategoryWhere(ctx, "name = $1", domain.NormalizeName(name))
}

func (r *PgxCategoryRepository) FindCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return r.findCategoryWhere(ctx, "slug = $1", slug)
}

func (r *PgxCategoryRepository) findCategoryWhere(ctx context.Context, where string, arg any) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE ` + where + `;`
	category, err := scanCategory(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name ASC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `
        UPDATE categories SET
            name = $1, slug = $2, description = NULLIF($3, ''),
            color = NULLIF($4, ''), updated_at = $5
        WHERE category_id = $6;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		category.Name, category.Slug, category.Description, category.Color,
		category.UpdatedAt, category.CategoryID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category name or slug taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", category.CategoryID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteCategory detaches the category from its blogs before removing it,
// so published posts survive as uncategorized.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `UPDATE blogs SET category_id = NULL WHERE category_id = $1;`, categoryID); err != nil {
		return fmt.Errorf("failed to detach category from blogs: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", categoryID, apperrors.ErrNotFound)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxCategoryRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1 AND category_id <> $2);`
	if err := r.Pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check category slug: %w", err)
	}
	return exists, nil
}
