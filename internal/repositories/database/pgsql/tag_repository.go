package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/inkwell-labs/blog_backend/internal/apperrors"
	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portsrepo "github.com/inkwell-labs/blog_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTagRepository struct {
	BaseRepository
}

func newPgxTagRepository(pool *pgxpool.Pool) portsrepo.TagRepositoryFacade {
	return &PgxTagRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TagRepositoryFacade = (*PgxTagRepository)(nil)

const tagColumns = `tag_id, name, slug, created_at, updated_at`

func scanTag(row rowScanner) (*domain.Tag, error) {
	var t domain.Tag
	if err := row.Scan(&t.TagID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PgxTagRepository) SaveTag(ctx context.Context, tag domain.Tag) error {
	query := `INSERT INTO tags (` + tagColumns + `) VALUES ($1, $2, $3, $4, $5);`
	_, err := r.Pool.Exec(ctx, query, tag.TagID, tag.Name, tag.Slug, tag.CreatedAt, tag.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tag name or slug taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert tag: %w", err)
	}
	return nil
}

func (r *PgxTagRepository) FindTagByID(ctx context.Context, tagID string) (*domain.Tag, error) {
	return r.findTagWhere(ctx, "tag_id = $1", tagID)
}

func (r *PgxTagRepository) FindTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	return r.findTagWhere(ctx, "name = $1", domain.NormalizeName(name))
}

func (r *PgxTagRepository) findTagWhere(ctx context.Context, where string, arg any) (*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE ` + where + `;`
	tag, err := scanTag(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return tag, nil
}

func (r *PgxTagRepository) FindTagsByIDs(ctx context.Context, tagIDs []string) ([]domain.Tag, error) {
	if len(tagIDs) == 0 {
		return []domain.Tag{}, nil
	}
	query := `SELECT ` + tagColumns + ` FROM tags WHERE tag_id = ANY($1) ORDER BY name ASC;`
	rows, err := r.Pool.Query(ctx, query, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()
	return collectTags(rows)
}

func (r *PgxTagRepository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags ORDER BY name ASC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()
	return collectTags(rows)
}

func collectTags(rows pgx.Rows) ([]domain.Tag, error) {
	tags := []domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, *tag)
	}
	return tags, rows.Err()
}

func (r *PgxTagRepository) UpdateTag(ctx context.Context, tag domain.Tag) error {
	query := `UPDATE tags SET name = $1, slug = $2, updated_at = $3 WHERE tag_id = $4;`
	cmdTag, err := r.Pool.Exec(ctx, query, tag.Name, tag.Slug, tag.UpdatedAt, tag.TagID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tag name or slug taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update tag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", tag.TagID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTagRepository) DeleteTag(ctx context.Context, tagID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM blog_tags WHERE tag_id = $1;`, tagID); err != nil {
		return fmt.Errorf("failed to detach tag from blogs: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM tags WHERE tag_id = $1;`, tagID)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", tagID, apperrors.ErrNotFound)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTagRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM tags WHERE slug = $1 AND tag_id <> $2);`
	if err := r.Pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check tag slug: %w", err)
	}
	return exists, nil
}
