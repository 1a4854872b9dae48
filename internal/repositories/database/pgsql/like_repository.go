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

type PgxLikeRepository struct {
	BaseRepository
}

func newPgxLikeRepository(pool *pgxpool.Pool) portsrepo.LikeRepositoryFacade {
	return &PgxLikeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LikeRepositoryFacade = (*PgxLikeRepository)(nil)

// SaveLike inserts the like and bumps the blog's like counter in a single
// transaction. The unique (blog_id, user_id) constraint rejects a second
// like from the same user.
func (r *PgxLikeRepository) SaveLike(ctx context.Context, like domain.Like) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `INSERT INTO likes (like_id, blog_id, user_id, created_at) VALUES ($1, $2, $3, $4);`
	_, err = tx.Exec(ctx, query, like.LikeID, like.BlogID, like.UserID, like.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("blog already liked: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert like: %w", err)
	}

	if err := adjustBlogCounter(ctx, tx, like.BlogID, "like_count", 1); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxLikeRepository) FindLike(ctx context.Context, blogID string, userID string) (*domain.Like, error) {
	var like domain.Like
	query := `SELECT like_id, blog_id, user_id, created_at FROM likes WHERE blog_id = $1 AND user_id = $2;`
	err := r.Pool.QueryRow(ctx, query, blogID, userID).Scan(&like.LikeID, &like.BlogID, &like.UserID, &like.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find like: %w", err)
	}
	return &like, nil
}

// DeleteLike removes the like and drops the blog's like counter in the
// same transaction. The counter stays put when no row matched.
func (r *PgxLikeRepository) DeleteLike(ctx context.Context, blogID string, userID string) (bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer r.Rollback(ctx, tx)

	query := `DELETE FROM likes WHERE blog_id = $1 AND user_id = $2;`
	cmdTag, err := tx.Exec(ctx, query, blogID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}
	removed := cmdTag.RowsAffected() > 0

	if removed {
		if err := adjustBlogCounter(ctx, tx, blogID, "like_count", -1); err != nil {
			return false, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return false, err
	}
	return removed, nil
}
