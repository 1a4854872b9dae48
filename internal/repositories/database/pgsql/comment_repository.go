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

type PgxCommentRepository struct {
	BaseRepository
}

func newPgxCommentRepository(pool *pgxpool.Pool) portsrepo.CommentRepositoryFacade {
	return &PgxCommentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CommentRepositoryFacade = (*PgxCommentRepository)(nil)

const commentColumns = `comment_id, content, blog_id, user_id, parent_id, is_edited, created_at, updated_at`

func scanComment(row rowScanner) (*domain.Comment, error) {
	var c domain.Comment
	var parentID sql.NullString
	err := row.Scan(&c.CommentID, &c.Content, &c.BlogID, &c.UserID, &parentID, &c.IsEdited, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		c.ParentID = &parentID.String
	}
	return &c, nil
}

// SaveComment inserts the comment and bumps the owning blog's comment
// counter in a single transaction.
func (r *PgxCommentRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
        INSERT INTO comments (` + commentColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err = tx.Exec(ctx, query,
		comment.CommentID, comment.Content, comment.BlogID, comment.UserID,
		comment.ParentID, comment.IsEdited, comment.CreatedAt, comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	if err := adjustBlogCounter(ctx, tx, comment.BlogID, "comment_count", 1); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxCommentRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE comment_id = $1;`
	comment, err := scanComment(r.Pool.QueryRow(ctx, query, commentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return comment, nil
}

func (r *PgxCommentRepository) ListCommentsByBlog(ctx context.Context, blogID string) ([]domain.CommentWithAuthor, error) {
	query := `
        SELECT c.comment_id, c.content, c.blog_id, c.user_id, c.parent_id,
               c.is_edited, c.created_at, c.updated_at, u.username, u.avatar
        FROM comments c
        JOIN users u ON u.user_id = c.user_id
        WHERE c.blog_id = $1
        ORDER BY c.created_at DESC;
    `
	rows, err := r.Pool.Query(ctx, query, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.CommentWithAuthor{}
	for rows.Next() {
		var c domain.CommentWithAuthor
		var parentID, avatar sql.NullString
		err := rows.Scan(&c.CommentID, &c.Content, &c.BlogID, &c.UserID, &parentID,
			&c.IsEdited, &c.CreatedAt, &c.UpdatedAt, &c.AuthorUsername, &avatar)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		if parentID.Valid {
			c.ParentID = &parentID.String
		}
		c.AuthorAvatar = avatar.String
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *PgxCommentRepository) UpdateComment(ctx context.Context, comment domain.Comment) error {
	query := `UPDATE comments SET content = $1, is_edited = $2, updated_at = $3 WHERE comment_id = $4;`
	cmdTag, err := r.Pool.Exec(ctx, query, comment.Content, comment.IsEdited, comment.UpdatedAt, comment.CommentID)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", comment.CommentID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteCommentTree removes the comment and every descendant reply and
// drops the blog's comment counter by the same amount, all in one
// transaction. Reports how many rows went away.
func (r *PgxCommentRepository) DeleteCommentTree(ctx context.Context, commentID string) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	var blogID string
	err = tx.QueryRow(ctx, `SELECT blog_id FROM comments WHERE comment_id = $1;`, commentID).Scan(&blogID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("comment %s: %w", commentID, apperrors.ErrNotFound)
		}
		return 0, fmt.Errorf("failed to resolve comment blog: %w", err)
	}

	query := `
        WITH RECURSIVE subtree AS (
            SELECT comment_id FROM comments WHERE comment_id = $1
            UNION ALL
            SELECT c.comment_id FROM comments c
            JOIN subtree s ON c.parent_id = s.comment_id
        )
        DELETE FROM comments WHERE comment_id IN (SELECT comment_id FROM subtree);
    `
	cmdTag, err := tx.Exec(ctx, query, commentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comment tree: %w", err)
	}
	removed := cmdTag.RowsAffected()

	if err := adjustBlogCounter(ctx, tx, blogID, "comment_count", -removed); err != nil {
		return 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return removed, nil
}
