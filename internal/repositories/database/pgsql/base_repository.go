package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inkwell-labs/blog_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolationCode is the PostgreSQL SQLSTATE for unique constraint
// violations; these translate to apperrors.ErrDuplicate.
const uniqueViolationCode = "23505"

// BaseRepository provides common functionality for all pgsql repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction; a no-op after Commit.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// pgxExecutor is satisfied by both *pgxpool.Pool and pgx.Tx, so statements
// can run standalone or join an open transaction.
type pgxExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// adjustBlogCounter applies the delta server-side; GREATEST keeps the
// counters non-negative even under racing decrements.
func adjustBlogCounter(ctx context.Context, db pgxExecutor, blogID string, column string, delta int64) error {
	query := fmt.Sprintf(`UPDATE blogs SET %s = GREATEST(%s + $1, 0) WHERE blog_id = $2;`, column, column)
	cmdTag, err := db.Exec(ctx, query, delta, blogID)
	if err != nil {
		return fmt.Errorf("failed to adjust %s: %w", column, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("blog %s: %w", blogID, apperrors.ErrNotFound)
	}
	return nil
}
