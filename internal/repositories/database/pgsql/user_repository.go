package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/inkwell-labs/blog_backend/internal/apperrors"
	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portsrepo "github.com/inkwell-labs/blog_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `
	user_id, username, email, password_hash, first_name, last_name, bio, avatar,
	role, auth_provider, is_email_verified, email_verification_token,
	password_reset_token, password_reset_expires, refresh_token_hash,
	refresh_token_expiry, is_active, last_login_at, created_at, updated_at`

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var passwordHash, bio, avatar, verifyToken, resetToken, refreshHash sql.NullString
	var firstName, lastName sql.NullString
	var resetExpires, refreshExpiry, lastLogin sql.NullTime

	err := row.Scan(
		&u.UserID, &u.Username, &u.Email, &passwordHash, &firstName, &lastName,
		&bio, &avatar, &u.Role, &u.AuthProvider, &u.IsEmailVerified,
		&verifyToken, &resetToken, &resetExpires, &refreshHash, &refreshExpiry,
		&u.IsActive, &lastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.PasswordHash = passwordHash.String
	u.FirstName = firstName.String
	u.LastName = lastName.String
	u.Bio = bio.String
	u.Avatar = avatar.String
	u.RefreshTokenHash = refreshHash.String
	if verifyToken.Valid {
		u.EmailVerificationToken = &verifyToken.String
	}
	if resetToken.Valid {
		u.PasswordResetToken = &resetToken.String
	}
	if resetExpires.Valid {
		u.PasswordResetExpires = &resetExpires.Time
	}
	if refreshExpiry.Valid {
		u.RefreshTokenExpiry = &refreshExpiry.Time
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return &u, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''),
                $9, $10, $11, $12, $13, $14, NULLIF($15, ''), $16, $17, $18, $19, $20);
    `
	_, err := r.Pool.Exec(ctx, query,
		user.UserID, user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.Bio, user.Avatar,
		user.Role, user.AuthProvider, user.IsEmailVerified,
		user.EmailVerificationToken, user.PasswordResetToken, user.PasswordResetExpires,
		user.RefreshTokenHash, user.RefreshTokenExpiry, user.IsActive, user.LastLoginAt,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username or email taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) findUserWhere(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + `;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUserWhere(ctx, "user_id = $1", userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUserWhere(ctx, "LOWER(email) = LOWER($1)", email)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUserWhere(ctx, "username = $1", username)
}

func (r *PgxUserRepository) FindUserByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findUserWhere(ctx, "email_verification_token = $1", token)
}

func (r *PgxUserRepository) FindUserByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findUserWhere(ctx, "password_reset_token = $1", token)
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
        UPDATE users SET
            username = $1, email = $2, password_hash = NULLIF($3, ''),
            first_name = NULLIF($4, ''), last_name = NULLIF($5, ''),
            bio = NULLIF($6, ''), avatar = NULLIF($7, ''), role = $8,
            is_email_verified = $9, email_verification_token = $10,
            password_reset_token = $11, password_reset_expires = $12,
            refresh_token_hash = NULLIF($13, ''), refresh_token_expiry = $14,
            is_active = $15, last_login_at = $16, updated_at = $17
        WHERE user_id = $18;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.Bio, user.Avatar, user.Role,
		user.IsEmailVerified, user.EmailVerificationToken,
		user.PasswordResetToken, user.PasswordResetExpires,
		user.RefreshTokenHash, user.RefreshTokenExpiry,
		user.IsActive, user.LastLoginAt, user.UpdatedAt,
		user.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username or email taken: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	query := `
        UPDATE users SET refresh_token_hash = $1, refresh_token_expiry = $2, updated_at = now()
        WHERE user_id = $3;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, refreshTokenHash, expiry, userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `
        UPDATE users SET refresh_token_hash = NULL, refresh_token_expiry = NULL, updated_at = now()
        WHERE user_id = $1;
    `
	if _, err := r.Pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}
