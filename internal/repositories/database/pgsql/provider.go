package pgsql

import (
	portsrepo "github.com/inkwell-labs/blog_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the relational adapters over a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(pool)
	catRepo := newPgxCategoryRepository(pool)
	tagRepo := newPgxTagRepository(pool)

	return &portsrepo.RepositoryProvider{
		UserRepo:     userRepo,
		BlogRepo:     newPgxBlogRepository(pool, userRepo, catRepo, tagRepo),
		CategoryRepo: catRepo,
		TagRepo:      tagRepo,
		CommentRepo:  newPgxCommentRepository(pool),
		LikeRepo:     newPgxLikeRepository(pool),
	}
}
