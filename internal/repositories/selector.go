// Package repositories selects the storage backend at startup.
package repositories

import (
	"context"
	"fmt"

	portsrepo "github.com/inkwell-labs/blog_backend/internal/core/ports/repositories"
	"github.com/inkwell-labs/blog_backend/internal/platform/config"
	"github.com/inkwell-labs/blog_backend/internal/repositories/database/mongodb"
	"github.com/inkwell-labs/blog_backend/internal/repositories/database/pgsql"
	"github.com/inkwell-labs/blog_backend/pkg/database"
)

// NewRepositoryProvider builds the repository set for the configured backend.
// The returned close function releases the underlying connections; callers
// defer it for the process lifetime. An unknown DB_TYPE is a startup error.
func NewRepositoryProvider(ctx context.Context, cfg *config.Config) (*portsrepo.RepositoryProvider, func(), error) {
	switch cfg.DatabaseKind {
	case config.DatabasePostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return pgsql.NewRepositoryProvider(pool), pool.Close, nil

	case config.DatabaseMongo:
		client, err := database.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }

		provider, err := mongodb.NewRepositoryProvider(ctx, client.Database(cfg.MongoDBName))
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		return provider, closeFn, nil
	}

	return nil, nil, fmt.Errorf("unsupported DB_TYPE %q (expected postgres or mongodb)", cfg.DatabaseKind)
}
