package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"fittrack/api/internal/config"
	"fittrack/api/internal/repository"
	"fittrack/api/internal/repository/memstore"
	"fittrack/api/internal/repository/mongostore"
)

// Open connects the backend named by database.driver and returns its
// repositories. The caller owns Store.Backend and must Close it.
func Open(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) (repository.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		var pool *pgxpool.Pool
		err := connectWithRetry(ctx, cfg.Database.ConnectRetry, log, cfg.Database.Driver, func() error {
			var err error
			pool, err = NewPostgresPool(ctx, cfg.Postgres)
			return err
		})
		if err != nil {
			return repository.Store{}, fmt.Errorf("postgres: %w", err)
		}
		if err := Migrate(ctx, pool); err != nil {
			pool.Close()
			return repository.Store{}, err
		}
		log.Info().Str("driver", cfg.Database.Driver).Msg("database ready")
		return repository.NewPostgresStore(pool), nil

	case config.DriverMongo:
		var store *mongostore.Store
		err := connectWithRetry(ctx, cfg.Database.ConnectRetry, log, cfg.Database.Driver, func() error {
			var err error
			store, err = mongostore.NewStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
			return err
		})
		if err != nil {
			return repository.Store{}, err
		}
		log.Info().Str("driver", cfg.Database.Driver).Str("database", cfg.Mongo.Database).Msg("database ready")
		return store.Repositories(), nil

	case config.DriverMemory:
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return memstore.New(), nil
	}
	return repository.Store{}, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
}
