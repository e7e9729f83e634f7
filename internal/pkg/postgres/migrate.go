package postgres

import (
	"context"
	"fmt"

	"dispatch/migrations"
	"dispatch/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate накатывает встроенные миграции через тот же пул.
func Migrate(ctx context.Context, log logger.Logger, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, res := range results {
		log.Info("migration applied",
			logger.NewField("version", res.Source.Version),
			logger.NewField("duration", res.Duration.String()),
		)
	}

	return nil
}
