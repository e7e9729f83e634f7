package integration_test

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/postgres"
	"dispatch/pkg/logger/zap_adapter"
	"dispatch/pkg/querier"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

var (
	querierInstance *querier.Querier
	poolInstance    *pgxpool.Pool
	querierOnce     sync.Once
)

func GetQuerier() *querier.Querier {
	querierOnce.Do(func() {
		// godotenv.Load(.env.test) не вызываем так как Makefile подгружает их
		cfg := &config.Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		}

		ctx := context.Background()

		zapLogger := zap_adapter.NewNop()

		connPool, err := postgres.NewConnPool(ctx, zapLogger, cfg)
		if err != nil {
			log.Fatalf("failed to connect to test database: %v", err)
		}

		// схема та же, что поднимает сервис при AUTO_MIGRATE
		if err := postgres.Migrate(ctx, zapLogger, connPool); err != nil {
			log.Fatalf("failed to migrate test database: %v", err)
		}

		poolInstance = connPool
		querierInstance = querier.New(connPool, pgxv5.DefaultCtxGetter)
	})

	return querierInstance
}

// GetPool - тот же пул, для тестов, которым нужно отдельное соединение (LISTEN).
func GetPool() *pgxpool.Pool {
	GetQuerier()
	return poolInstance
}

func SetupDB(t *testing.T, setupSql string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, setupSql)

	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE users, deliveries, customers, couriers RESTART IDENTITY CASCADE;
	`)
	require.NoError(t, err)
}
