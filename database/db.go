package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// InitDB opens the process-wide store handle. It is called once at startup and
// the result is injected into every adapter. When no URL is configured, or the
// connection fails, the returned client is Disconnected and every adapter
// falls back to its degraded behaviour.
func InitDB(databaseURL, dbName, migrationsPath string, logger *zap.Logger) TableClient {
	if databaseURL == "" {
		logger.Warn("no database configured, running without a data store")
		return Disconnected{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := Connect(ctx, databaseURL, dbName)
	if err != nil {
		logger.Error("failed to initialize data store", zap.Error(err))
		return Disconnected{}
	}

	if pg, ok := client.(*PostgresClient); ok && migrationsPath != "" {
		if err := RunMigrations(pg.DB(), migrationsPath); err != nil {
			logger.Error("failed to run migrations", zap.Error(err))
		}
	}

	logger.Info("connected to data store", zap.String("backend", fmt.Sprintf("%T", client)))
	return client
}

// Connect picks the backend from the URL scheme.
func Connect(ctx context.Context, databaseURL, dbName string) (TableClient, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	switch u.Scheme {
	case "postgres", "postgresql":
		return OpenPostgres(ctx, databaseURL)
	case "mongodb", "mongodb+srv":
		return OpenMongo(ctx, databaseURL, dbName)
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}
