package database

import (
	"context"
	"fmt"
	"time"

	"crunchy-cruise/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Retry controls how long startup waits for the database.
type Retry struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetry waits up to roughly half a minute, which covers a postgres
// container still starting alongside the API.
var DefaultRetry = Retry{Attempts: 10, Delay: 3 * time.Second}

// NewPool creates a PostgreSQL connection pool and waits until it answers.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_connections", cfg.MaxConnections).
		Int("min_connections", cfg.MinConnections).
		Msg("creating database connection pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := WaitReady(ctx, pool, DefaultRetry, logger); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info().Msg("database connection pool created successfully")

	return pool, nil
}

// WaitReady pings db until it answers, the attempts run out or ctx ends.
func WaitReady(ctx context.Context, db Pinger, retry Retry, logger zerolog.Logger) error {
	attempts := max(retry.Attempts, 1)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = db.Ping(ctx); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Dur("retry_in", retry.Delay).
			Msg("database not ready, retrying")

		select {
		case <-ctx.Done():
			return fmt.Errorf("failed to ping database: %w", ctx.Err())
		case <-time.After(retry.Delay):
		}
	}

	return fmt.Errorf("failed to ping database after %d attempts: %w", attempts, err)
}
