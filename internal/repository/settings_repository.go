package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// settingsRepository implements SettingsRepository using the single-row
// settings table.
type settingsRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSettingsRepository creates a new PostgreSQL-backed settings repository.
func NewSettingsRepository(pool *pgxpool.Pool, logger zerolog.Logger) SettingsRepository {
	return &settingsRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "settings").Logger(),
	}
}

// OrderingEnabled reads the flag, inserting the default row when missing.
func (r *settingsRepository) OrderingEnabled(ctx context.Context) (bool, error) {
	query := `
		WITH ins AS (
			INSERT INTO settings (id, ordering_enabled)
			VALUES (1, true)
			ON CONFLICT (id) DO NOTHING
			RETURNING ordering_enabled
		)
		SELECT ordering_enabled FROM ins
		UNION ALL
		SELECT ordering_enabled FROM settings WHERE id = 1
		LIMIT 1
	`

	var enabled bool
	if err := r.pool.QueryRow(ctx, query).Scan(&enabled); err != nil {
		r.logger.Error().Err(err).Msg("failed to read ordering flag")
		return false, fmt.Errorf("failed to read ordering flag: %w", err)
	}
	return enabled, nil
}

// SetOrderingEnabled updates the flag.
func (r *settingsRepository) SetOrderingEnabled(ctx context.Context, enabled bool) error {
	query := `
		INSERT INTO settings (id, ordering_enabled, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE
		SET ordering_enabled = EXCLUDED.ordering_enabled, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.pool.Exec(ctx, query, enabled); err != nil {
		r.logger.Error().Err(err).Bool("enabled", enabled).Msg("failed to update ordering flag")
		return fmt.Errorf("failed to update ordering flag: %w", err)
	}

	r.logger.Info().Bool("enabled", enabled).Msg("ordering flag updated")
	return nil
}
