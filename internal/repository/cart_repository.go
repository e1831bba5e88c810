package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"crunchy-cruise/internal/cart"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartStore implements cart.Store with one JSONB row per session.
type cartStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartStore creates a PostgreSQL-backed cart session store.
func NewCartStore(pool *pgxpool.Pool, logger zerolog.Logger) cart.Store {
	return &cartStore{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// Load returns nil when the session has never been saved.
func (r *cartStore) Load(ctx context.Context, key string) (*cart.Snapshot, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM cart_sessions WHERE session_key = $1`, key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("session", key).Msg("failed to load cart session")
		return nil, fmt.Errorf("failed to load cart session: %w", err)
	}

	var snap cart.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// A corrupt record is treated as an empty cart.
		r.logger.Warn().Err(err).Str("session", key).Msg("discarding unreadable cart session")
		return nil, nil
	}
	return &snap, nil
}

// Save upserts the snapshot; the last writer wins.
func (r *cartStore) Save(ctx context.Context, key string, snap cart.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode cart session: %w", err)
	}

	query := `
		INSERT INTO cart_sessions (session_key, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_key) DO UPDATE
		SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.pool.Exec(ctx, query, key, data, snap.UpdatedAt); err != nil {
		r.logger.Error().Err(err).Str("session", key).Msg("failed to save cart session")
		return fmt.Errorf("failed to save cart session: %w", err)
	}
	return nil
}
