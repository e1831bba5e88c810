package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates every table the service uses. It is idempotent.
const Schema = `
	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		price VARCHAR(50) NOT NULL,
		image VARCHAR(500) NOT NULL DEFAULT '',
		available BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		customer_name VARCHAR(255) NOT NULL,
		customer_email VARCHAR(255),
		customer_phone VARCHAR(50) NOT NULL,
		items JSONB NOT NULL,
		subtotal BIGINT NOT NULL DEFAULT 0,
		delivery_charge BIGINT NOT NULL DEFAULT 0,
		total_amount BIGINT NOT NULL,
		delivery_info JSONB,
		status VARCHAR(50) NOT NULL DEFAULT 'pending',
		payment_reference VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_payment_reference
		ON orders(payment_reference) WHERE payment_reference IS NOT NULL;

	CREATE TABLE IF NOT EXISTS order_tracking (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		status VARCHAR(50) NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		location VARCHAR(255) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_order_tracking_order_id ON order_tracking(order_id, created_at);

	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		ordering_enabled BOOLEAN NOT NULL DEFAULT true,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS cart_sessions (
		session_key VARCHAR(64) PRIMARY KEY,
		data JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

// Migrate applies Schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
