package db

import (
	"context"
	"fmt"
	"time"

	"tablebook/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// No migration tooling: the service owns exactly one table and creates it at
// startup if absent.
const bookingsSchema = `
CREATE TABLE IF NOT EXISTS bookings (
    id          BIGSERIAL PRIMARY KEY,
    table_name  TEXT    NOT NULL,
    booked_on   DATE    NOT NULL,
    slot_start  INTEGER NOT NULL,
    slot_end    INTEGER NOT NULL,
    name        TEXT    NOT NULL,
    phone       TEXT    NOT NULL,
    req_amount  INTEGER NOT NULL,
    from_who    TEXT    NOT NULL,
    amount_fact INTEGER NOT NULL,
    comment     TEXT    NOT NULL DEFAULT '',
    status      TEXT    NOT NULL DEFAULT 'booked'
);
CREATE INDEX IF NOT EXISTS idx_bookings_table_date ON bookings (table_name, booked_on);
CREATE INDEX IF NOT EXISTS idx_bookings_date ON bookings (booked_on);
`

func Connect(cfg config.DBConfig) (*pgxpool.Pool, func(), error) {
	dsn := cfg.BuildDSN()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Fail fast: an unreachable store means the service must not come up.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}

	cleanup := func() {
		pool.Close()
	}

	return pool, cleanup, nil
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, bookingsSchema); err != nil {
		return fmt.Errorf("failed to ensure bookings schema: %w", err)
	}
	return nil
}
