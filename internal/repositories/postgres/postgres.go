// Package postgres implements the persistence collaborator directly against
// a Postgres database, for deployments that skip the REST backend. It
// exposes the same loose record shape as the REST client, so the stores and
// the normalization layer cannot tell the two apart. Ids are assigned here
// with cuid since no server is present to assign them.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"lunchero/internal/normalize"
)

const schema = `
CREATE TABLE IF NOT EXISTS lunches (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL DEFAULT '',
    image      TEXT NOT NULL DEFAULT '',
    price      DOUBLE PRECISION NOT NULL DEFAULT 0,
    tags       JSONB NOT NULL DEFAULT '[]',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
    id         TEXT PRIMARY KEY,
    tower      TEXT NOT NULL DEFAULT '',
    apartment  INTEGER NOT NULL DEFAULT 0,
    customer   TEXT NOT NULL DEFAULT '',
    phone      BIGINT NOT NULL DEFAULT 0,
    pay_method JSONB NOT NULL DEFAULT '{}',
    items      JSONB NOT NULL DEFAULT '[]',
    notes      TEXT NOT NULL DEFAULT '',
    "time"     TEXT NOT NULL DEFAULT '',
    date       TIMESTAMPTZ,
    status     TEXT NOT NULL DEFAULT 'pending',
    total      DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS expenses (
    id          TEXT PRIMARY KEY,
    kind        TEXT NOT NULL DEFAULT 'purchase',
    title       TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    amount      DOUBLE PRECISION NOT NULL DEFAULT 0,
    "time"      TEXT NOT NULL DEFAULT '',
    date        TIMESTAMPTZ,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Connect opens a pool and makes sure the tables exist.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error creating schema: %w", err)
	}
	return pool, nil
}

// jsonColumn decodes a JSONB value into the loose shape records carry.
func jsonColumn(raw []byte) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// jsonBytes encodes a loose payload value for a JSONB column.
func jsonBytes(v any, fallback string) []byte {
	raw, err := json.Marshal(v)
	if err != nil || v == nil {
		return []byte(fallback)
	}
	return raw
}

// dateValue converts a loose payload date into something a TIMESTAMPTZ
// column accepts; unparseable input becomes NULL.
func dateValue(v any) *time.Time {
	return normalize.ParseDate(v)
}
