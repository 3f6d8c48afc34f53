package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Connect opens a connection pool to the PostgreSQL database.
func Connect(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS matches (
    id          UUID PRIMARY KEY,
    label       TEXT NOT NULL DEFAULT '',
    seed        BIGINT NOT NULL,
    winner      TEXT,
    turns       INT NOT NULL,
    digest      TEXT NOT NULL,
    final_state TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    finished_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS match_players (
    match_id    UUID NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
    player      TEXT NOT NULL,
    strategy    TEXT NOT NULL,
    systems     INT NOT NULL DEFAULT 0,
    ships       INT NOT NULL DEFAULT 0,
    orders_sent INT NOT NULL DEFAULT 0,
    PRIMARY KEY (match_id, player)
);

CREATE INDEX IF NOT EXISTS idx_matches_created_at ON matches (created_at DESC);
`

// EnsureSchema creates the match tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
