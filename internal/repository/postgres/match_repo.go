package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/freeeve/quiet-conquest/internal/model"
)

// MatchRepo handles match and match_player database operations.
type MatchRepo struct {
	db *sql.DB
}

// NewMatchRepo creates a MatchRepo.
func NewMatchRepo(db *sql.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// Create inserts a match and its per-player rows in one transaction.
func (r *MatchRepo) Create(ctx context.Context, m *model.Match) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO matches (id, label, seed, winner, turns, digest, final_state, finished_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)
		 RETURNING created_at`,
		m.ID, m.Label, m.Seed, m.Winner, m.Turns, m.Digest, m.FinalState, m.FinishedAt,
	).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create match: %w", err)
	}

	for _, p := range m.Players {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO match_players (match_id, player, strategy, systems, ships, orders_sent)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			m.ID, p.Player, p.Strategy, p.Systems, p.Ships, p.OrdersSent,
		)
		if err != nil {
			return fmt.Errorf("create match player: %w", err)
		}
	}

	return tx.Commit()
}

// FindByID returns a match by ID with its players, or nil when absent.
func (r *MatchRepo) FindByID(ctx context.Context, id string) (*model.Match, error) {
	var m model.Match
	var winner sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, label, seed, winner, turns, digest, final_state, created_at, finished_at
		 FROM matches WHERE id = $1`, id,
	).Scan(&m.ID, &m.Label, &m.Seed, &winner, &m.Turns, &m.Digest, &m.FinalState, &m.CreatedAt, &m.FinishedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find match: %w", err)
	}
	m.Winner = winner.String

	players, err := r.listPlayers(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Players = players
	return &m, nil
}

// ListRecent returns the most recently recorded matches with their players.
func (r *MatchRepo) ListRecent(ctx context.Context, limit int) ([]model.Match, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, label, seed, winner, turns, digest, final_state, created_at, finished_at
		 FROM matches ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent matches: %w", err)
	}
	defer rows.Close()

	var matches []model.Match
	for rows.Next() {
		var m model.Match
		var winner sql.NullString
		if err := rows.Scan(&m.ID, &m.Label, &m.Seed, &winner, &m.Turns, &m.Digest, &m.FinalState, &m.CreatedAt, &m.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.Winner = winner.String
		players, err := r.listPlayers(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		m.Players = players
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *MatchRepo) listPlayers(ctx context.Context, matchID string) ([]model.MatchPlayer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT match_id, player, strategy, systems, ships, orders_sent
		 FROM match_players WHERE match_id = $1 ORDER BY player`, matchID)
	if err != nil {
		return nil, fmt.Errorf("list match players: %w", err)
	}
	defer rows.Close()

	var players []model.MatchPlayer
	for rows.Next() {
		var p model.MatchPlayer
		if err := rows.Scan(&p.MatchID, &p.Player, &p.Strategy, &p.Systems, &p.Ships, &p.OrdersSent); err != nil {
			return nil, fmt.Errorf("scan match player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
