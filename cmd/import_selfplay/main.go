// Command import_selfplay reads self-play match records as JSONL and imports
// them into the Postgres database so externally generated matches are
// reviewable alongside arena runs.
//
// Each input line is one finished match: the final position as CFEN plus the
// per-player standings. Records are validated against the engine before they
// are stored; a line whose position does not decode, or whose digest does not
// match the position it claims to describe, is skipped.
//
// Usage:
//
//	go run ./cmd/import_selfplay/ --input matches.jsonl --db postgres://...
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/freeeve/quiet-conquest/internal/model"
	"github.com/freeeve/quiet-conquest/internal/repository/postgres"
	"github.com/freeeve/quiet-conquest/pkg/conquest"
)

// jsonMatchRecord is one line of selfplay output: a finished match with its
// final position and standings.
type jsonMatchRecord struct {
	MatchID    string            `json:"match_id"` // optional; generated when empty
	Seed       int64             `json:"seed"`
	Winner     string            `json:"winner"` // alpha, beta, draw, or empty
	Turns      int               `json:"turns"`
	Digest     string            `json:"digest"`      // optional; recomputed and checked when set
	FinalState string            `json:"final_state"` // CFEN
	Players    []jsonPlayerEntry `json:"players"`
}

// jsonPlayerEntry is one side's final standing.
type jsonPlayerEntry struct {
	Player     string `json:"player"`
	Strategy   string `json:"strategy"`
	Systems    int    `json:"systems"`
	Ships      int    `json:"ships"`
	OrdersSent int    `json:"orders_sent"`
}

func main() {
	inputFile := flag.String("input", "", "Path to JSONL file")
	dbURL := flag.String("db", os.Getenv("DATABASE_URL"), "Postgres connection URL")
	namePrefix := flag.String("name-prefix", "selfplay", "Match label prefix")
	flag.Parse()

	if *inputFile == "" {
		log.Fatal("--input is required")
	}
	if *dbURL == "" {
		log.Fatal("--db or DATABASE_URL is required")
	}

	db, err := postgres.Connect(*dbURL)
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	matchRepo := postgres.NewMatchRepo(db)

	f, err := os.Open(*inputFile)
	if err != nil {
		log.Fatalf("open input: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	imported, skipped := 0, 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		var rec jsonMatchRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			log.Printf("WARN: skip line %d (bad JSON): %v", lineNo, err)
			skipped++
			continue
		}

		m, err := convertRecord(&rec, fmt.Sprintf("%s-%03d", *namePrefix, lineNo))
		if err != nil {
			log.Printf("ERROR: line %d: %v", lineNo, err)
			skipped++
			continue
		}

		if err := matchRepo.Create(ctx, m); err != nil {
			log.Printf("ERROR: line %d: insert match %s: %v", lineNo, m.ID, err)
			skipped++
			continue
		}

		imported++
		log.Printf("imported line %d -> %s (id=%s, %d turns)", lineNo, m.Label, m.ID, m.Turns)
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("read input: %v", err)
	}

	log.Printf("done: imported %d matches, skipped %d", imported, skipped)
}

// convertRecord validates one selfplay record against the engine and shapes
// it for storage. The stored final state and digest are the canonical
// re-encoding of the decoded position, so equivalent inputs import
// identically however they were formatted.
func convertRecord(rec *jsonMatchRecord, label string) (*model.Match, error) {
	w, err := conquest.DecodeCFEN(rec.FinalState)
	if err != nil {
		return nil, fmt.Errorf("decode final state: %w", err)
	}
	canonical := conquest.EncodeCFEN(w)
	digest := conquest.DigestString(w)
	if rec.Digest != "" && rec.Digest != digest {
		return nil, fmt.Errorf("digest mismatch: recorded %s, position hashes to %s", rec.Digest, digest)
	}

	switch rec.Winner {
	case "", "draw", string(conquest.PlayerA), string(conquest.PlayerB):
	default:
		return nil, fmt.Errorf("unknown winner %q", rec.Winner)
	}
	if rec.Turns < 0 {
		return nil, fmt.Errorf("negative turn count %d", rec.Turns)
	}

	id := rec.MatchID
	if id == "" {
		id = uuid.NewString()
	} else if _, err := uuid.Parse(id); err != nil {
		// The matches table keys on a UUID column; reject here so the
		// failure names the line instead of surfacing as a driver error.
		return nil, fmt.Errorf("match id %q is not a UUID", id)
	}

	now := time.Now().UTC()
	m := &model.Match{
		ID:         id,
		Label:      label,
		Seed:       rec.Seed,
		Winner:     rec.Winner,
		Turns:      rec.Turns,
		Digest:     digest,
		FinalState: canonical,
		FinishedAt: &now,
	}
	for _, p := range rec.Players {
		if p.Player != string(conquest.PlayerA) && p.Player != string(conquest.PlayerB) {
			return nil, fmt.Errorf("unknown player %q", p.Player)
		}
		m.Players = append(m.Players, model.MatchPlayer{
			Player:     p.Player,
			Strategy:   p.Strategy,
			Systems:    p.Systems,
			Ships:      p.Ships,
			OrdersSent: p.OrdersSent,
		})
	}
	return m, nil
}
