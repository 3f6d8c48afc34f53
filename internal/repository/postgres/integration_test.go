//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/freeeve/quiet-conquest/internal/model"
	"github.com/freeeve/quiet-conquest/internal/testutil"
)

var testDB *sql.DB

func setup(t *testing.T) {
	t.Helper()
	if testDB == nil {
		testDB = testutil.SetupDB(t)
		if err := EnsureSchema(context.Background(), testDB); err != nil {
			t.Fatalf("ensure schema: %v", err)
		}
	}
	testutil.CleanupDB(t, testDB)
}

// recordedMatch is a helper that builds a finished match ready to insert.
func recordedMatch(label string, seed int64) *model.Match {
	now := time.Now().UTC()
	return &model.Match{
		ID:         uuid.NewString(),
		Label:      label,
		Seed:       seed,
		Winner:     "alpha",
		Turns:      42,
		Digest:     "8f4e0c2b6a195d37c4e8b0a1f6d2c59e3b7a84d1f0c6e2a95b38d7c41e0f6a2b",
		FinalState: "42a/7/A0.0.4a0.31.0,R11.9.4a0.6.0/-/aA.AR,bR.R",
		FinishedAt: &now,
		Players: []model.MatchPlayer{
			{Player: "alpha", Strategy: "medium", Systems: 9, Ships: 120, OrdersSent: 80},
			{Player: "beta", Strategy: "easy", Systems: 0, Ships: 0, OrdersSent: 64},
		},
	}
}

func TestMatchCreateAndFind(t *testing.T) {
	setup(t)
	repo := NewMatchRepo(testDB)

	m := recordedMatch("smoke", 7)
	if err := repo.Create(context.Background(), m); err != nil {
		t.Fatalf("create match: %v", err)
	}
	if m.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be populated on insert")
	}

	found, err := repo.FindByID(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("find match: %v", err)
	}
	if found == nil {
		t.Fatal("expected to find match")
	}
	if found.Seed != 7 || found.Winner != "alpha" || found.Turns != 42 {
		t.Fatalf("unexpected match data: seed=%d winner=%s turns=%d", found.Seed, found.Winner, found.Turns)
	}
	if found.Digest != m.Digest {
		t.Fatalf("expected digest %s, got %s", m.Digest, found.Digest)
	}
	if found.FinishedAt == nil {
		t.Fatal("expected finished_at to be set")
	}
	if len(found.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(found.Players))
	}
	if found.Players[0].Player != "alpha" || found.Players[0].Strategy != "medium" {
		t.Fatalf("unexpected first player: %+v", found.Players[0])
	}
	if found.Players[0].MatchID != m.ID {
		t.Fatalf("expected player match_id %s, got %s", m.ID, found.Players[0].MatchID)
	}
}

func TestMatchFindMissing(t *testing.T) {
	setup(t)
	repo := NewMatchRepo(testDB)

	found, err := repo.FindByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatalf("find missing: %v", err)
	}
	if found != nil {
		t.Fatal("expected nil for missing match")
	}
}

func TestMatchDrawStoredAsNull(t *testing.T) {
	setup(t)
	repo := NewMatchRepo(testDB)

	m := recordedMatch("no-winner", 11)
	m.Winner = ""
	if err := repo.Create(context.Background(), m); err != nil {
		t.Fatalf("create match: %v", err)
	}

	found, err := repo.FindByID(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("find match: %v", err)
	}
	if found.Winner != "" {
		t.Fatalf("expected empty winner, got %q", found.Winner)
	}
}

func TestMatchListRecent(t *testing.T) {
	setup(t)
	repo := NewMatchRepo(testDB)

	for i := int64(1); i <= 3; i++ {
		if err := repo.Create(context.Background(), recordedMatch("batch", i)); err != nil {
			t.Fatalf("create match %d: %v", i, err)
		}
	}

	matches, err := repo.ListRecent(context.Background(), 2)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	for _, m := range matches {
		if len(m.Players) != 2 {
			t.Fatalf("expected players on listed match, got %d", len(m.Players))
		}
	}

	all, err := repo.ListRecent(context.Background(), 0)
	if err != nil {
		t.Fatalf("list recent default: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 matches with default limit, got %d", len(all))
	}
}

func TestMatchPlayersCascadeOnDelete(t *testing.T) {
	setup(t)
	repo := NewMatchRepo(testDB)

	m := recordedMatch("cascade", 13)
	if err := repo.Create(context.Background(), m); err != nil {
		t.Fatalf("create match: %v", err)
	}

	if _, err := testDB.Exec(`DELETE FROM matches WHERE id = $1`, m.ID); err != nil {
		t.Fatalf("delete match: %v", err)
	}

	var count int
	if err := testDB.QueryRow(`SELECT COUNT(*) FROM match_players WHERE match_id = $1`, m.ID).Scan(&count); err != nil {
		t.Fatalf("count players: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 players after cascade, got %d", count)
	}
}
