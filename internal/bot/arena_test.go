package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/freeeve/quiet-conquest/pkg/conquest"
)

func TestRunMatch_HoldVsHoldAdjudicates(t *testing.T) {
	cfg := MatchConfig{
		Strategies: map[conquest.Player]string{
			conquest.PlayerA: "hold",
			conquest.PlayerB: "hold",
		},
		MaxTurns: 10,
		Seed:     5,
		DryRun:   true,
	}
	res, err := RunMatch(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("run match: %v", err)
	}
	if res.Turns != 10 {
		t.Errorf("expected 10 turns, got %d", res.Turns)
	}
	if !res.Adjudicated {
		t.Error("expected adjudication at the turn cap")
	}
	// Two idle symmetric players split the material evenly.
	if res.Outcome != conquest.OutcomeDraw {
		t.Errorf("expected draw, got %q", res.Outcome)
	}
	if res.MatchID == "" {
		t.Error("expected a match id")
	}
	if len(res.Digest) != 64 {
		t.Errorf("expected 64 digest chars, got %d", len(res.Digest))
	}
	for _, p := range conquest.AllPlayers() {
		st, ok := res.Players[p]
		if !ok {
			t.Fatalf("missing standings for %s", p)
		}
		if st.Strategy != "hold" {
			t.Errorf("%s: expected strategy hold, got %q", p, st.Strategy)
		}
		if st.Systems != 1 {
			t.Errorf("%s: expected 1 system, got %d", p, st.Systems)
		}
		if st.OrdersSent != 0 {
			t.Errorf("%s: expected 0 orders sent, got %d", p, st.OrdersSent)
		}
	}
}

func TestRunMatch_SameSeedSameDigest(t *testing.T) {
	cfg := MatchConfig{
		Strategies: map[conquest.Player]string{
			conquest.PlayerA: "medium",
			conquest.PlayerB: "medium",
		},
		MaxTurns: 60,
		Seed:     42,
		DryRun:   true,
	}
	first, err := RunMatch(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := RunMatch(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.Digest != second.Digest {
		t.Errorf("expected matching digests, got %s vs %s", first.Digest, second.Digest)
	}
	if first.Outcome != second.Outcome || first.Turns != second.Turns {
		t.Errorf("expected matching results, got %+v vs %+v", first, second)
	}
}

func TestRunMatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := MatchConfig{Seed: 1, MaxTurns: 10, DryRun: true}
	if _, err := RunMatch(ctx, cfg, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunMatch_DefaultsToEasy(t *testing.T) {
	SeedBotRng(3)
	defer ResetBotRng()

	cfg := MatchConfig{Seed: 9, MaxTurns: 15, DryRun: true}
	res, err := RunMatch(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("run match: %v", err)
	}
	for _, p := range conquest.AllPlayers() {
		if got := res.Players[p].Strategy; got != "easy" {
			t.Errorf("%s: expected easy, got %q", p, got)
		}
	}
}

func TestAdjudicateByMaterial(t *testing.T) {
	base := func() *conquest.World {
		return &conquest.World{
			Systems: []*conquest.System{
				{ID: "A", Owner: conquest.PlayerA, Resource: conquest.HomeResource, ShipsA: 5},
				{ID: "B", Owner: conquest.PlayerB, Resource: conquest.HomeResource, ShipsB: 5},
			},
			Players: map[conquest.Player]*conquest.PlayerState{
				conquest.PlayerA: {ID: conquest.PlayerA, Home: "A"},
				conquest.PlayerB: {ID: conquest.PlayerB, Home: "B"},
			},
		}
	}

	if got := adjudicateByMaterial(base()); got != conquest.OutcomeDraw {
		t.Errorf("symmetric world: expected draw, got %q", got)
	}

	w := base()
	w.Systems = append(w.Systems, &conquest.System{ID: "C", Owner: conquest.PlayerA, Resource: 3, ShipsA: 1})
	if got := adjudicateByMaterial(w); got != conquest.OutcomeFor(conquest.PlayerA) {
		t.Errorf("production lead: expected alpha win, got %q", got)
	}

	w = base()
	w.Systems[1].ShipsB = 9
	if got := adjudicateByMaterial(w); got != conquest.OutcomeFor(conquest.PlayerB) {
		t.Errorf("ship lead: expected beta win, got %q", got)
	}
}
