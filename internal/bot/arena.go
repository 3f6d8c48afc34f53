package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/freeeve/quiet-conquest/internal/logger"
	"github.com/freeeve/quiet-conquest/internal/model"
	"github.com/freeeve/quiet-conquest/internal/repository"
	"github.com/freeeve/quiet-conquest/pkg/conquest"
)

// MatchConfig configures a single bot-vs-bot match.
type MatchConfig struct {
	Label      string
	Strategies map[conquest.Player]string // player -> difficulty level
	MaxTurns   int                        // cap before material adjudication
	Seed       int64
	DryRun     bool // skip DB writes
}

// PlayerStanding is one player's final line in a match result.
type PlayerStanding struct {
	Strategy   string `json:"strategy"`
	Systems    int    `json:"systems"`
	Ships      int    `json:"ships"`
	OrdersSent int    `json:"orders_sent"`
}

// MatchResult describes the outcome of a completed match.
type MatchResult struct {
	MatchID     string                             `json:"match_id"`
	Seed        int64                              `json:"seed"`
	Outcome     conquest.Outcome                   `json:"outcome"`
	Adjudicated bool                               `json:"adjudicated,omitempty"` // decided by material at the turn cap, not by conquest
	Turns       int                                `json:"turns"`
	Digest      string                             `json:"digest"`
	Players     map[conquest.Player]PlayerStanding `json:"players"`
}

// RunMatch plays one full game between two strategies, saving the result to
// Postgres. Pass a nil repository or set DryRun to skip persistence.
func RunMatch(ctx context.Context, cfg MatchConfig, matches repository.MatchRepository) (*MatchResult, error) {
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = 200
	}

	strategies := make(map[conquest.Player]Strategy, 2)
	for _, p := range conquest.AllPlayers() {
		diff, ok := cfg.Strategies[p]
		if !ok {
			diff = "easy"
		}
		strategies[p] = StrategyForDifficulty(diff)
	}

	matchID := uuid.NewString()
	lg := logger.ForMatch(matchID)

	w, err := conquest.GenerateMap(cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("generate map: %w", err)
	}
	w.WithLogger(lg)

	ordersSent := make(map[conquest.Player]int, 2)
	for w.Turn < cfg.MaxTurns && !w.Outcome.Decided() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		// Collect orders in canonical player order so a seeded bot RNG
		// replays identically across runs.
		orders := make(map[conquest.Player][]conquest.Order, 2)
		for _, p := range conquest.AllPlayers() {
			orders[p] = strategies[p].Orders(w.View(p), p)
		}

		res, err := w.ExecuteTurn(orders)
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", w.Turn, err)
		}
		for _, p := range conquest.AllPlayers() {
			ordersSent[p] += len(orders[p])
			for _, oe := range res.OrderErrors[p] {
				lg.Warn().Str("player", string(p)).Str("from", oe.Order.From).Msg(oe.Message)
			}
		}
	}

	result := &MatchResult{
		MatchID: matchID,
		Seed:    cfg.Seed,
		Outcome: w.Outcome,
		Turns:   w.Turn,
		Digest:  conquest.DigestString(w),
		Players: make(map[conquest.Player]PlayerStanding, 2),
	}
	if !result.Outcome.Decided() {
		result.Outcome = adjudicateByMaterial(w)
		result.Adjudicated = true
	}
	for _, p := range conquest.AllPlayers() {
		result.Players[p] = PlayerStanding{
			Strategy:   strategies[p].Name(),
			Systems:    len(w.SystemsOf(p)),
			Ships:      w.TotalShips(p),
			OrdersSent: ordersSent[p],
		}
	}

	lg.Info().
		Int64("seed", cfg.Seed).
		Str("outcome", string(result.Outcome)).
		Bool("adjudicated", result.Adjudicated).
		Int("turns", result.Turns).
		Str("digest", result.Digest).
		Msg("match finished")

	if !cfg.DryRun && matches != nil {
		if err := saveMatch(ctx, matches, cfg, result, w); err != nil {
			return nil, fmt.Errorf("save match: %w", err)
		}
	}
	return result, nil
}

// adjudicateByMaterial decides a game that hit the turn cap: higher total
// production wins, then higher total ships, else a draw.
func adjudicateByMaterial(w *conquest.World) conquest.Outcome {
	if pa, pb := productionOf(w, conquest.PlayerA), productionOf(w, conquest.PlayerB); pa != pb {
		if pa > pb {
			return conquest.OutcomeFor(conquest.PlayerA)
		}
		return conquest.OutcomeFor(conquest.PlayerB)
	}
	if sa, sb := w.TotalShips(conquest.PlayerA), w.TotalShips(conquest.PlayerB); sa != sb {
		if sa > sb {
			return conquest.OutcomeFor(conquest.PlayerA)
		}
		return conquest.OutcomeFor(conquest.PlayerB)
	}
	return conquest.OutcomeDraw
}

// productionOf totals p's per-turn ship yield across controlled systems.
func productionOf(w *conquest.World, p conquest.Player) int {
	total := 0
	for _, s := range w.SystemsOf(p) {
		if w.IsHome(s.ID) {
			total += conquest.HomeProduction
		} else {
			total += s.Resource
		}
	}
	return total
}

// saveMatch records the finished match and per-player standings.
func saveMatch(ctx context.Context, matches repository.MatchRepository, cfg MatchConfig, res *MatchResult, w *conquest.World) error {
	now := time.Now().UTC()
	m := &model.Match{
		ID:         res.MatchID,
		Label:      cfg.Label,
		Seed:       res.Seed,
		Winner:     string(res.Outcome),
		Turns:      res.Turns,
		Digest:     res.Digest,
		FinalState: conquest.EncodeCFEN(w),
		FinishedAt: &now,
	}
	for _, p := range conquest.AllPlayers() {
		st := res.Players[p]
		m.Players = append(m.Players, model.MatchPlayer{
			MatchID:    res.MatchID,
			Player:     string(p),
			Strategy:   st.Strategy,
			Systems:    st.Systems,
			Ships:      st.Ships,
			OrdersSent: st.OrdersSent,
		})
	}
	return matches.Create(ctx, m)
}
