//go:build integration

package bot

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/freeeve/quiet-conquest/pkg/conquest"
)

// benchNumMatches returns BENCH_MATCHES env var as int, or the provided default.
func benchNumMatches(defaultN int) int {
	if s := os.Getenv("BENCH_MATCHES"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return defaultN
}

// benchVerbose returns true when BENCH_VERBOSE=1, enabling per-match logging.
func benchVerbose() bool {
	return os.Getenv("BENCH_VERBOSE") == "1"
}

// StrengthResult holds aggregate metrics from a series of arena matches where
// alpha plays the strategy under test.
type StrengthResult struct {
	Matchup      string
	NumMatches   int
	Wins         int // alpha victories
	Draws        int
	Losses       int
	Adjudicated  int
	TurnCounts   []int
	SystemCounts []int // alpha's final system counts
	Durations    []time.Duration
}

// WinRate returns alpha's win rate as a percentage.
func (r *StrengthResult) WinRate() float64 {
	return float64(r.Wins) / float64(r.NumMatches) * 100
}

// AvgTurns returns the average match length in turns.
func (r *StrengthResult) AvgTurns() float64 {
	if len(r.TurnCounts) == 0 {
		return 0
	}
	sum := 0
	for _, n := range r.TurnCounts {
		sum += n
	}
	return float64(sum) / float64(len(r.TurnCounts))
}

// AvgSystems returns alpha's average final system count.
func (r *StrengthResult) AvgSystems() float64 {
	if len(r.SystemCounts) == 0 {
		return 0
	}
	sum := 0
	for _, n := range r.SystemCounts {
		sum += n
	}
	return float64(sum) / float64(len(r.SystemCounts))
}

// MedianDuration returns the median wall-clock time per match.
func (r *StrengthResult) MedianDuration() time.Duration {
	if len(r.Durations) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(r.Durations))
	copy(sorted, r.Durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[len(sorted)/2]
}

// runStrengthSuite plays numMatches games of alphaDiff against betaDiff over
// consecutive map seeds. The bot RNG is seeded once so a suite replays
// identically.
func runStrengthSuite(t *testing.T, numMatches int, alphaDiff, betaDiff string, maxTurns int) *StrengthResult {
	t.Helper()

	SeedBotRng(1)
	defer ResetBotRng()

	result := &StrengthResult{
		Matchup:    fmt.Sprintf("%s-vs-%s", alphaDiff, betaDiff),
		NumMatches: numMatches,
	}

	ctx := context.Background()
	for i := range numMatches {
		cfg := MatchConfig{
			Label: result.Matchup,
			Strategies: map[conquest.Player]string{
				conquest.PlayerA: alphaDiff,
				conquest.PlayerB: betaDiff,
			},
			MaxTurns: maxTurns,
			Seed:     int64(i + 1),
			DryRun:   true,
		}

		start := time.Now()
		res, err := RunMatch(ctx, cfg, nil)
		elapsed := time.Since(start)
		if err != nil {
			t.Fatalf("match %d failed: %v", i+1, err)
		}

		result.Durations = append(result.Durations, elapsed)
		result.TurnCounts = append(result.TurnCounts, res.Turns)
		result.SystemCounts = append(result.SystemCounts, res.Players[conquest.PlayerA].Systems)
		if res.Adjudicated {
			result.Adjudicated++
		}

		switch res.Outcome.Victor() {
		case conquest.PlayerA:
			result.Wins++
		case conquest.PlayerB:
			result.Losses++
		default:
			result.Draws++
		}

		if benchVerbose() {
			t.Logf("Match %d/%d: outcome=%q turns=%d alpha_systems=%d elapsed=%s",
				i+1, numMatches, res.Outcome, res.Turns, res.Players[conquest.PlayerA].Systems, elapsed.Round(time.Millisecond))
		}
	}

	return result
}

// logStrengthResults logs a results summary.
func logStrengthResults(t *testing.T, r *StrengthResult) {
	t.Helper()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n=== STRENGTH: %s (%d matches) ===\n", r.Matchup, r.NumMatches))
	sb.WriteString(fmt.Sprintf("Win rate:     %d/%d (%.0f%%)\n", r.Wins, r.NumMatches, r.WinRate()))
	sb.WriteString(fmt.Sprintf("Draws:        %d\n", r.Draws))
	sb.WriteString(fmt.Sprintf("Losses:       %d\n", r.Losses))
	sb.WriteString(fmt.Sprintf("Adjudicated:  %d/%d\n", r.Adjudicated, r.NumMatches))
	sb.WriteString(fmt.Sprintf("Avg Systems:  %.1f\n", r.AvgSystems()))
	sb.WriteString(fmt.Sprintf("Avg Turns:    %.1f\n", r.AvgTurns()))
	sb.WriteString(fmt.Sprintf("Median Time:  %s\n", r.MedianDuration().Round(time.Millisecond)))
	t.Log(sb.String())
}

// TestStrength_MediumVsEasy measures the deterministic expander against the
// random baseline.
func TestStrength_MediumVsEasy(t *testing.T) {
	r := runStrengthSuite(t, benchNumMatches(20), "medium", "easy", 200)
	logStrengthResults(t, r)
	if r.WinRate() < 50 {
		t.Logf("WARNING: Win rate %.0f%% below 50%% target vs easy bots", r.WinRate())
	}
}

// TestStrength_HardVsEasy measures the tactical bot against the random baseline.
func TestStrength_HardVsEasy(t *testing.T) {
	r := runStrengthSuite(t, benchNumMatches(20), "hard", "easy", 200)
	logStrengthResults(t, r)
	if r.WinRate() < 70 {
		t.Logf("WARNING: Win rate %.0f%% below 70%% target vs easy bots", r.WinRate())
	}
}

// TestStrength_HardVsMedium measures the tactical bot against the expander.
func TestStrength_HardVsMedium(t *testing.T) {
	r := runStrengthSuite(t, benchNumMatches(20), "hard", "medium", 200)
	logStrengthResults(t, r)
	if r.WinRate() < 40 {
		t.Logf("WARNING: Win rate %.0f%% below 40%% target vs medium bots", r.WinRate())
	}
}
