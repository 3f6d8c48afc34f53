package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/quiet-conquest/internal/bot"
	"github.com/freeeve/quiet-conquest/internal/config"
	"github.com/freeeve/quiet-conquest/internal/logger"
	"github.com/freeeve/quiet-conquest/internal/repository"
	"github.com/freeeve/quiet-conquest/internal/repository/postgres"
	"github.com/freeeve/quiet-conquest/pkg/conquest"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Config load failed")
	}

	var (
		alphaDiff  string
		betaDiff   string
		numMatches int
		workers    int
		maxTurns   int
		seed       int64
		dbURL      string
		modelPath  string
		label      string
		dryRun     bool
		jsonOut    bool
	)

	flag.StringVar(&alphaDiff, "a", "hard", "Alpha strategy (hold, easy, medium, hard, neural)")
	flag.StringVar(&betaDiff, "b", "hard", "Beta strategy")
	flag.IntVar(&numMatches, "n", 1, "Number of matches to run")
	flag.IntVar(&workers, "workers", cfg.Workers, "Concurrency (parallel matches)")
	flag.IntVar(&maxTurns, "max-turns", cfg.MaxTurns, "Turn cap before material adjudication")
	flag.Int64Var(&seed, "seed", 0, "Base seed (0 = random)")
	flag.StringVar(&dbURL, "db", "", "Database URL (or use DATABASE_URL env)")
	flag.StringVar(&modelPath, "model", cfg.GonnxModelPath, "Directory with policy.onnx and value.onnx")
	flag.StringVar(&label, "label", "", "Label stored with each match")
	flag.BoolVar(&dryRun, "dry-run", false, "Skip database writes")
	flag.BoolVar(&jsonOut, "json", false, "Output results as JSON")
	flag.Parse()

	bot.GonnxModelPath = modelPath

	if label == "" {
		label = fmt.Sprintf("selfplay: %s-vs-%s", alphaDiff, betaDiff)
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
		log.Info().Int64("seed", seed).Msg("Using time-derived base seed")
	} else {
		// A fixed seed promises reproducible matches, which the shared bot
		// RNG can only keep when matches run one at a time.
		if workers > 1 {
			log.Warn().Msg("Fixed seed forces workers=1 for reproducibility")
		}
		workers = 1
		bot.SeedBotRng(seed)
	}
	if workers < 1 {
		workers = 1
	}
	if dbURL == "" {
		dbURL = cfg.DatabaseURL
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("Shutting down...")
		cancel()
	}()

	// Connect to DB (unless dry-run)
	var matchRepo repository.MatchRepository
	if !dryRun {
		db, err := postgres.Connect(dbURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Database connection failed")
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("Schema setup failed")
		}
		matchRepo = postgres.NewMatchRepo(db)
	}

	strategies := map[conquest.Player]string{
		conquest.PlayerA: alphaDiff,
		conquest.PlayerB: betaDiff,
	}

	// Run matches
	results := make([]*bot.MatchResult, numMatches)
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	errCount := 0

	for i := 0; i < numMatches; i++ {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			mcfg := bot.MatchConfig{
				Label:      fmt.Sprintf("%s #%d", label, idx+1),
				Strategies: strategies,
				MaxTurns:   maxTurns,
				Seed:       seed + int64(idx),
				DryRun:     dryRun,
			}

			result, err := bot.RunMatch(ctx, mcfg, matchRepo)
			if err != nil {
				log.Error().Err(err).Int("match", idx+1).Msg("Match failed")
				mu.Lock()
				errCount++
				mu.Unlock()
				return
			}

			mu.Lock()
			results[idx] = result
			mu.Unlock()

			log.Info().Int("match", idx+1).Str("outcome", string(result.Outcome)).Int("turns", result.Turns).Msg("Match completed")
		}(i)
	}

	wg.Wait()

	if jsonOut {
		printJSON(results, numMatches, errCount)
	} else {
		printSummary(results, strategies, maxTurns, errCount, dryRun)
	}
}

func printSummary(results []*bot.MatchResult, strategies map[conquest.Player]string, maxTurns, errCount int, dryRun bool) {
	type stats struct {
		wins         int
		totalSystems int
		totalShips   int
		matches      int
	}

	byPlayer := make(map[conquest.Player]*stats)
	for _, p := range conquest.AllPlayers() {
		byPlayer[p] = &stats{}
	}

	completed, draws, adjudicated := 0, 0, 0
	for _, r := range results {
		if r == nil {
			continue
		}
		completed++
		if r.Adjudicated {
			adjudicated++
		}
		if r.Outcome == conquest.OutcomeDraw {
			draws++
		}
		for _, p := range conquest.AllPlayers() {
			s := byPlayer[p]
			s.matches++
			st := r.Players[p]
			s.totalSystems += st.Systems
			s.totalShips += st.Ships
			if r.Outcome.Victor() == p {
				s.wins++
			}
		}
	}

	fmt.Printf("\nResults (%d matches, %d turn cap):\n", completed, maxTurns)
	if errCount > 0 {
		fmt.Printf("  (%d matches failed)\n", errCount)
	}
	if completed > 0 {
		fmt.Printf("  %d draws, %d adjudicated at the cap\n", draws, adjudicated)
	}

	for _, p := range conquest.AllPlayers() {
		s := byPlayer[p]
		avgSystems, avgShips := 0.0, 0.0
		if s.matches > 0 {
			avgSystems = float64(s.totalSystems) / float64(s.matches)
			avgShips = float64(s.totalShips) / float64(s.matches)
		}
		fmt.Printf("  %-6s (%s):  %d wins  -- avg systems: %.1f, avg ships: %.1f\n",
			p, strategies[p], s.wins, avgSystems, avgShips)
	}

	if !dryRun && completed > 0 {
		fmt.Println("\nMatches saved to database")
	}
}

func printJSON(results []*bot.MatchResult, total, errCount int) {
	out := struct {
		Total   int                `json:"total"`
		Errors  int                `json:"errors"`
		Results []*bot.MatchResult `json:"results"`
	}{
		Total:   total,
		Errors:  errCount,
		Results: results,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}
