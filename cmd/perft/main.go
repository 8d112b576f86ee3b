// perft counts move-generation trees from the command line: single
// positions, divides, repeated timing runs and whole suites.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hailam/gridplay/internal/config"
	"github.com/hailam/gridplay/internal/games"
	"github.com/hailam/gridplay/internal/perft"
	"github.com/hailam/gridplay/internal/storage"
)

func main() {
	cfg := config.New()
	fs := cfg.FlagSet("perft")
	fen := fs.String("fen", "", "position to count, the start position by default")
	depth := fs.Int("depth", 4, "depth to count to")
	divide := fs.Bool("divide", false, "print the count below each root move")
	pseudo := fs.Bool("pseudo", false, "count with pseudolegal generation and leaf legality checks")
	repeat := fs.Int("repeat", 1, "number of timed runs")
	suitePath := fs.String("suite", "", "perft suite file (.txt or .yaml) to check")
	maxDepth := fs.Int("max-depth", 0, "skip suite counts deeper than this")
	clearCache := fs.Bool("clear-cache", false, "drop cached counts before running")
	cpuprofile := fs.String("cpuprofile", "", "write cpu profile to file")
	if err := cfg.Load(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	cfg.SetupLogging()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("file", profilePath).Msg("CPU profiling enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cache *storage.Storage
	if cfg.GetBool(config.ConfigCache) && *repeat == 1 && !*pseudo {
		var err error
		if cache, err = storage.Open(cfg.GetString(config.ConfigDataDir)); err != nil {
			log.Warn().Err(err).Msg("perft cache disabled")
			cache = nil
		} else {
			defer cache.Close()
			if *clearCache {
				if err := cache.ClearPerft(); err != nil {
					log.Warn().Err(err).Msg("could not clear the cache")
				}
			}
		}
	}
	runner := &perft.Runner{Cache: cache, MaxDepth: *maxDepth, Log: log.Logger}

	if err := run(ctx, cfg, runner, *suitePath, *fen, *depth, *divide, *pseudo, *repeat); err != nil {
		log.Error().Err(err).Msg("")
		if cache != nil {
			cache.Close()
		}
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, runner *perft.Runner, suitePath, fen string, depth int, divide, pseudo bool, repeat int) error {
	workers := cfg.GetInt(config.ConfigWorkers)
	name := cfg.GetString(config.ConfigGame)

	if suitePath != "" {
		suite, err := perft.LoadFile(suitePath)
		if err != nil {
			return err
		}
		if suite.Game != "" {
			name = suite.Game
		}
		s, err := games.New(name, workers)
		if err != nil {
			return err
		}
		report, err := runner.Run(ctx, s, suite)
		if err != nil {
			return err
		}
		for _, f := range report.Failures() {
			fmt.Printf("FAIL %s depth %d: got %d, want %d\n", f.FEN, f.Depth, f.Got, f.Want)
		}
		fmt.Printf("%s: %d counts, %d failed, %d cached, %d nodes in %v\n", suite.Name,
			len(report.Results), len(report.Failures()), report.CacheHits(), report.Nodes(), report.Elapsed)
		if n := len(report.Failures()); n > 0 {
			return fmt.Errorf("%d counts failed", n)
		}
		return nil
	}

	s, err := games.New(name, workers)
	if err != nil {
		return err
	}
	if fen != "" {
		if err := s.Load(fen); err != nil {
			return err
		}
	}
	fmt.Println(s)

	if divide {
		branches, err := s.Divide(ctx, depth)
		if err != nil {
			return err
		}
		for _, br := range branches {
			fmt.Printf("%s: %d\n", br.Notation, br.Nodes)
		}
		fmt.Printf("\nMoves: %d\nNodes: %d\n", len(branches), perft.Total(branches))
		return nil
	}

	var nodes uint64
	timings := make([]time.Duration, 0, repeat)
	for range max(repeat, 1) {
		start := time.Now()
		cached := false
		if pseudo {
			nodes = s.PseudoCount(depth)
		} else if nodes, cached, err = runner.Count(ctx, s, depth); err != nil {
			return err
		}
		if cached {
			fmt.Printf("Nodes: %d (cached)\n", nodes)
			return nil
		}
		timings = append(timings, time.Since(start))
	}

	fmt.Printf("Nodes: %d\n", nodes)
	sum := summarize(nodes, timings)
	fmt.Printf("Time: %v\n", sum.Mean)
	if len(timings) > 1 {
		fmt.Printf("NPS: %.0f ± %.0f (95%%, %d runs)\n", sum.NPS, sum.Margin, len(timings))
	} else {
		fmt.Printf("NPS: %.0f\n", sum.NPS)
	}
	return nil
}
