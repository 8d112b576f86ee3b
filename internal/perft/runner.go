package perft

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/hailam/gridplay/internal/storage"
)

// Counter is a position of some game that can be counted. It hides the
// bitboard width of the game behind it.
type Counter interface {
	Name() string
	Load(fen string) error
	FEN() string
	Hash() uint64
	Count(ctx context.Context, depth int) (uint64, error)
}

// Runner counts positions, consulting and filling an optional cache.
type Runner struct {
	// Cache may be nil.
	Cache *storage.Storage
	// MaxDepth skips expected counts deeper than this when positive.
	MaxDepth int
	Log      zerolog.Logger
}

// CaseResult is the outcome of one position at one depth.
type CaseResult struct {
	FEN     string
	Depth   int
	Want    uint64
	Got     uint64
	Cached  bool
	Elapsed time.Duration
}

// Passed reports whether the count matched.
func (r CaseResult) Passed() bool { return r.Want == r.Got }

// Report collects the results of a suite run.
type Report struct {
	Suite   string
	Game    string
	Results []CaseResult
	Elapsed time.Duration
}

// Failures returns the mismatching results.
func (r Report) Failures() []CaseResult {
	return lo.Filter(r.Results, func(c CaseResult, _ int) bool { return !c.Passed() })
}

// Nodes returns the number of nodes counted, cached counts excluded.
func (r Report) Nodes() uint64 {
	return lo.SumBy(r.Results, func(c CaseResult) uint64 {
		if c.Cached {
			return 0
		}
		return c.Got
	})
}

// CacheHits returns the number of counts served from the cache.
func (r Report) CacheHits() int {
	return lo.CountBy(r.Results, func(c CaseResult) bool { return c.Cached })
}

// Count returns the node count of the current position of c at depth.
func (r *Runner) Count(ctx context.Context, c Counter, depth int) (nodes uint64, cached bool, err error) {
	hash := c.Hash()
	if r.Cache != nil {
		entry, found, err := r.Cache.LookupPerft(c.Name(), hash, depth)
		if err != nil {
			r.Log.Warn().Err(err).Msg("perft cache lookup failed")
		} else if found {
			r.Log.Debug().Str("fen", c.FEN()).Int("depth", depth).Uint64("nodes", entry.Nodes).Msg("cache hit")
			return entry.Nodes, true, nil
		}
	}

	start := time.Now()
	nodes, err = c.Count(ctx, depth)
	if err != nil {
		return 0, false, err
	}
	elapsed := time.Since(start)

	if r.Cache != nil {
		entry := storage.PerftEntry{FEN: c.FEN(), Depth: depth, Nodes: nodes, Elapsed: elapsed}
		if err := r.Cache.StorePerft(c.Name(), hash, entry); err != nil {
			r.Log.Warn().Err(err).Msg("perft cache store failed")
		}
	}
	return nodes, false, nil
}

// Run checks every case of suite. Mismatches are reported, not returned
// as errors; an error means a position could not be loaded or the run
// was cancelled.
func (r *Runner) Run(ctx context.Context, c Counter, suite Suite) (Report, error) {
	report := Report{Suite: suite.Name, Game: c.Name()}
	start := time.Now()

	for _, tc := range suite.Cases {
		if err := c.Load(tc.FEN); err != nil {
			return report, err
		}
		for i, want := range tc.Nodes {
			depth := i + 1
			if r.MaxDepth > 0 && depth > r.MaxDepth {
				break
			}
			caseStart := time.Now()
			got, cached, err := r.Count(ctx, c, depth)
			if err != nil {
				return report, err
			}
			res := CaseResult{FEN: tc.FEN, Depth: depth, Want: want, Got: got, Cached: cached, Elapsed: time.Since(caseStart)}
			report.Results = append(report.Results, res)

			ev := r.Log.Debug()
			if !res.Passed() {
				ev = r.Log.Error()
			}
			ev.Str("fen", tc.FEN).Int("depth", depth).Uint64("want", want).Uint64("got", got).
				Bool("cached", cached).Dur("elapsed", res.Elapsed).Msg("perft")
		}
	}
	report.Elapsed = time.Since(start)

	failures := len(report.Failures())
	r.Log.Info().Str("suite", suite.Name).Str("game", c.Name()).Int("counts", len(report.Results)).
		Int("failures", failures).Uint64("nodes", report.Nodes()).Dur("elapsed", report.Elapsed).Msg("suite done")

	if r.Cache != nil {
		err := r.Cache.RecordRun(storage.RunResult{
			Game:      c.Name(),
			Positions: len(suite.Cases),
			Failures:  failures,
			Nodes:     report.Nodes(),
			CacheHits: report.CacheHits(),
			Duration:  report.Elapsed,
		})
		if err != nil {
			r.Log.Warn().Err(err).Msg("could not record run")
		}
	}
	return report, nil
}
