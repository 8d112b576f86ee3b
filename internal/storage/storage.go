package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyStats     = "stats"
	perftPrefix  = 'p'
	perftKeySize = 1 + 8 + 8 + 1
)

// PerftEntry is a cached node count.
type PerftEntry struct {
	FEN      string        `json:"fen"`
	Depth    int           `json:"depth"`
	Nodes    uint64        `json:"nodes"`
	Elapsed  time.Duration `json:"elapsed"`
	Recorded time.Time     `json:"recorded"`
}

// RunStats accumulates the perft runs made with this database.
type RunStats struct {
	Runs      int            `json:"runs"`
	Positions int            `json:"positions"`
	Failures  int            `json:"failures"`
	Nodes     uint64         `json:"nodes"`
	CacheHits int            `json:"cache_hits"`
	TotalTime time.Duration  `json:"total_time"`
	RunsBy    map[string]int `json:"runs_by_game"`
	LastRun   time.Time      `json:"last_run"`
}

// NewRunStats returns empty statistics.
func NewRunStats() *RunStats {
	return &RunStats{RunsBy: make(map[string]int)}
}

// NPS returns the average nodes per second over all runs.
func (s *RunStats) NPS() float64 {
	if s.TotalTime <= 0 {
		return 0
	}
	return float64(s.Nodes) / s.TotalTime.Seconds()
}

// RunResult summarises one suite or single perft run.
type RunResult struct {
	Game      string
	Positions int
	Failures  int
	Nodes     uint64
	CacheHits int
	Duration  time.Duration
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens the database below dataDir, or below the platform data
// directory when dataDir is empty.
func Open(dataDir string) (*Storage, error) {
	dbDir, err := DatabaseDir(dataDir)
	if err != nil {
		return nil, err
	}
	return open(badger.DefaultOptions(dbDir))
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// perftKey packs the game, position hash and depth into a fixed-size key.
func perftKey(game string, hash uint64, depth int) []byte {
	key := make([]byte, perftKeySize)
	key[0] = perftPrefix
	binary.BigEndian.PutUint64(key[1:], xxhash.Sum64String(game))
	binary.BigEndian.PutUint64(key[9:], hash)
	key[17] = byte(depth)
	return key
}

// LookupPerft returns the cached count of a position, if any.
func (s *Storage) LookupPerft(game string, hash uint64, depth int) (PerftEntry, bool, error) {
	var entry PerftEntry
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(game, hash, depth))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	return entry, found, err
}

// StorePerft caches a count.
func (s *Storage) StorePerft(game string, hash uint64, entry PerftEntry) error {
	if entry.Recorded.IsZero() {
		entry.Recorded = time.Now()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(game, hash, entry.Depth), data)
	})
}

// ClearPerft drops every cached count.
func (s *Storage) ClearPerft() error {
	return s.db.DropPrefix([]byte{perftPrefix})
}

// SaveStats saves run statistics
func (s *Storage) SaveStats(stats *RunStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads run statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*RunStats, error) {
	stats := NewRunStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	if stats.RunsBy == nil {
		stats.RunsBy = make(map[string]int)
	}
	return stats, err
}

// RecordRun adds a finished run to the statistics.
func (s *Storage) RecordRun(result RunResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.Runs++
	stats.Positions += result.Positions
	stats.Failures += result.Failures
	stats.Nodes += result.Nodes
	stats.CacheHits += result.CacheHits
	stats.TotalTime += result.Duration
	stats.RunsBy[result.Game]++
	stats.LastRun = time.Now()

	return s.SaveStats(stats)
}
