package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerftCache(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	_, found, err := s.LookupPerft("chess", 42, 3)
	require.NoError(t, err)
	assert.False(t, found)

	entry := PerftEntry{FEN: "8/8/8/8/8/8/8/8 w - - 0 1", Depth: 3, Nodes: 8902, Elapsed: time.Millisecond}
	require.NoError(t, s.StorePerft("chess", 42, entry))

	got, found, err := s.LookupPerft("chess", 42, 3)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint64(8902), got.Nodes)
	assert.Equal(t, entry.FEN, got.FEN)
	assert.False(t, got.Recorded.IsZero())

	// Other games, hashes and depths are separate entries.
	for _, k := range []struct {
		game  string
		hash  uint64
		depth int
	}{{"ataxx", 42, 3}, {"chess", 43, 3}, {"chess", 42, 4}} {
		_, found, err := s.LookupPerft(k.game, k.hash, k.depth)
		require.NoError(t, err)
		assert.False(t, found, "%v", k)
	}

	require.NoError(t, s.ClearPerft())
	_, found, err = s.LookupPerft("chess", 42, 3)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRunStats(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	t.Run("Empty", func(t *testing.T) {
		stats, err := s.LoadStats()
		require.NoError(t, err)
		if stats.Runs != 0 {
			t.Errorf("Expected 0 runs")
		}
		if stats.NPS() != 0 {
			t.Errorf("Expected 0 nps")
		}
	})

	t.Run("Record", func(t *testing.T) {
		require.NoError(t, s.RecordRun(RunResult{Game: "chess", Positions: 3, Nodes: 1000, Duration: time.Second}))
		require.NoError(t, s.RecordRun(RunResult{Game: "ataxx", Positions: 2, Failures: 1, Nodes: 3000, Duration: time.Second}))

		stats, err := s.LoadStats()
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Runs)
		assert.Equal(t, 5, stats.Positions)
		assert.Equal(t, 1, stats.Failures)
		assert.Equal(t, map[string]int{"chess": 1, "ataxx": 1}, stats.RunsBy)
		if nps := stats.NPS(); nps != 2000 {
			t.Errorf("Expected 2000 nps, got %.2f", nps)
		}
	})
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.StorePerft("chess", 1, PerftEntry{Depth: 1, Nodes: 20}))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()
	got, found, err := s.LookupPerft("chess", 1, 1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(20), got.Nodes)
}

func TestDataPaths(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skipf("XDG_DATA_HOME is not used on %s", runtime.GOOS)
	}

	dataDir, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "gridplay"), dataDir)
	assert.DirExists(t, dataDir)

	dbDir, err := DatabaseDir("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "db"), dbDir)
	assert.DirExists(t, dbDir)

	own := t.TempDir()
	dbDir, err = DatabaseDir(own)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(own, "db"), dbDir)

	history, err := HistoryFile(own)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(own, "history"), history)
}

func TestDataPathsUnwritable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := DatabaseDir(blocker)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage: create")
}
