// Package storage keeps perft results and run statistics on disk.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
)

// Directory layout below the data directory.
const (
	dirName     = "gridplay"
	dbDirName   = "db"
	historyName = "history"
)

// baseDir is the per-user directory applications keep their data in.
func baseDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Roaming"), nil
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: create %s: %w", dir, err)
	}
	return dir, nil
}

// DataDir returns the gridplay directory inside the per-user data
// directory of the platform, creating it if needed. It holds the perft
// database, the shell history and gridplay.yaml.
func DataDir() (string, error) {
	base, err := baseDir()
	if err != nil {
		return "", fmt.Errorf("storage: no data directory: %w", err)
	}
	return ensureDir(filepath.Join(base, dirName))
}

// DatabaseDir returns the perft database directory below dataDir, or
// below DataDir when dataDir is empty.
func DatabaseDir(dataDir string) (string, error) {
	if dataDir == "" {
		var err error
		if dataDir, err = DataDir(); err != nil {
			return "", err
		}
	}
	dir, err := ensureDir(filepath.Join(dataDir, dbDirName))
	if err != nil {
		return "", err
	}
	log.Debug().Str("dir", dir).Msg("perft database")
	return dir, nil
}

// HistoryFile returns the shell history path below dataDir, or below
// DataDir when dataDir is empty.
func HistoryFile(dataDir string) (string, error) {
	if dataDir == "" {
		var err error
		if dataDir, err = DataDir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dataDir, historyName), nil
}
