package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	cfg := New()
	is.NoErr(cfg.Load(nil))

	is.Equal(cfg.GetString(ConfigGame), "chess")
	is.Equal(cfg.GetBool(ConfigDebug), false)
	is.True(cfg.GetInt(ConfigWorkers) >= 1)
	is.Equal(cfg.GetInt(ConfigSquareSize), 64)
}

func TestPrecedence(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	yaml := "game: ataxx\nworkers: 3\nsquare-size: 20\n"
	is.NoErr(os.WriteFile(filepath.Join(dir, "gridplay.yaml"), []byte(yaml), 0o644))

	t.Setenv("GRIDPLAY_DEBUG", "true")
	cfg := New()
	fs := cfg.FlagSet("test")
	depth := fs.Int("depth", 1, "")
	is.NoErr(cfg.Load([]string{"-data-dir", dir, "-workers", "5", "-depth", "4", "extra"}))

	is.Equal(cfg.GetString(ConfigGame), "ataxx") // file
	is.Equal(cfg.GetInt(ConfigSquareSize), 20)   // file
	is.Equal(cfg.GetInt(ConfigWorkers), 5)       // flag beats file
	is.Equal(cfg.GetBool(ConfigDebug), true)     // environment
	is.Equal(*depth, 4)
	is.Equal(cfg.Args(), []string{"extra"})
}

func TestBadFlag(t *testing.T) {
	cfg := New()
	cfg.FlagSet("test").SetOutput(discard{})
	if err := cfg.Load([]string{"-nope"}); err == nil {
		t.Error("expected an error for an unknown flag")
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
