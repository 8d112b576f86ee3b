// Package config gathers settings from defaults, GRIDPLAY_ environment
// variables, an optional gridplay.yaml file and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"os"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/hailam/gridplay/internal/storage"
)

const (
	ConfigDebug       = "debug"
	ConfigWorkers     = "workers"
	ConfigCache       = "cache"
	ConfigDataDir     = "data-dir"
	ConfigGame        = "game"
	ConfigHistoryFile = "history-file"
	ConfigSquareSize  = "square-size"
)

// Config wraps a viper instance holding the settings above.
type Config struct {
	*viper.Viper
	fs *flag.FlagSet
}

// New returns a configuration holding the defaults and the environment.
func New() *Config {
	c := &Config{Viper: viper.New()}
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigWorkers, runtime.GOMAXPROCS(0))
	c.SetDefault(ConfigCache, true)
	c.SetDefault(ConfigDataDir, "")
	c.SetDefault(ConfigGame, "chess")
	c.SetDefault(ConfigHistoryFile, "")
	c.SetDefault(ConfigSquareSize, 64)

	c.SetEnvPrefix("GRIDPLAY")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	return c
}

// FlagSet returns the flags shared by every command, creating them on
// first use. Commands add their own flags before calling Load.
func (c *Config) FlagSet(name string) *flag.FlagSet {
	if c.fs == nil {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		fs.Bool(ConfigDebug, c.GetBool(ConfigDebug), "log at debug level")
		fs.Int(ConfigWorkers, c.GetInt(ConfigWorkers), "goroutines used by perft")
		fs.Bool(ConfigCache, c.GetBool(ConfigCache), "cache perft results on disk")
		fs.String(ConfigDataDir, c.GetString(ConfigDataDir), "directory for the database and gridplay.yaml")
		fs.String(ConfigGame, c.GetString(ConfigGame), "game to play")
		fs.String(ConfigHistoryFile, c.GetString(ConfigHistoryFile), "shell history file")
		fs.Int(ConfigSquareSize, c.GetInt(ConfigSquareSize), "square size of rendered diagrams in pixels")
		c.fs = fs
	}
	return c.fs
}

// Load parses args, reads gridplay.yaml if there is one and applies the
// flags that were set explicitly on top.
func (c *Config) Load(args []string) error {
	fs := c.FlagSet("gridplay")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// The data dir may itself come from a flag.
	dataDir := c.GetString(ConfigDataDir)
	if f := fs.Lookup(ConfigDataDir); f != nil && isSet(fs, ConfigDataDir) {
		dataDir = f.Value.String()
	}
	if err := c.readFile(dataDir); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		c.Set(f.Name, f.Value.String())
	})
	return nil
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) { set = set || f.Name == name })
	return set
}

func (c *Config) readFile(dataDir string) error {
	c.SetConfigName("gridplay")
	c.SetConfigType("yaml")
	if dataDir == "" {
		if dir, err := storage.DataDir(); err == nil {
			dataDir = dir
		}
	}
	if dataDir != "" {
		c.AddConfigPath(dataDir)
	}
	c.AddConfigPath(".")

	err := c.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	if err == nil {
		log.Debug().Str("file", c.ConfigFileUsed()).Msg("config loaded")
	}
	return err
}

// Args returns the arguments left after the flags.
func (c *Config) Args() []string {
	if c.fs == nil {
		return nil
	}
	return c.fs.Args()
}

// SetupLogging sends the global zerolog logger to stderr in console form
// at info level, or debug level when enabled.
func (c *Config) SetupLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if c.GetBool(ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
