// gridplay is an interactive shell for bitboard board games: play moves,
// count perft and render positions.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/hailam/gridplay/internal/board"
	"github.com/hailam/gridplay/internal/config"
	"github.com/hailam/gridplay/internal/shell"
	"github.com/hailam/gridplay/internal/storage"
)

func main() {
	cfg := config.New()
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.SetupLogging()
	board.DebugMoveValidation = cfg.GetBool(config.ConfigDebug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cache *storage.Storage
	if cfg.GetBool(config.ConfigCache) {
		var err error
		if cache, err = storage.Open(cfg.GetString(config.ConfigDataDir)); err != nil {
			log.Warn().Err(err).Msg("perft cache disabled")
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	sh, err := shell.New(cfg, cache)
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}

	// Commands given after the flags run once instead of the loop.
	if args := cfg.Args(); len(args) > 0 {
		out, err := sh.Execute(ctx, shellquote.Join(args...))
		if out != "" {
			fmt.Println(out)
		}
		if err != nil {
			log.Error().Err(err).Msg("")
			if cache != nil {
				cache.Close()
			}
			os.Exit(1)
		}
		return
	}

	if err := sh.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("")
	}
}
