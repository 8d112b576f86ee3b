// Package shell is the interactive command loop.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/hailam/gridplay/internal/config"
	"github.com/hailam/gridplay/internal/games"
	"github.com/hailam/gridplay/internal/perft"
	"github.com/hailam/gridplay/internal/storage"
)

// errQuit ends the loop.
var errQuit = errors.New("quit")

// Shell holds the position being worked on and the tools around it.
type Shell struct {
	cfg     *config.Config
	session games.Session
	runner  *perft.Runner
	cache   *storage.Storage
}

// New creates a shell on the configured game. cache may be nil.
func New(cfg *config.Config, cache *storage.Storage) (*Shell, error) {
	s, err := games.New(cfg.GetString(config.ConfigGame), cfg.GetInt(config.ConfigWorkers))
	if err != nil {
		return nil, err
	}
	return &Shell{
		cfg:     cfg,
		session: s,
		runner:  &perft.Runner{Cache: cache, Log: log.Logger},
		cache:   cache,
	}, nil
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sh *Shell) historyFile() string {
	if f := sh.cfg.GetString(config.ConfigHistoryFile); f != "" {
		return f
	}
	f, err := storage.HistoryFile(sh.cfg.GetString(config.ConfigDataDir))
	if err != nil {
		log.Warn().Err(err).Msg("shell history disabled")
		return ""
	}
	return f
}

func (sh *Shell) completer() *readline.PrefixCompleter {
	names := func(string) []string { return games.Names() }
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("game", readline.PcItemDynamic(names)),
		readline.PcItem("move", readline.PcItemDynamic(func(string) []string { return sh.session.Moves() })),
	}
	for _, c := range commands {
		if c.name != "game" && c.name != "move" {
			items = append(items, readline.PcItem(c.name))
		}
	}
	items = append(items, readline.PcItem("help"))
	return readline.NewPrefixCompleter(items...)
}

// Run reads commands until quit, end of input or an interrupt on an
// empty line.
func (sh *Shell) Run(ctx context.Context) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mgridplay>\033[0m ",
		HistoryFile:     sh.historyFile(),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    sh.completer(),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	defer l.Close()

	for {
		line, err := l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				break
			}
			continue
		} else if errors.Is(err, io.EOF) {
			break
		}

		resp, err := sh.Execute(ctx, line)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			writeln("Error: "+err.Error(), l.Stderr())
			continue
		}
		if resp != "" {
			writeln(resp, l.Stdout())
		}
	}
	log.Debug().Msg("Exiting readline loop...")
	return nil
}

// Execute runs one command line and returns what it prints.
func (sh *Shell) Execute(ctx context.Context, line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}
	fields, err := shellquote.Split(line)
	if err != nil {
		return "", err
	}
	if len(fields) == 0 {
		return "", nil
	}

	name := fields[0]
	if name == "help" {
		return usage(), nil
	}
	c, ok := lo.Find(commands, func(c command) bool {
		return c.name == name || lo.Contains(c.aliases, name)
	})
	if !ok {
		return "", fmt.Errorf("unknown command %q, try help", name)
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, name))
	return c.run(sh, ctx, fields[1:], rest)
}
