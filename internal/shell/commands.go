package shell

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/hailam/gridplay/internal/config"
	"github.com/hailam/gridplay/internal/games"
	"github.com/hailam/gridplay/internal/perft"
)

type command struct {
	name    string
	aliases []string
	args    string
	help    string
	run     func(sh *Shell, ctx context.Context, args []string, rest string) (string, error)
}

var commands = []command{
	{name: "games", help: "list the available games", run: (*Shell).cmdGames},
	{name: "game", args: "<name>", help: "start a new game", run: (*Shell).cmdGame},
	{name: "new", help: "go back to the starting position", run: (*Shell).cmdNew},
	{name: "fen", args: "[fen]", help: "show the position, or set it from a FEN", run: (*Shell).cmdFEN},
	{name: "show", aliases: []string{"d"}, help: "draw the board", run: (*Shell).cmdShow},
	{name: "moves", help: "list the legal moves", run: (*Shell).cmdMoves},
	{name: "move", aliases: []string{"m"}, args: "<move>...", help: "play moves", run: (*Shell).cmdMove},
	{name: "undo", args: "[n]", help: "take back n moves, one by default", run: (*Shell).cmdUndo},
	{name: "perft", args: "<depth>", help: "count the leaves of the move tree", run: (*Shell).cmdPerft},
	{name: "divide", args: "<depth>", help: "perft split by root move", run: (*Shell).cmdDivide},
	{name: "suite", args: "<file>", help: "check a perft suite", run: (*Shell).cmdSuite},
	{name: "hash", help: "show the position hash", run: (*Shell).cmdHash},
	{name: "result", help: "show the game result", run: (*Shell).cmdResult},
	{name: "render", args: "<file.png> [size]", help: "save a diagram of the board", run: (*Shell).cmdRender},
	{name: "stats", help: "show perft statistics", run: (*Shell).cmdStats},
	{name: "quit", aliases: []string{"exit", "bye"}, help: "leave", run: (*Shell).cmdQuit},
}

func usage() string {
	var sb strings.Builder
	sb.WriteString("commands:\n")
	for _, c := range commands {
		fmt.Fprintf(&sb, "  %-28s %s\n", strings.TrimSpace(c.name+" "+c.args), c.help)
	}
	sb.WriteString("  help                         show this text")
	return sb.String()
}

func depthArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("need a depth")
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		return 0, fmt.Errorf("bad depth %q", args[0])
	}
	return depth, nil
}

func (sh *Shell) cmdGames(context.Context, []string, string) (string, error) {
	lines := lo.Map(games.Registered(), func(info games.Info, _ int) string {
		mark := " "
		if info.Name == sh.session.Name() {
			mark = "*"
		}
		return fmt.Sprintf("%s %-10s %s", mark, info.Name, info.Description)
	})
	return strings.Join(lines, "\n"), nil
}

func (sh *Shell) cmdGame(_ context.Context, args []string, _ string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("need a game name, one of %s", strings.Join(games.Names(), ", "))
	}
	s, err := games.New(args[0], sh.cfg.GetInt(config.ConfigWorkers))
	if err != nil {
		return "", err
	}
	sh.session = s
	return s.FEN(), nil
}

func (sh *Shell) cmdNew(context.Context, []string, string) (string, error) {
	if err := sh.session.Load(sh.session.StartFEN()); err != nil {
		return "", err
	}
	return sh.session.FEN(), nil
}

func (sh *Shell) cmdFEN(_ context.Context, _ []string, rest string) (string, error) {
	if rest != "" {
		if err := sh.session.Load(rest); err != nil {
			return "", err
		}
	}
	return sh.session.FEN(), nil
}

func (sh *Shell) cmdShow(context.Context, []string, string) (string, error) {
	return sh.session.String(), nil
}

func (sh *Shell) cmdMoves(context.Context, []string, string) (string, error) {
	moves := sh.session.Moves()
	return fmt.Sprintf("%d moves: %s", len(moves), strings.Join(moves, " ")), nil
}

func (sh *Shell) cmdMove(_ context.Context, args []string, _ string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("need a move")
	}
	for i, m := range args {
		if err := sh.session.Play(m); err != nil {
			// Take back the moves of this line that went through.
			for range i {
				sh.session.Undo()
			}
			return "", err
		}
	}
	return sh.session.FEN(), nil
}

func (sh *Shell) cmdUndo(_ context.Context, args []string, _ string) (string, error) {
	n := 1
	if len(args) > 0 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
			return "", fmt.Errorf("bad count %q", args[0])
		}
	}
	if played := sh.session.Played(); n > played {
		return "", fmt.Errorf("%w: %d moves played, %d asked", games.ErrNothingToUndo, played, n)
	}
	for range n {
		if err := sh.session.Undo(); err != nil {
			return "", err
		}
	}
	return sh.session.FEN(), nil
}

func (sh *Shell) cmdPerft(ctx context.Context, args []string, _ string) (string, error) {
	depth, err := depthArg(args)
	if err != nil {
		return "", err
	}

	start := time.Now()
	nodes, cached, err := sh.runner.Count(ctx, sh.session, depth)
	if err != nil {
		return "", err
	}
	elapsed := time.Since(start)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Nodes: %d", nodes)
	if cached {
		sb.WriteString(" (cached)")
		return sb.String(), nil
	}
	fmt.Fprintf(&sb, "\nTime: %v", elapsed)
	if elapsed > 0 {
		fmt.Fprintf(&sb, "\nNPS: %.0f", float64(nodes)/elapsed.Seconds())
	}
	return sb.String(), nil
}

func (sh *Shell) cmdDivide(ctx context.Context, args []string, _ string) (string, error) {
	depth, err := depthArg(args)
	if err != nil {
		return "", err
	}
	branches, err := sh.session.Divide(ctx, depth)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, br := range branches {
		fmt.Fprintf(&sb, "%s: %d\n", br.Notation, br.Nodes)
	}
	fmt.Fprintf(&sb, "\nMoves: %d\nNodes: %d", len(branches), perft.Total(branches))
	return sb.String(), nil
}

func (sh *Shell) cmdSuite(ctx context.Context, args []string, _ string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("need a suite file")
	}
	suite, err := perft.LoadFile(args[0])
	if err != nil {
		return "", err
	}
	// The suite runs on its own session so the current position stays.
	name := suite.Game
	if name == "" {
		name = sh.session.Name()
	}
	s, err := games.New(name, sh.cfg.GetInt(config.ConfigWorkers))
	if err != nil {
		return "", err
	}

	report, err := sh.runner.Run(ctx, s, suite)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, f := range report.Failures() {
		fmt.Fprintf(&sb, "FAIL %s: perft(%d) = %d, want %d\n", f.FEN, f.Depth, f.Got, f.Want)
	}
	fmt.Fprintf(&sb, "%s: %d counts, %d failed, %d cached, %v",
		suite.Name, len(report.Results), len(report.Failures()), report.CacheHits(), report.Elapsed)
	return sb.String(), nil
}

func (sh *Shell) cmdHash(context.Context, []string, string) (string, error) {
	return fmt.Sprintf("%016x", sh.session.Hash()), nil
}

func (sh *Shell) cmdResult(context.Context, []string, string) (string, error) {
	return sh.session.Result().String(), nil
}

func (sh *Shell) cmdRender(_ context.Context, args []string, _ string) (string, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", fmt.Errorf("need a file name")
	}
	size := sh.cfg.GetInt(config.ConfigSquareSize)
	if len(args) == 2 {
		var err error
		if size, err = strconv.Atoi(args[1]); err != nil || size < 8 {
			return "", fmt.Errorf("bad size %q", args[1])
		}
	}

	f, err := os.Create(args[0])
	if err != nil {
		return "", err
	}
	if err := sh.session.WritePNG(f, size); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return "wrote " + args[0], nil
}

func (sh *Shell) cmdStats(context.Context, []string, string) (string, error) {
	if sh.cache == nil {
		return "", fmt.Errorf("the cache is disabled")
	}
	stats, err := sh.cache.LoadStats()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Runs: %d\nPositions: %d\nFailures: %d\nNodes: %d\nCache hits: %d\nNPS: %.0f",
		stats.Runs, stats.Positions, stats.Failures, stats.Nodes, stats.CacheHits, stats.NPS()), nil
}

func (sh *Shell) cmdQuit(context.Context, []string, string) (string, error) {
	return "", errQuit
}
