package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joe/treewalk/internal/config"
	"github.com/joe/treewalk/internal/output"
	"github.com/joe/treewalk/internal/tui"
	"github.com/joe/treewalk/internal/util"
	"github.com/joe/treewalk/internal/walkengine"
	"github.com/joe/treewalk/pkg/filesystem"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
)

// defaultLogLevel keeps diagnostics off the terminal unless something goes
// wrong; failures and the summary already reach stderr through the renderer.
const defaultLogLevel = "warn"

var errNoTerminal = errors.New("interactive mode needs a terminal on stdin and stdout")

type streams struct {
	out    io.Writer
	errOut io.Writer
}

// run executes the selected subcommand and returns the exit code.
func run(ctx context.Context, cfg *config.Config, s streams) int {
	switch {
	case cfg.Walk != nil:
		return runWalk(ctx, cfg.Walk, s)
	case cfg.Stat != nil:
		return runStat(cfg.Stat, s)
	case cfg.Path != nil:
		return runPath(cfg.Path, s)
	case cfg.Cwd != nil:
		return runCwd(cfg.Cwd, s)
	default:
		return fail(s, config.ErrNoCommand)
	}
}

func runWalk(ctx context.Context, cmd *config.WalkCmd, s streams) int {
	if cmd.Interactive {
		if !(util.IsTerminal(os.Stdin) && util.IsTerminal(s.out)) {
			return fail(s, errNoTerminal)
		}

		// Log lines would tear the alternate screen.
		util.InitializeLoggerTo(io.Discard, util.DisabledLevel)
	}

	logger := util.GetLogger("cmd")

	opts := walkengine.Options{
		Walk:     filesystem.WalkOptions{Recurse: cmd.Recurse, Attributes: cmd.Attributes},
		Prune:    cmd.Prune,
		Include:  cmd.Include,
		MaxDepth: cmd.MaxDepth,
	}

	engine, err := walkengine.NewEngine(cmd.Location, opts)
	if err != nil {
		return fail(s, err)
	}

	logger.Debug().Str("location", cmd.Location).Str("walk_id", engine.WalkID().String()).Msg("walk opened")

	if cmd.Interactive {
		return runInteractive(engine, cmd.Strict, s)
	}

	renderer, err := output.New(cmd.Format, s.out, s.errOut)
	if err != nil {
		_ = engine.Close()
		return fail(s, err)
	}

	runErr := engine.Run(ctx, renderer.Entry)
	stats := engine.Stats()

	if err := renderer.Summary(stats, runErr); err != nil {
		logger.Error().Err(err).Msg("failed to write summary")
		return exitFailure
	}

	return walkExitCode(stats, runErr, cmd.Strict)
}

func runInteractive(engine *walkengine.Engine, strict bool, s streams) int {
	result, err := tui.Run(engine)
	if err != nil {
		return fail(s, err)
	}

	renderer := output.NewTextRenderer(s.out, s.errOut)
	for _, failure := range result.Failures {
		_ = renderer.Failure(failure.Path, failure.Err)
	}

	if errors.Is(result.Err, tui.ErrCancelled) {
		_ = renderer.Summary(result.Stats, nil)
		return exitFailure
	}

	_ = renderer.Summary(result.Stats, result.Err)

	return walkExitCode(result.Stats, result.Err, strict)
}

// walkExitCode fails on a walk fault, and on partial failures only when strict.
func walkExitCode(stats walkengine.Stats, err error, strict bool) int {
	if err != nil || (strict && stats.Errors > 0) {
		return exitFailure
	}

	return exitOK
}

func runStat(cmd *config.StatCmd, s streams) int {
	renderer, err := output.New(cmd.Format, s.out, s.errOut)
	if err != nil {
		return fail(s, err)
	}

	if text, ok := renderer.(*output.TextRenderer); ok {
		text.Suggestions = true
	}

	code := exitOK

	for _, path := range cmd.Paths {
		attrs, err := filesystem.QueryAttributes(path)
		if err != nil {
			_ = renderer.Failure(path, err)
			code = exitFailure

			continue
		}

		if err := renderer.Attributes(path, attrs); err != nil {
			return exitFailure
		}
	}

	return code
}

func runPath(cmd *config.PathCmd, s streams) int {
	var (
		result string
		err    error
	)

	switch cmd.Mode() {
	case config.PathName:
		result, err = filesystem.FileName(cmd.Path)
	case config.PathDir:
		result, err = filesystem.DirectoryPath(cmd.Path)
	default:
		result, err = filesystem.CanonicalPath(cmd.Path)
	}

	if err != nil {
		return fail(s, err)
	}

	fmt.Fprintln(s.out, result)

	return exitOK
}

func runCwd(cmd *config.CwdCmd, s streams) int {
	if cmd.Change != "" {
		if err := filesystem.ChangeDirectory(cmd.Change); err != nil {
			return fail(s, err)
		}
	}

	dir, err := filesystem.CurrentDirectory()
	if err != nil {
		return fail(s, err)
	}

	fmt.Fprintln(s.out, dir)

	return exitOK
}

// fail reports err with suggestions and returns the failure exit code.
func fail(s streams, err error) int {
	renderer := output.NewTextRenderer(s.out, s.errOut)
	renderer.Suggestions = true
	_ = renderer.Failure("", err)

	return exitFailure
}

// logLevelFor resolves the diagnostics level, falling back to defaultLogLevel.
func logLevelFor(cfg *config.Config) util.LogLevel {
	level, err := util.ParseLogLevel(cmp.Or(cfg.LogLevel, defaultLogLevel))
	if err != nil {
		return util.WarnLevel
	}

	return level
}
