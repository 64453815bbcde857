package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slog"

	svtests "github.com/sw23/sv-tests"
	"github.com/sw23/sv-tests/exitcodes"
	"github.com/sw23/sv-tests/flags"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "svreport"
	app.Usage = "SystemVerilog conformance report generator"
	app.Description = "svreport turns per-runner test logs into a consolidated conformance report"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			if svtests.IsRuntimeError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
			} else {
				// Report export failures and anything unclassified exit 1
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.ReportFailure))
			}
		}
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Crit("Application failed", "message", err)
	}
}

func run(ctx *cli.Context) error {
	logger, err := setupLogger(ctx.String(flags.LogLevel.Name))
	if err != nil {
		return svtests.NewRuntimeError(err)
	}

	cfg, err := svtests.NewConfig(ctx, logger)
	if err != nil {
		return svtests.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}

	reporter, err := svtests.New(cfg, Version)
	if err != nil {
		return svtests.NewRuntimeError(fmt.Errorf("failed to create reporter: %w", err))
	}

	return reporter.Run(ctx.Context)
}

func setupLogger(level string) (log.Logger, error) {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}
	logger := log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, true))
	log.SetDefault(logger)
	return logger, nil
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	default:
		return log.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}
