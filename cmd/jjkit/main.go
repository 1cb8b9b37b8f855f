// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jjkit/jjkit/cmd/jjkit/cli"
	"github.com/jjkit/jjkit/lib/config"
	"github.com/jjkit/jjkit/lib/process"
	"github.com/jjkit/jjkit/lib/version"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output (like "jjkit run")
		// return an ExitError with the desired exit code. Don't print
		// a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		process.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := cli.NewCommandLogger(logLevel(os.Args[1:]))
	return rootCommand().Execute(ctx, os.Args[1:], logger)
}

// logLevel resolves the logger level before any command's flags are
// parsed. --debug and JJKIT_DEBUG win; otherwise the level comes from
// the config file named by JJKIT_CONFIG. The --config flag cannot
// influence the level: it is parsed per command, after the logger
// exists.
func logLevel(args []string) slog.Level {
	if debugRequested(args) {
		return slog.LevelDebug
	}
	cfg, err := config.Load()
	if err != nil {
		return slog.LevelInfo
	}
	return cfg.Log.SlogLevel()
}

// debugRequested reports whether --debug appears on the command line or
// JJKIT_DEBUG is set in the environment. Arguments after "--" belong to
// the wrapped jj command and are not inspected.
func debugRequested(args []string) bool {
	if os.Getenv("JJKIT_DEBUG") != "" {
		return true
	}
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if arg == "--debug" {
			return true
		}
	}
	return false
}

// rootCommand builds the complete jjkit command tree.
func rootCommand() *cli.Command {
	return &cli.Command{
		Name: "jjkit",
		Description: `jjkit: scripting client for the jj version control system.

Wraps the jj binary with typed output, structured errors, and optional
containerized execution. Every read command supports --json for
machine consumption.`,
		Subcommands: []*cli.Command{
			logCommand(),
			showCommand(),
			statusCommand(),
			diffCommand(),
			filesCommand(),
			bookmarkCommand(),
			workspaceCommand(),
			opCommand(),
			gitCommand(),
			runCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("jjkit %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Show the ten most recent changes",
				Command:     "jjkit log -n 10",
			},
			{
				Description: "Inspect the working copy as JSON",
				Command:     "jjkit show --json",
			},
			{
				Description: "Run against a repository elsewhere on disk",
				Command:     "jjkit --repo ~/src/project status",
			},
			{
				Description: "Run every jj command inside a running container",
				Command:     "jjkit --container devbox log",
			},
			{
				Description: "Move a bookmark to the working copy parent",
				Command:     "jjkit bookmark move main --to @-",
			},
			{
				Description: "Pass a raw command through to jj",
				Command:     "jjkit run -- rebase -d main",
			},
		},
	}
}
