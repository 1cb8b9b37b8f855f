// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/jjkit/jjkit/cmd/jjkit/cli"
)

type runParams struct {
	repoParams
}

func runCommand() *cli.Command {
	var params runParams

	return &cli.Command{
		Name:    "run",
		Summary: "Pass a raw command through to jj",
		Description: `Run an arbitrary jj command through the configured executor. Output
and exit code are passed through verbatim; nothing is parsed or
classified. The global flags (--no-pager, --color never, and
--repository when a repo is configured) are still injected, so the
command targets the same repository as every other jjkit command.

Use "--" to stop jjkit's own flag parsing:

  jjkit run -- rebase -d main`,
		Usage: "jjkit run [flags] -- <jj-args>...",
		Examples: []cli.Example{
			{
				Description: "Rebase onto main",
				Command:     "jjkit run -- rebase -d main",
			},
			{
				Description: "Run inside a container",
				Command:     "jjkit run --container devbox -- st",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("run", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return fmt.Errorf("run requires jj arguments after \"--\"")
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := repo.Run(ctx, args...)
			if err != nil {
				return err
			}

			os.Stdout.WriteString(result.Stdout)
			os.Stderr.WriteString(result.Stderr)
			if result.ExitCode != 0 {
				return &cli.ExitError{Code: result.ExitCode}
			}
			return nil
		},
	}
}
