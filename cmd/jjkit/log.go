// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/jjkit/jjkit/cmd/jjkit/cli"
	"github.com/jjkit/jjkit/jj"
)

type logParams struct {
	repoParams
	cli.JSONOutput
	Revset string `json:"revset" flag:"revset,r" desc:"revset to log (default: all visible changes)"`
	Limit  int    `json:"limit"  flag:"limit,n"  desc:"maximum number of changes to show"`
}

func logCommand() *cli.Command {
	var params logParams

	return &cli.Command{
		Name:    "log",
		Summary: "Show the change log",
		Description: `Show changes matching a revset, most recent first. Without --revset
all visible changes are shown, like jj's own default.`,
		Usage: "jjkit log [flags]",
		Examples: []cli.Example{
			{
				Description: "Ten most recent changes",
				Command:     "jjkit log -n 10",
			},
			{
				Description: "Changes on a bookmark, as JSON",
				Command:     "jjkit log -r 'main::' --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("log", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			revset := params.Revset
			if revset == "" {
				revset = "::"
			}
			changes, err := repo.Log(ctx, jj.LogOptions{Revset: revset, Limit: params.Limit})
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(changes); done {
				return err
			}
			fmt.Println(renderChanges(outputStyles, changes))
			return nil
		},
	}
}

type showParams struct {
	repoParams
	cli.JSONOutput
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:        "show",
		Summary:     "Show a single change",
		Description: `Show one change's metadata. Without a revision argument the working copy ("@") is shown.`,
		Usage:       "jjkit show [revision] [flags]",
		Examples: []cli.Example{
			{
				Description: "Working copy parent as JSON",
				Command:     "jjkit show @- --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("show", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 1 {
				return fmt.Errorf("show takes at most one revision, got %d arguments", len(args))
			}
			revision := ""
			if len(args) == 1 {
				revision = args[0]
			}

			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			change, err := repo.Show(ctx, revision)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(change); done {
				return err
			}
			fmt.Println(renderChange(outputStyles, change))
			return nil
		},
	}
}
