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

type statusParams struct {
	repoParams
	cli.JSONOutput
}

func statusCommand() *cli.Command {
	var params statusParams

	return &cli.Command{
		Name:    "status",
		Summary: "Show the working copy and its changed files",
		Usage:   "jjkit status [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("status", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			status, err := repo.Status(ctx)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(status); done {
				return err
			}
			fmt.Println(renderStatus(outputStyles, status))
			return nil
		},
	}
}

type diffParams struct {
	repoParams
	cli.JSONOutput
	Revision string `json:"revision" flag:"revision,r" desc:"diff one revision against its parents"`
	From     string `json:"from"     flag:"from"       desc:"diff from this revision"`
	To       string `json:"to"       flag:"to"         desc:"diff to this revision"`
	Git      bool   `json:"git"      flag:"git"        desc:"print a git-format patch instead of a summary"`
}

func diffCommand() *cli.Command {
	var params diffParams

	return &cli.Command{
		Name:    "diff",
		Summary: "Show changed files or a full patch",
		Description: `Show what changed. The default output is a one-line-per-file summary;
--git prints a full git-format patch with syntax highlighting on
terminals. Without any revision flags the working copy is compared
against its parents.`,
		Usage: "jjkit diff [flags]",
		Examples: []cli.Example{
			{
				Description: "Summary of the working copy's changes",
				Command:     "jjkit diff",
			},
			{
				Description: "Full patch for a revision",
				Command:     "jjkit diff -r @- --git",
			},
			{
				Description: "Changes between two revisions, as JSON",
				Command:     "jjkit diff --from main --to @ --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("diff", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			options := jj.DiffOptions{
				Revision: params.Revision,
				From:     params.From,
				To:       params.To,
			}

			if params.Git {
				patch, err := repo.DiffGit(ctx, options)
				if err != nil {
					return err
				}
				if done, err := params.EmitJSON(map[string]string{"patch": patch}); done {
					return err
				}
				fmt.Print(highlightDiff(patch))
				return nil
			}

			summary, err := repo.Diff(ctx, options)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(summary.Entries); done {
				return err
			}
			fmt.Println(renderDiffSummary(outputStyles, summary))
			return nil
		},
	}
}

type filesParams struct {
	repoParams
	cli.JSONOutput
	Revision string `json:"revision" flag:"revision,r" desc:"list files in this revision (default: working copy)"`
}

func filesCommand() *cli.Command {
	var params filesParams

	return &cli.Command{
		Name:    "files",
		Summary: "List files tracked in a revision",
		Usage:   "jjkit files [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("files", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			files, err := repo.FileList(ctx, params.Revision)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(files); done {
				return err
			}
			for _, file := range files {
				fmt.Println(file)
			}
			return nil
		},
	}
}
