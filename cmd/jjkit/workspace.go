// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/jjkit/jjkit/cmd/jjkit/cli"
)

func workspaceCommand() *cli.Command {
	return &cli.Command{
		Name:    "workspace",
		Summary: "Manage workspaces",
		Description: `Manage workspaces: independent working-directory checkouts sharing one
repository's change graph.`,
		Subcommands: []*cli.Command{
			workspaceListCommand(),
			workspaceAddCommand(),
			workspaceForgetCommand(),
			workspaceRootCommand(),
			workspaceUpdateStaleCommand(),
		},
	}
}

type workspaceListParams struct {
	repoParams
	cli.JSONOutput
}

func workspaceListCommand() *cli.Command {
	var params workspaceListParams

	return &cli.Command{
		Name:    "list",
		Summary: "List workspaces",
		Usage:   "jjkit workspace list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("workspace list", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			workspaces, err := repo.Workspace.List(ctx)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(workspaces); done {
				return err
			}
			fmt.Println(renderWorkspaces(workspaces))
			return nil
		},
	}
}

type workspaceAddParams struct {
	repoParams
	Name string `json:"name" flag:"name" desc:"workspace name (default: derived from the directory)"`
}

func workspaceAddCommand() *cli.Command {
	var params workspaceAddParams

	return &cli.Command{
		Name:    "add",
		Summary: "Attach a new workspace at a path",
		Usage:   "jjkit workspace add <path> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("workspace add", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("workspace add takes exactly one path, got %d arguments", len(args))
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Workspace.Add(ctx, args[0], params.Name)
		},
	}
}

func workspaceForgetCommand() *cli.Command {
	var params repoParams

	return &cli.Command{
		Name:    "forget",
		Summary: "Remove workspaces, leaving their working copies on disk",
		Usage:   "jjkit workspace forget <name>... [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("workspace forget", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return fmt.Errorf("workspace forget requires at least one name")
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Workspace.Forget(ctx, args...)
		},
	}
}

func workspaceRootCommand() *cli.Command {
	var params repoParams

	return &cli.Command{
		Name:    "root",
		Summary: "Print the current workspace's filesystem root",
		Usage:   "jjkit workspace root [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("workspace root", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			root, err := repo.Workspace.Root(ctx)
			if err != nil {
				return err
			}
			fmt.Println(root)
			return nil
		},
	}
}

func workspaceUpdateStaleCommand() *cli.Command {
	var params repoParams

	return &cli.Command{
		Name:    "update-stale",
		Summary: "Update a workspace whose working copy is out of date",
		Usage:   "jjkit workspace update-stale [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("workspace update-stale", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Workspace.UpdateStale(ctx)
		},
	}
}
