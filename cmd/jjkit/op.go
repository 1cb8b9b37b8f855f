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

func opCommand() *cli.Command {
	return &cli.Command{
		Name:    "op",
		Summary: "Inspect and restore the operation log",
		Description: `Every mutation jj performs is recorded as an operation. The operation
log is jj's undo history: any recorded state can be restored, and any
single operation can be reverted.`,
		Subcommands: []*cli.Command{
			opLogCommand(),
			opRestoreCommand(),
			opRevertCommand(),
			opUndoCommand(),
		},
	}
}

type opLogParams struct {
	repoParams
	cli.JSONOutput
	Limit int `json:"limit" flag:"limit,n" desc:"maximum number of operations to show"`
}

func opLogCommand() *cli.Command {
	var params opLogParams

	return &cli.Command{
		Name:    "log",
		Summary: "Show the operation log",
		Usage:   "jjkit op log [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("op log", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			operations, err := repo.Op.Log(ctx, params.Limit)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(operations); done {
				return err
			}
			fmt.Println(renderOperations(outputStyles, operations))
			return nil
		},
	}
}

func opRestoreCommand() *cli.Command {
	var params repoParams

	return &cli.Command{
		Name:    "restore",
		Summary: "Restore the repository to a recorded operation",
		Usage:   "jjkit op restore <operation-id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("op restore", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("op restore takes exactly one operation ID, got %d arguments", len(args))
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Op.Restore(ctx, args[0])
		},
	}
}

func opRevertCommand() *cli.Command {
	var params repoParams

	return &cli.Command{
		Name:    "revert",
		Summary: "Apply the inverse of a single operation",
		Usage:   "jjkit op revert <operation-id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("op revert", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("op revert takes exactly one operation ID, got %d arguments", len(args))
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Op.Revert(ctx, args[0])
		},
	}
}

func opUndoCommand() *cli.Command {
	var params repoParams

	return &cli.Command{
		Name:    "undo",
		Summary: "Undo the most recent operation",
		Usage:   "jjkit op undo [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("op undo", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Undo(ctx)
		},
	}
}
