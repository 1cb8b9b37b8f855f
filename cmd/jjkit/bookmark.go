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

func bookmarkCommand() *cli.Command {
	return &cli.Command{
		Name:    "bookmark",
		Summary: "Manage bookmarks",
		Description: `Create, move, list, and delete bookmarks: named movable pointers to
changes, jj's equivalent of branches.`,
		Subcommands: []*cli.Command{
			bookmarkListCommand(),
			bookmarkCreateCommand(),
			bookmarkSetCommand(),
			bookmarkMoveCommand(),
			bookmarkRenameCommand(),
			bookmarkDeleteCommand(),
			bookmarkForgetCommand(),
			bookmarkTrackCommand(),
			bookmarkUntrackCommand(),
		},
	}
}

type bookmarkListParams struct {
	repoParams
	cli.JSONOutput
	AllRemotes bool `json:"all_remotes" flag:"all-remotes,a" desc:"include remote-tracking bookmarks"`
}

func bookmarkListCommand() *cli.Command {
	var params bookmarkListParams

	return &cli.Command{
		Name:    "list",
		Summary: "List bookmarks",
		Usage:   "jjkit bookmark list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("bookmark list", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			bookmarks, err := repo.Bookmark.List(ctx, params.AllRemotes)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(bookmarks); done {
				return err
			}
			fmt.Println(renderBookmarks(outputStyles, bookmarks))
			return nil
		},
	}
}

type bookmarkTargetParams struct {
	repoParams
	Revision string `json:"revision" flag:"revision,r" desc:"target revision (default: working copy)"`
}

func bookmarkCreateCommand() *cli.Command {
	var params bookmarkTargetParams

	return &cli.Command{
		Name:    "create",
		Summary: "Create a new bookmark",
		Usage:   "jjkit bookmark create <name> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("bookmark create", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("bookmark create takes exactly one name, got %d arguments", len(args))
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Bookmark.Create(ctx, args[0], params.Revision)
		},
	}
}

func bookmarkSetCommand() *cli.Command {
	var params bookmarkTargetParams

	return &cli.Command{
		Name:    "set",
		Summary: "Create a bookmark or move an existing one",
		Usage:   "jjkit bookmark set <name> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("bookmark set", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("bookmark set takes exactly one name, got %d arguments", len(args))
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Bookmark.Set(ctx, args[0], params.Revision)
		},
	}
}

type bookmarkMoveParams struct {
	repoParams
	To string `json:"to" flag:"to" desc:"destination revision (default: working copy)"`
}

func bookmarkMoveCommand() *cli.Command {
	var params bookmarkMoveParams

	return &cli.Command{
		Name:    "move",
		Summary: "Move an existing bookmark",
		Usage:   "jjkit bookmark move <name> [flags]",
		Examples: []cli.Example{
			{
				Description: "Move main to the working copy parent",
				Command:     "jjkit bookmark move main --to @-",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("bookmark move", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("bookmark move takes exactly one name, got %d arguments", len(args))
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Bookmark.Move(ctx, args[0], params.To)
		},
	}
}

func bookmarkRenameCommand() *cli.Command {
	var params repoParams

	return &cli.Command{
		Name:    "rename",
		Summary: "Rename a bookmark",
		Usage:   "jjkit bookmark rename <old> <new> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("bookmark rename", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return fmt.Errorf("bookmark rename takes an old and a new name, got %d arguments", len(args))
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Bookmark.Rename(ctx, args[0], args[1])
		},
	}
}

func bookmarkDeleteCommand() *cli.Command {
	var params repoParams

	return &cli.Command{
		Name:    "delete",
		Summary: "Delete bookmarks",
		Description: `Delete bookmarks. The deletion propagates to tracking remotes on the
next push; use "forget" to drop a bookmark without propagating.`,
		Usage: "jjkit bookmark delete <name>... [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("bookmark delete", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return fmt.Errorf("bookmark delete requires at least one name")
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Bookmark.Delete(ctx, args...)
		},
	}
}

func bookmarkForgetCommand() *cli.Command {
	var params repoParams

	return &cli.Command{
		Name:    "forget",
		Summary: "Forget bookmarks without propagating a deletion",
		Usage:   "jjkit bookmark forget <name>... [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("bookmark forget", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return fmt.Errorf("bookmark forget requires at least one name")
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Bookmark.Forget(ctx, args...)
		},
	}
}

type bookmarkRemoteParams struct {
	repoParams
	Remote string `json:"remote" flag:"remote" desc:"remote name (default: origin)"`
}

func bookmarkTrackCommand() *cli.Command {
	var params bookmarkRemoteParams

	return &cli.Command{
		Name:    "track",
		Summary: "Start tracking a remote bookmark",
		Usage:   "jjkit bookmark track <name> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("bookmark track", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("bookmark track takes exactly one name, got %d arguments", len(args))
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Bookmark.Track(ctx, args[0], params.Remote)
		},
	}
}

func bookmarkUntrackCommand() *cli.Command {
	var params bookmarkRemoteParams

	return &cli.Command{
		Name:    "untrack",
		Summary: "Stop tracking a remote bookmark",
		Usage:   "jjkit bookmark untrack <name> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("bookmark untrack", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("bookmark untrack takes exactly one name, got %d arguments", len(args))
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Bookmark.Untrack(ctx, args[0], params.Remote)
		},
	}
}
