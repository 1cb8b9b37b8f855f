// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/pflag"

	"github.com/jjkit/jjkit/cmd/jjkit/cli"
	"github.com/jjkit/jjkit/jj"
)

func gitCommand() *cli.Command {
	return &cli.Command{
		Name:    "git",
		Summary: "Interoperate with git remotes",
		Description: `Fetch, push, and manage git remotes through jj's git interop, plus
bundle operations for moving history without a network.`,
		Subcommands: []*cli.Command{
			gitCloneCommand(),
			gitFetchCommand(),
			gitPushCommand(),
			gitRemoteCommand(),
			gitExportCommand(),
			gitImportCommand(),
			gitBundleCommand(),
		},
	}
}

type gitCloneParams struct {
	repoParams
	cli.JSONOutput
}

func gitCloneCommand() *cli.Command {
	var params gitCloneParams

	return &cli.Command{
		Name:    "clone",
		Summary: "Clone a git repository as a jj repository",
		Description: `Clone a git repository and initialize jj in the clone. Without a
destination the directory name is derived from the URL the way git
derives it.`,
		Usage: "jjkit git clone <url> [destination] [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("git clone", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 || len(args) > 2 {
				return fmt.Errorf("git clone takes a URL and an optional destination, got %d arguments", len(args))
			}
			destination := ""
			if len(args) == 2 {
				destination = args[1]
			}

			options, _, cleanup, err := params.resolve(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			repo, err := jj.Clone(ctx, args[0], destination, options)
			if err != nil {
				return err
			}

			change, err := repo.Show(ctx, "@")
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(change); done {
				return err
			}
			fmt.Printf("cloned into %s\n", repo.Path())
			fmt.Println(renderChange(outputStyles, change))
			return nil
		},
	}
}

type gitFetchParams struct {
	repoParams
	Remote     string `json:"remote"      flag:"remote" desc:"fetch from this remote"`
	AllRemotes bool   `json:"all_remotes" flag:"all-remotes" desc:"fetch from every configured remote"`
}

func gitFetchCommand() *cli.Command {
	var params gitFetchParams

	return &cli.Command{
		Name:    "fetch",
		Summary: "Fetch from a git remote",
		Usage:   "jjkit git fetch [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("git fetch", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			output, err := repo.Git.Fetch(ctx, jj.FetchOptions{
				Remote:     params.Remote,
				AllRemotes: params.AllRemotes,
			})
			if err != nil {
				return err
			}
			fmt.Print(output)
			return nil
		},
	}
}

type gitPushParams struct {
	repoParams
	Remote       string `json:"remote"   flag:"remote"      desc:"push to this remote"`
	Bookmark     string `json:"bookmark" flag:"bookmark,b"  desc:"push a single bookmark"`
	AllBookmarks bool   `json:"all"      flag:"all"         desc:"push all bookmarks"`
	Change       string `json:"change"   flag:"change,c"    desc:"push a change, creating a bookmark for it"`
}

func gitPushCommand() *cli.Command {
	var params gitPushParams

	return &cli.Command{
		Name:    "push",
		Summary: "Push to a git remote",
		Usage:   "jjkit git push [flags]",
		Examples: []cli.Example{
			{
				Description: "Push one bookmark",
				Command:     "jjkit git push -b main",
			},
			{
				Description: "Push the working copy parent as a new bookmark",
				Command:     "jjkit git push -c @-",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("git push", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			output, err := repo.Git.Push(ctx, jj.PushOptions{
				Remote:       params.Remote,
				Bookmark:     params.Bookmark,
				AllBookmarks: params.AllBookmarks,
				Change:       params.Change,
			})
			if err != nil {
				return err
			}
			fmt.Print(output)
			return nil
		},
	}
}

func gitRemoteCommand() *cli.Command {
	return &cli.Command{
		Name:    "remote",
		Summary: "Manage git remotes",
		Subcommands: []*cli.Command{
			gitRemoteListCommand(),
			gitRemoteAddCommand(),
			gitRemoteRemoveCommand(),
			gitRemoteRenameCommand(),
			gitRemoteSetURLCommand(),
		},
	}
}

type gitRemoteListParams struct {
	repoParams
	cli.JSONOutput
}

func gitRemoteListCommand() *cli.Command {
	var params gitRemoteListParams

	return &cli.Command{
		Name:    "list",
		Summary: "List configured git remotes",
		Usage:   "jjkit git remote list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("git remote list", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			remotes, err := repo.Git.RemoteList(ctx)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(remotes); done {
				return err
			}
			names := make([]string, 0, len(remotes))
			for name := range remotes {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Println(renderRemotes(remotes, names))
			return nil
		},
	}
}

func gitRemoteAddCommand() *cli.Command {
	var params repoParams

	return &cli.Command{
		Name:    "add",
		Summary: "Add a git remote",
		Usage:   "jjkit git remote add <name> <url> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("git remote add", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return fmt.Errorf("git remote add takes a name and a URL, got %d arguments", len(args))
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Git.RemoteAdd(ctx, args[0], args[1])
		},
	}
}

func gitRemoteRemoveCommand() *cli.Command {
	var params repoParams

	return &cli.Command{
		Name:    "remove",
		Summary: "Remove a git remote",
		Usage:   "jjkit git remote remove <name> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("git remote remove", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("git remote remove takes exactly one name, got %d arguments", len(args))
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Git.RemoteRemove(ctx, args[0])
		},
	}
}

func gitRemoteRenameCommand() *cli.Command {
	var params repoParams

	return &cli.Command{
		Name:    "rename",
		Summary: "Rename a git remote",
		Usage:   "jjkit git remote rename <old> <new> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("git remote rename", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return fmt.Errorf("git remote rename takes an old and a new name, got %d arguments", len(args))
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Git.RemoteRename(ctx, args[0], args[1])
		},
	}
}

func gitRemoteSetURLCommand() *cli.Command {
	var params repoParams

	return &cli.Command{
		Name:    "set-url",
		Summary: "Change a git remote's URL",
		Usage:   "jjkit git remote set-url <name> <url> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("git remote set-url", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return fmt.Errorf("git remote set-url takes a name and a URL, got %d arguments", len(args))
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Git.RemoteSetURL(ctx, args[0], args[1])
		},
	}
}

func gitExportCommand() *cli.Command {
	var params repoParams

	return &cli.Command{
		Name:    "export",
		Summary: "Export jj refs to the underlying git repository",
		Usage:   "jjkit git export [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("git export", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Git.Export(ctx)
		},
	}
}

func gitImportCommand() *cli.Command {
	var params repoParams

	return &cli.Command{
		Name:    "import",
		Summary: "Import git refs into jj",
		Usage:   "jjkit git import [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("git import", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Git.Import(ctx)
		},
	}
}

func gitBundleCommand() *cli.Command {
	return &cli.Command{
		Name:    "bundle",
		Summary: "Move history through git bundle files",
		Subcommands: []*cli.Command{
			gitBundleCreateCommand(),
			gitBundleUnbundleCommand(),
			gitBundleVerifyCommand(),
		},
	}
}

func gitBundleCreateCommand() *cli.Command {
	var params repoParams

	return &cli.Command{
		Name:    "create",
		Summary: "Write the repository's history to a bundle file",
		Description: `Export jj refs to git and write a bundle file. Refs after the path
narrow the bundle; with none, everything is bundled.`,
		Usage: "jjkit git bundle create <path> [ref...] [flags]",
		Examples: []cli.Example{
			{
				Description: "Bundle everything",
				Command:     "jjkit git bundle create repo.bundle",
			},
			{
				Description: "Bundle a single bookmark",
				Command:     "jjkit git bundle create main.bundle refs/heads/main",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("git bundle create", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return fmt.Errorf("git bundle create requires a bundle path")
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			path, err := repo.Git.BundleCreate(ctx, args[0], args[1:]...)
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}

type gitBundleUnbundleParams struct {
	repoParams
	Refspec string `json:"refspec" flag:"refspec" desc:"refspec mapping bundle refs (default: all refs)"`
}

func gitBundleUnbundleCommand() *cli.Command {
	var params gitBundleUnbundleParams

	return &cli.Command{
		Name:    "unbundle",
		Summary: "Fetch refs from a bundle file into the repository",
		Usage:   "jjkit git bundle unbundle <path> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("git bundle unbundle", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("git bundle unbundle takes exactly one path, got %d arguments", len(args))
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return repo.Git.BundleUnbundle(ctx, args[0], params.Refspec)
		},
	}
}

func gitBundleVerifyCommand() *cli.Command {
	var params repoParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Check that a bundle file is valid and applicable",
		Usage:   "jjkit git bundle verify <path> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("git bundle verify", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("git bundle verify takes exactly one path, got %d arguments", len(args))
			}
			repo, cleanup, err := params.open(ctx, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			output, err := repo.Git.BundleVerify(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println(output)
			return nil
		},
	}
}
