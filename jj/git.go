// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"context"
	"strings"

	"github.com/jjkit/jjkit/executor"
)

// GitManager manages jj's git interop. Access it through [Repo.Git].
type GitManager struct {
	runner *runner
}

// PushOptions configures [GitManager.Push]. The zero value pushes the
// default remote's tracked bookmarks.
type PushOptions struct {
	// Remote overrides the push target.
	Remote string

	// Bookmark pushes a single bookmark.
	Bookmark string

	// AllBookmarks pushes all bookmarks.
	AllBookmarks bool

	// Change pushes a change, creating a bookmark for it.
	Change string
}

// Push pushes to a git remote and returns the combined progress
// output. jj writes progress to stderr, so stderr leads.
func (m *GitManager) Push(ctx context.Context, options PushOptions) (string, error) {
	args := []string{"git", "push"}
	if options.Remote != "" {
		args = append(args, "--remote", options.Remote)
	}
	if options.Bookmark != "" {
		args = append(args, "-b", options.Bookmark)
	}
	if options.AllBookmarks {
		args = append(args, "--all")
	}
	if options.Change != "" {
		args = append(args, "-c", options.Change)
	}
	result, err := m.runner.run(ctx, args, true)
	if err != nil {
		return "", err
	}
	return result.Stderr + result.Stdout, nil
}

// FetchOptions configures [GitManager.Fetch].
type FetchOptions struct {
	// Remote overrides the fetch source.
	Remote string

	// AllRemotes fetches from every configured remote.
	AllRemotes bool
}

// Fetch fetches from a git remote and returns the combined progress
// output.
func (m *GitManager) Fetch(ctx context.Context, options FetchOptions) (string, error) {
	args := []string{"git", "fetch"}
	if options.Remote != "" {
		args = append(args, "--remote", options.Remote)
	}
	if options.AllRemotes {
		args = append(args, "--all-remotes")
	}
	result, err := m.runner.run(ctx, args, true)
	if err != nil {
		return "", err
	}
	return result.Stderr + result.Stdout, nil
}

// Clone clones a git repository and returns a handle on the clone.
// An empty destination derives the directory name from the URL the
// way git does (last path segment, ".git" suffix stripped). The
// options configure both the clone command and the returned handle.
func Clone(ctx context.Context, url, destination string, options Options) (*Repo, error) {
	bootstrap, err := Open("", options)
	if err != nil {
		return nil, err
	}

	args := []string{"git", "clone", url}
	if destination != "" {
		args = append(args, destination)
	}
	if _, err := bootstrap.RunChecked(ctx, args...); err != nil {
		return nil, err
	}

	path := destination
	if path == "" {
		path = strings.TrimRight(url, "/")
		if i := strings.LastIndex(path, "/"); i >= 0 {
			path = path[i+1:]
		}
		path = strings.TrimSuffix(path, ".git")
	}
	return Open(path, options)
}

// RemoteAdd adds a git remote.
func (m *GitManager) RemoteAdd(ctx context.Context, name, url string) error {
	_, err := m.runner.run(ctx, []string{"git", "remote", "add", name, url}, true)
	return err
}

// RemoteRemove removes a git remote.
func (m *GitManager) RemoteRemove(ctx context.Context, name string) error {
	_, err := m.runner.run(ctx, []string{"git", "remote", "remove", name}, true)
	return err
}

// RemoteRename renames a git remote.
func (m *GitManager) RemoteRename(ctx context.Context, old, new string) error {
	_, err := m.runner.run(ctx, []string{"git", "remote", "rename", old, new}, true)
	return err
}

// RemoteSetURL changes the URL of a git remote.
func (m *GitManager) RemoteSetURL(ctx context.Context, name, url string) error {
	_, err := m.runner.run(ctx, []string{"git", "remote", "set-url", name, url}, true)
	return err
}

// RemoteList returns the configured git remotes as a name-to-URL map.
func (m *GitManager) RemoteList(ctx context.Context) (map[string]string, error) {
	result, err := m.runner.run(ctx, []string{"git", "remote", "list"}, true)
	if err != nil {
		return nil, err
	}
	return parseRemoteList(result.Stdout), nil
}

// Export exports jj refs to the underlying git repository.
func (m *GitManager) Export(ctx context.Context) error {
	_, err := m.runner.run(ctx, []string{"git", "export"}, true)
	return err
}

// Import imports git refs into jj.
func (m *GitManager) Import(ctx context.Context) error {
	_, err := m.runner.run(ctx, []string{"git", "import"}, true)
	return err
}

// workspaceRoot resolves the filesystem root the underlying git
// repository lives at.
func (m *GitManager) workspaceRoot(ctx context.Context) (string, error) {
	result, err := m.runner.run(ctx, []string{"workspace", "root"}, true)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Stdout), nil
}

// gitRun runs a raw git command against the underlying git repository
// through the handle's executor. The result is not classified.
func (m *GitManager) gitRun(ctx context.Context, args ...string) (executor.Result, error) {
	root, err := m.workspaceRoot(ctx)
	if err != nil {
		return executor.Result{}, err
	}
	argv := append([]string{"git", "-C", root}, args...)
	return m.runner.execute(ctx, argv)
}

// BundleCreate writes a git bundle of the repository to path. jj refs
// are exported to git first. With no refs, everything is bundled.
// Returns the bundle path.
//
// Bundle operations run git against the workspace root, so they
// require a colocated repository (one where .git sits next to .jj).
func (m *GitManager) BundleCreate(ctx context.Context, path string, refs ...string) (string, error) {
	if err := m.Export(ctx); err != nil {
		return "", err
	}
	args := []string{"bundle", "create", path}
	if len(refs) > 0 {
		args = append(args, refs...)
	} else {
		args = append(args, "--all")
	}
	result, err := m.gitRun(ctx, args...)
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", &CommandError{
			Args:     result.Args,
			ExitCode: result.ExitCode,
			Stderr:   strings.TrimSpace(result.Stderr),
		}
	}
	return path, nil
}

// BundleUnbundle fetches refs from a git bundle into the repository,
// then imports them into jj. An empty refspec maps all bundle refs
// into the local repository.
func (m *GitManager) BundleUnbundle(ctx context.Context, path, refspec string) error {
	if refspec == "" {
		refspec = "+refs/*:refs/*"
	}
	result, err := m.gitRun(ctx, "fetch", path, refspec)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return &CommandError{
			Args:     result.Args,
			ExitCode: result.ExitCode,
			Stderr:   strings.TrimSpace(result.Stderr),
		}
	}
	return m.Import(ctx)
}

// BundleVerify checks a git bundle and returns git's verification
// output.
func (m *GitManager) BundleVerify(ctx context.Context, path string) (string, error) {
	result, err := m.gitRun(ctx, "bundle", "verify", path)
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", &CommandError{
			Args:     result.Args,
			ExitCode: result.ExitCode,
			Stderr:   strings.TrimSpace(result.Stderr),
		}
	}
	return strings.TrimSpace(result.Stdout + result.Stderr), nil
}
