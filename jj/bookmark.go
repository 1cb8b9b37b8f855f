// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import "context"

// BookmarkManager manages jj bookmarks. Access it through
// [Repo.Bookmark].
type BookmarkManager struct {
	runner *runner
}

// List returns the repository's bookmarks. With allRemotes set,
// remote-tracking bookmarks are included.
func (m *BookmarkManager) List(ctx context.Context, allRemotes bool) ([]Bookmark, error) {
	args := []string{"bookmark", "list"}
	if allRemotes {
		args = append(args, "--all-remotes")
	}
	result, err := m.runner.run(ctx, args, true)
	if err != nil {
		return nil, err
	}
	return parseBookmarkList(result.Stdout), nil
}

// Create creates a bookmark. An empty revision points it at the
// working copy.
func (m *BookmarkManager) Create(ctx context.Context, name, revision string) error {
	args := []string{"bookmark", "create", name}
	if revision != "" {
		args = append(args, "-r", revision)
	}
	_, err := m.runner.run(ctx, args, true)
	return err
}

// Delete deletes bookmarks.
func (m *BookmarkManager) Delete(ctx context.Context, names ...string) error {
	args := append([]string{"bookmark", "delete"}, names...)
	_, err := m.runner.run(ctx, args, true)
	return err
}

// Forget removes bookmarks without propagating a deletion to remotes.
func (m *BookmarkManager) Forget(ctx context.Context, names ...string) error {
	args := append([]string{"bookmark", "forget"}, names...)
	_, err := m.runner.run(ctx, args, true)
	return err
}

// Move moves a bookmark to another revision. An empty target moves it
// to the working copy.
func (m *BookmarkManager) Move(ctx context.Context, name, to string) error {
	args := []string{"bookmark", "move", name}
	if to != "" {
		args = append(args, "--to", to)
	}
	_, err := m.runner.run(ctx, args, true)
	return err
}

// Set creates a bookmark or moves an existing one.
func (m *BookmarkManager) Set(ctx context.Context, name, revision string) error {
	args := []string{"bookmark", "set", name}
	if revision != "" {
		args = append(args, "-r", revision)
	}
	_, err := m.runner.run(ctx, args, true)
	return err
}

// Rename renames a bookmark.
func (m *BookmarkManager) Rename(ctx context.Context, old, new string) error {
	_, err := m.runner.run(ctx, []string{"bookmark", "rename", old, new}, true)
	return err
}

// Track starts tracking a bookmark on a remote. An empty remote means
// "origin".
func (m *BookmarkManager) Track(ctx context.Context, bookmark, remote string) error {
	_, err := m.runner.run(ctx, []string{"bookmark", "track", remoteRef(bookmark, remote)}, true)
	return err
}

// Untrack stops tracking a bookmark on a remote. An empty remote
// means "origin".
func (m *BookmarkManager) Untrack(ctx context.Context, bookmark, remote string) error {
	_, err := m.runner.run(ctx, []string{"bookmark", "untrack", remoteRef(bookmark, remote)}, true)
	return err
}

func remoteRef(bookmark, remote string) string {
	if remote == "" {
		remote = "origin"
	}
	return bookmark + "@" + remote
}
