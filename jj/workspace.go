// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"context"
	"strings"
)

// WorkspaceManager manages jj workspaces. Access it through
// [Repo.Workspace].
type WorkspaceManager struct {
	runner *runner
}

// Add attaches a new workspace at path. An empty name lets jj derive
// one from the directory name.
func (m *WorkspaceManager) Add(ctx context.Context, path, name string) error {
	args := []string{"workspace", "add", path}
	if name != "" {
		args = append(args, "--name", name)
	}
	_, err := m.runner.run(ctx, args, true)
	return err
}

// Forget removes workspaces from the repository without touching
// their working copies.
func (m *WorkspaceManager) Forget(ctx context.Context, names ...string) error {
	args := append([]string{"workspace", "forget"}, names...)
	_, err := m.runner.run(ctx, args, true)
	return err
}

// List returns the repository's workspaces.
func (m *WorkspaceManager) List(ctx context.Context) ([]Workspace, error) {
	result, err := m.runner.run(ctx, []string{"workspace", "list"}, true)
	if err != nil {
		return nil, err
	}
	return parseWorkspaceList(result.Stdout), nil
}

// Root returns the filesystem root of the current workspace.
func (m *WorkspaceManager) Root(ctx context.Context) (string, error) {
	result, err := m.runner.run(ctx, []string{"workspace", "root"}, true)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Stdout), nil
}

// UpdateStale updates a workspace whose working copy is out of date
// with the repository.
func (m *WorkspaceManager) UpdateStale(ctx context.Context) error {
	_, err := m.runner.run(ctx, []string{"workspace", "update-stale"}, true)
	return err
}
