// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package integration_test exercises jjkit against a real jj binary.
// The tests initialize throwaway repositories under t.TempDir() and
// drive them through the public library surface; nothing here uses
// mocks. Every test skips when jj is not on PATH, so the suite is
// safe to run everywhere and meaningful where jj is installed.
package integration_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/jjkit/jjkit/jj"
)

// requireJJ skips the test when no jj binary is available.
func requireJJ(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("jj"); err != nil {
		t.Skip("jj binary not on PATH; skipping integration test")
	}
}

// testContext returns a context that fails the test rather than
// hanging if a jj invocation wedges.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)
	return ctx
}

// initRepo creates a fresh colocated jj repository in a temp directory
// and returns a handle on it. Colocation keeps the backing git repo at
// the workspace root, which the bundle operations rely on. The jj user
// identity is configured repo-locally so commits work on machines with
// no global jj config.
func initRepo(t *testing.T) *jj.Repo {
	t.Helper()
	requireJJ(t)
	ctx := testContext(t)

	dir := t.TempDir()
	bootstrap, err := jj.Open("", jj.Options{})
	if err != nil {
		t.Fatalf("open bootstrap handle: %v", err)
	}
	if _, err := bootstrap.RunChecked(ctx, "git", "init", "--colocate", dir); err != nil {
		t.Fatalf("jj git init: %v", err)
	}

	repo, err := jj.Open(dir, jj.Options{})
	if err != nil {
		t.Fatalf("open %s: %v", dir, err)
	}
	if err := repo.Config.Set(ctx, jj.ScopeRepo, "user.name", "Integration Test"); err != nil {
		t.Fatalf("set user.name: %v", err)
	}
	if err := repo.Config.Set(ctx, jj.ScopeRepo, "user.email", "test@example.com"); err != nil {
		t.Fatalf("set user.email: %v", err)
	}
	return repo
}

// writeFile writes a file inside the repository's working copy.
func writeFile(t *testing.T, repo *jj.Repo, name, content string) {
	t.Helper()
	path := filepath.Join(repo.Path(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
