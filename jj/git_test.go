// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"testing"
)

func TestGitManager_Push(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	mock.queue("pushed ok\n", "Changes to push to origin:\n", 0)
	repo := newTestRepo(t, mock)

	output, err := repo.Git.Push(context.Background(), PushOptions{
		Remote:   "origin",
		Bookmark: "main",
	})
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	want := jjArgv("git", "push", "--remote", "origin", "-b", "main")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}
	// jj reports push progress on stderr, so stderr comes first.
	if output != "Changes to push to origin:\npushed ok\n" {
		t.Errorf("output = %q, want stderr followed by stdout", output)
	}
}

func TestGitManager_Push_AllAndChange(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	repo := newTestRepo(t, mock)

	if _, err := repo.Git.Push(context.Background(), PushOptions{AllBookmarks: true, Change: "abc"}); err != nil {
		t.Fatalf("Push: %v", err)
	}
	want := jjArgv("git", "push", "--all", "-c", "abc")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}
}

func TestGitManager_Fetch(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	repo := newTestRepo(t, mock)

	if _, err := repo.Git.Fetch(context.Background(), FetchOptions{AllRemotes: true}); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := jjArgv("git", "fetch", "--all-remotes")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}
}

func TestGitManager_Remotes(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	repo := newTestRepo(t, mock)

	if err := repo.Git.RemoteAdd(context.Background(), "origin", "https://example.com/r.git"); err != nil {
		t.Fatalf("RemoteAdd: %v", err)
	}
	want := jjArgv("git", "remote", "add", "origin", "https://example.com/r.git")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}

	if err := repo.Git.RemoteSetURL(context.Background(), "origin", "https://example.com/s.git"); err != nil {
		t.Fatalf("RemoteSetURL: %v", err)
	}
	want = jjArgv("git", "remote", "set-url", "origin", "https://example.com/s.git")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}

	mock.queue("origin https://example.com/r.git\n", "", 0)
	remotes, err := repo.Git.RemoteList(context.Background())
	if err != nil {
		t.Fatalf("RemoteList: %v", err)
	}
	if !reflect.DeepEqual(remotes, map[string]string{"origin": "https://example.com/r.git"}) {
		t.Errorf("remotes = %v", remotes)
	}
}

func TestClone_ExplicitDestination(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	repo, err := Clone(context.Background(), "https://example.com/owner/project.git", "/tmp/clone",
		Options{Executor: mock})
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	// The clone command runs without --repository; there is no
	// repository yet.
	want := []string{"jj", "--no-pager", "--color", "never", "git", "clone",
		"https://example.com/owner/project.git", "/tmp/clone"}
	if got := mock.call(0); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}
	if repo.Path() != "/tmp/clone" {
		t.Errorf("Path() = %q, want %q", repo.Path(), "/tmp/clone")
	}
}

func TestClone_DerivesDestinationFromURL(t *testing.T) {
	t.Parallel()

	urls := map[string]string{
		"https://example.com/owner/project.git": "project",
		"https://example.com/owner/project":     "project",
		"https://example.com/owner/project/":    "project",
	}
	for url, wantPath := range urls {
		url, wantPath := url, wantPath
		t.Run(wantPath+" from "+url, func(t *testing.T) {
			t.Parallel()

			mock := &mockExecutor{}
			repo, err := Clone(context.Background(), url, "", Options{Executor: mock})
			if err != nil {
				t.Fatalf("Clone: %v", err)
			}
			if repo.Path() != wantPath {
				t.Errorf("Path() = %q, want %q", repo.Path(), wantPath)
			}
		})
	}
}

func TestClone_CommandFailure(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	mock.queue("", "Error: could not connect\n", 1)

	_, err := Clone(context.Background(), "https://example.com/r.git", "", Options{Executor: mock})
	var commandErr *CommandError
	if !errors.As(err, &commandErr) {
		t.Fatalf("Clone returned %v, want CommandError", err)
	}
}

func TestGitManager_BundleCreate(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	mock.queue("", "", 0)      // git export
	mock.queue("/ws\n", "", 0) // workspace root
	mock.queue("", "", 0)      // git bundle create
	repo := newTestRepo(t, mock)

	path, err := repo.Git.BundleCreate(context.Background(), "/tmp/repo.bundle")
	if err != nil {
		t.Fatalf("BundleCreate: %v", err)
	}
	if path != "/tmp/repo.bundle" {
		t.Errorf("path = %q, want %q", path, "/tmp/repo.bundle")
	}
	if got, want := mock.call(0), jjArgv("git", "export"); !slices.Equal(got, want) {
		t.Errorf("export dispatched %v, want %v", got, want)
	}
	if got, want := mock.call(1), jjArgv("workspace", "root"); !slices.Equal(got, want) {
		t.Errorf("root dispatched %v, want %v", got, want)
	}
	// The bundle command bypasses jj entirely and runs plain git at
	// the workspace root, through the same executor.
	want := []string{"git", "-C", "/ws", "bundle", "create", "/tmp/repo.bundle", "--all"}
	if got := mock.call(2); !slices.Equal(got, want) {
		t.Errorf("bundle dispatched %v, want %v", got, want)
	}
}

func TestGitManager_BundleCreate_Refs(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	mock.queue("", "", 0)
	mock.queue("/ws\n", "", 0)
	mock.queue("", "", 0)
	repo := newTestRepo(t, mock)

	if _, err := repo.Git.BundleCreate(context.Background(), "b.bundle", "refs/heads/main"); err != nil {
		t.Fatalf("BundleCreate: %v", err)
	}
	want := []string{"git", "-C", "/ws", "bundle", "create", "b.bundle", "refs/heads/main"}
	if got := mock.call(2); !slices.Equal(got, want) {
		t.Errorf("bundle dispatched %v, want %v", got, want)
	}
}

func TestGitManager_BundleCreate_Failure(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	mock.queue("", "", 0)
	mock.queue("/ws\n", "", 0)
	mock.queue("", "fatal: refusing to create empty bundle\n", 128)
	repo := newTestRepo(t, mock)

	_, err := repo.Git.BundleCreate(context.Background(), "b.bundle")
	var commandErr *CommandError
	if !errors.As(err, &commandErr) {
		t.Fatalf("BundleCreate returned %v, want CommandError", err)
	}
	if commandErr.ExitCode != 128 {
		t.Errorf("ExitCode = %d, want 128", commandErr.ExitCode)
	}
	if commandErr.Stderr != "fatal: refusing to create empty bundle" {
		t.Errorf("Stderr = %q, want git's error", commandErr.Stderr)
	}
	if commandErr.Args[0] != "git" {
		t.Errorf("Args = %v, want the git vector", commandErr.Args)
	}
}

func TestGitManager_BundleUnbundle(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	mock.queue("/ws\n", "", 0) // workspace root
	mock.queue("", "", 0)      // git fetch
	mock.queue("", "", 0)      // jj git import
	repo := newTestRepo(t, mock)

	if err := repo.Git.BundleUnbundle(context.Background(), "/tmp/repo.bundle", ""); err != nil {
		t.Fatalf("BundleUnbundle: %v", err)
	}
	want := []string{"git", "-C", "/ws", "fetch", "/tmp/repo.bundle", "+refs/*:refs/*"}
	if got := mock.call(1); !slices.Equal(got, want) {
		t.Errorf("fetch dispatched %v, want %v", got, want)
	}
	if got, wantImport := mock.call(2), jjArgv("git", "import"); !slices.Equal(got, wantImport) {
		t.Errorf("import dispatched %v, want %v", got, wantImport)
	}
}

func TestGitManager_BundleVerify(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	mock.queue("/ws\n", "", 0)
	mock.queue("The bundle contains these refs:\n", "ok\n", 0)
	repo := newTestRepo(t, mock)

	output, err := repo.Git.BundleVerify(context.Background(), "b.bundle")
	if err != nil {
		t.Fatalf("BundleVerify: %v", err)
	}
	want := []string{"git", "-C", "/ws", "bundle", "verify", "b.bundle"}
	if got := mock.call(1); !slices.Equal(got, want) {
		t.Errorf("verify dispatched %v, want %v", got, want)
	}
	if output != "The bundle contains these refs:\nok" {
		t.Errorf("output = %q, want stdout and stderr combined", output)
	}
}

func TestGitManager_ExportImport(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	repo := newTestRepo(t, mock)

	if err := repo.Git.Export(context.Background()); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if got, want := mock.lastCall(), jjArgv("git", "export"); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}
	if err := repo.Git.Import(context.Background()); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got, want := mock.lastCall(), jjArgv("git", "import"); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}
}
