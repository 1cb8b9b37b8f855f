// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/jjkit/jjkit/executor"
)

func TestBookmarkManager_List(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	mock.queue("main: qpvuntsm 170e3fa2 initial\nwip (deleted)\n", "", 0)
	repo := newTestRepo(t, mock)

	bookmarks, err := repo.Bookmark.List(context.Background(), false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got, want := mock.lastCall(), jjArgv("bookmark", "list"); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}
	want := []Bookmark{
		{Name: "main", Present: true},
		{Name: "wip", Present: false},
	}
	if !reflect.DeepEqual(bookmarks, want) {
		t.Errorf("bookmarks = %v, want %v", bookmarks, want)
	}
}

func TestBookmarkManager_List_AllRemotes(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	repo := newTestRepo(t, mock)

	if _, err := repo.Bookmark.List(context.Background(), true); err != nil {
		t.Fatalf("List: %v", err)
	}
	want := jjArgv("bookmark", "list", "--all-remotes")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}
}

func TestBookmarkManager_Create(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	repo := newTestRepo(t, mock)

	if err := repo.Bookmark.Create(context.Background(), "feature", "abc"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := jjArgv("bookmark", "create", "feature", "-r", "abc")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}

	if err := repo.Bookmark.Create(context.Background(), "quick", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	want = jjArgv("bookmark", "create", "quick")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}
}

func TestBookmarkManager_Delete_CommandFailed(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	mock.queue("", "Error: No such bookmark: feature-x\n", 1)
	repo := newTestRepo(t, mock)

	err := repo.Bookmark.Delete(context.Background(), "feature-x")
	var commandErr *CommandError
	if !errors.As(err, &commandErr) {
		t.Fatalf("Delete returned %v, want CommandError", err)
	}
	if commandErr.Stderr != "Error: No such bookmark: feature-x" {
		t.Errorf("Stderr = %q, want the jj error text", commandErr.Stderr)
	}
	if commandErr.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", commandErr.ExitCode)
	}
	if IsRepoNotFound(err) {
		t.Error("missing bookmark misclassified as missing repository")
	}
}

func TestBookmarkManager_Move(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	repo := newTestRepo(t, mock)

	if err := repo.Bookmark.Move(context.Background(), "feature-x", "@-"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	want := jjArgv("bookmark", "move", "feature-x", "--to", "@-")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}
}

func TestBookmarkManager_Move_VectorIndependentOfBackend(t *testing.T) {
	t.Parallel()

	// The same call through a containerized executor must produce the
	// same jj vector, merely wrapped in the docker exec framing.
	local := &mockExecutor{}
	repo := newTestRepo(t, local)
	if err := repo.Bookmark.Move(context.Background(), "feature-x", "@-"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	localVector := local.lastCall()

	host := &mockExecutor{}
	containerized, err := Open(testRepoPath, Options{
		Executor: executor.NewDocker("jjbox", executor.DockerOptions{Host: host}),
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := containerized.Bookmark.Move(context.Background(), "feature-x", "@-"); err != nil {
		t.Fatalf("Move: %v", err)
	}

	wrapped := host.lastCall()
	wantPrefix := []string{"docker", "exec", "jjbox"}
	if len(wrapped) < len(wantPrefix) || !slices.Equal(wrapped[:len(wantPrefix)], wantPrefix) {
		t.Fatalf("container dispatch = %v, want docker exec framing", wrapped)
	}
	if got := wrapped[len(wantPrefix):]; !slices.Equal(got, localVector) {
		t.Errorf("jj vector inside container = %v, want %v", got, localVector)
	}
}

func TestBookmarkManager_SetAndRename(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	repo := newTestRepo(t, mock)

	if err := repo.Bookmark.Set(context.Background(), "release", "v2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	want := jjArgv("bookmark", "set", "release", "-r", "v2")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}

	if err := repo.Bookmark.Rename(context.Background(), "old", "new"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	want = jjArgv("bookmark", "rename", "old", "new")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}
}

func TestBookmarkManager_Forget(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	repo := newTestRepo(t, mock)

	if err := repo.Bookmark.Forget(context.Background(), "a", "b"); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	want := jjArgv("bookmark", "forget", "a", "b")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}
}

func TestBookmarkManager_TrackDefaultsToOrigin(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	repo := newTestRepo(t, mock)

	if err := repo.Bookmark.Track(context.Background(), "feature", ""); err != nil {
		t.Fatalf("Track: %v", err)
	}
	want := jjArgv("bookmark", "track", "feature@origin")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}

	if err := repo.Bookmark.Untrack(context.Background(), "feature", "upstream"); err != nil {
		t.Fatalf("Untrack: %v", err)
	}
	want = jjArgv("bookmark", "untrack", "feature@upstream")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}
}
