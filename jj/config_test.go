// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"context"
	"slices"
	"testing"
)

func TestConfigManager_List(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	mock.queue("user.name = \"Test User\"\nuser.email = \"test@example.com\"\nui.color = \"never\"\n", "", 0)
	repo := newTestRepo(t, mock)

	config, err := repo.Config.List(context.Background(), false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got, want := mock.lastCall(), jjArgv("config", "list"); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}

	user, ok := config["user"].(map[string]any)
	if !ok {
		t.Fatalf("config[user] = %#v, want nested table", config["user"])
	}
	if user["name"] != "Test User" {
		t.Errorf("user.name = %v, want %q", user["name"], "Test User")
	}
	if user["email"] != "test@example.com" {
		t.Errorf("user.email = %v", user["email"])
	}
}

func TestConfigManager_List_IncludeDefaults(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	repo := newTestRepo(t, mock)

	if _, err := repo.Config.List(context.Background(), true); err != nil {
		t.Fatalf("List: %v", err)
	}
	want := jjArgv("config", "list", "--include-defaults")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}
}

func TestConfigManager_Get(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	mock.queue("Test User\n", "", 0)
	repo := newTestRepo(t, mock)

	value, err := repo.Config.Get(context.Background(), "user.name")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got, want := mock.lastCall(), jjArgv("config", "get", "user.name"); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}
	if value != "Test User" {
		t.Errorf("value = %q, want trimmed output", value)
	}
}

func TestConfigManager_Set(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	repo := newTestRepo(t, mock)

	if err := repo.Config.Set(context.Background(), ScopeUser, "user.name", "New Name"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	want := jjArgv("config", "set", "--user", "user.name", "New Name")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}

	if err := repo.Config.Set(context.Background(), ScopeRepo, "ui.color", "never"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	want = jjArgv("config", "set", "--repo", "ui.color", "never")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}
}

func TestConfigManager_Set_UnknownScope(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	repo := newTestRepo(t, mock)

	if err := repo.Config.Set(context.Background(), ConfigScope("global"), "k", "v"); err == nil {
		t.Fatal("Set with unknown scope succeeded")
	}
	if mock.callCount() != 0 {
		t.Errorf("dispatched %d commands, want none", mock.callCount())
	}
}

func TestConfigManager_Unset(t *testing.T) {
	t.Parallel()

	mock := &mockExecutor{}
	repo := newTestRepo(t, mock)

	if err := repo.Config.Unset(context.Background(), ScopeRepo, "ui.color"); err != nil {
		t.Fatalf("Unset: %v", err)
	}
	want := jjArgv("config", "unset", "--repo", "ui.color")
	if got := mock.lastCall(); !slices.Equal(got, want) {
		t.Errorf("dispatched %v, want %v", got, want)
	}
}
