// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"errors"
	"strings"
	"testing"
)

func TestCommandError_Message(t *testing.T) {
	t.Parallel()

	err := &CommandError{
		Args:     []string{"jj", "--no-pager", "status"},
		ExitCode: 2,
		Stderr:   "Error: broken",
	}
	want := "jj command failed (exit 2): jj --no-pager status\nError: broken"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestNotFoundError_Message(t *testing.T) {
	t.Parallel()

	err := &NotFoundError{Binary: "/opt/jj"}
	if !strings.Contains(err.Error(), "/opt/jj") {
		t.Errorf("Error() = %q, want the binary path included", err.Error())
	}
}

func TestRepoNotFoundError_MatchesBothTypes(t *testing.T) {
	t.Parallel()

	var err error = &RepoNotFoundError{CommandError: CommandError{
		Args:     []string{"jj", "status"},
		ExitCode: 1,
		Stderr:   "Error: There is no jj repo in \".\"",
	}}

	var repoNotFound *RepoNotFoundError
	if !errors.As(err, &repoNotFound) {
		t.Error("errors.As failed for RepoNotFoundError")
	}
	var commandErr *CommandError
	if !errors.As(err, &commandErr) {
		t.Error("errors.As failed for the embedded CommandError")
	}
	if commandErr.ExitCode != 1 {
		t.Errorf("ExitCode through CommandError = %d, want 1", commandErr.ExitCode)
	}
	if !IsRepoNotFound(err) {
		t.Error("IsRepoNotFound = false")
	}

	// The reverse must not hold: a plain CommandError is not a
	// repo-not-found.
	plain := &CommandError{Args: []string{"jj"}, ExitCode: 1, Stderr: "x"}
	if IsRepoNotFound(plain) {
		t.Error("IsRepoNotFound = true for a plain CommandError")
	}
}

func TestParseError_Unwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("bad json")
	err := &ParseError{Output: "garbage", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("errors.Is failed for the wrapped decode error")
	}
	var parseErr *ParseError
	if !errors.As(error(err), &parseErr) {
		t.Error("errors.As failed for ParseError")
	}
}
