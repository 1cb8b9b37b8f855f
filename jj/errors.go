// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports that the jj binary could not be found. It is
// returned by [Open] at construction time, never by a later command.
type NotFoundError struct {
	// Binary is the binary name or path that failed to resolve.
	Binary string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find jj binary %q: is jj installed and on your PATH?", e.Binary)
}

// CommandError reports a jj command that exited with a non-zero
// status. It carries the complete argument vector, the exit code, and
// the trimmed stderr, so the failure can be reproduced outside this
// package.
type CommandError struct {
	// Args is the full argument vector as executed, including the
	// binary and the injected global flags.
	Args []string

	// ExitCode is the non-zero exit status.
	ExitCode int

	// Stderr is the captured standard error, trimmed.
	Stderr string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("jj command failed (exit %d): %s\n%s",
		e.ExitCode, strings.Join(e.Args, " "), e.Stderr)
}

// RepoNotFoundError reports a command that failed because jj found no
// repository at the targeted path. It is a specialization of
// [CommandError]: errors.As matches both types, and the embedded
// fields carry the same diagnostics.
//
// Classification is driven by stderr signatures (see
// [Options.RepoNotFoundHints]), so it surfaces on the first dispatched
// command rather than at construction. The handle never probes the
// path itself.
type RepoNotFoundError struct {
	CommandError
}

// Unwrap exposes the embedded CommandError so that
// errors.As(err, &commandError) matches repo-not-found failures too.
func (e *RepoNotFoundError) Unwrap() error {
	return &e.CommandError
}

// IsRepoNotFound reports whether err is a repository-not-found
// classification.
func IsRepoNotFound(err error) bool {
	var repoNotFound *RepoNotFoundError
	return errors.As(err, &repoNotFound)
}

// ParseError reports jj output that could not be decoded into typed
// results. The command itself succeeded; the output shape was
// unexpected. Distinct from [CommandError] so callers can tell a
// failed command from a format drift.
type ParseError struct {
	// Output is the raw output that failed to decode.
	Output string

	// Err is the underlying decode error.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing jj output: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
