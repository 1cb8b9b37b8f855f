// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package executor provides pluggable command execution backends for
// jjkit. The jj layer assembles complete argument vectors and hands
// them to an [Executor]; where the process actually runs (a local
// subprocess, a Docker container, a remote host) is the executor's
// concern alone.
//
// The central contract is [Executor.Execute]: a non-zero exit status
// is data, not an error. Execute returns an error only when the
// command could not be run at all (binary missing, container runtime
// unavailable, context cancelled). Classification of exit codes and
// stderr happens in the jj package's dispatcher, in exactly one place.
//
// Implementations must be safe for concurrent use. Each call owns its
// own output buffers; nothing is shared across in-flight commands.
package executor

import "context"

// Result is the captured outcome of one command invocation. It is a
// snapshot: nothing mutates it after the process exits.
type Result struct {
	// Args is the argument vector this result was produced by. For
	// wrapping executors (Docker), this is the original command as
	// given by the caller, not the wrapped vector. Diagnostics only;
	// never re-parsed.
	Args []string

	// Stdout is the complete captured standard output.
	Stdout string

	// Stderr is the complete captured standard error, kept separate
	// from stdout so error classification can inspect it.
	Stderr string

	// ExitCode is the process exit status. Zero means success.
	ExitCode int
}

// Executor runs a fully-assembled argument vector and captures the
// outcome. args[0] is the binary; there is no shell interpretation.
//
// A non-zero exit status must be reported via [Result.ExitCode] with a
// nil error. The error return is reserved for failures to run the
// command at all: a missing binary, an unreachable container runtime,
// or a cancelled context. Cancellation errors satisfy
// errors.Is(err, context.Canceled) so callers can tell an interrupted
// command from a failed one.
type Executor interface {
	Execute(ctx context.Context, args []string) (Result, error)
}
