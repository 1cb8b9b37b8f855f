// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jjkit/jjkit/executor"
)

// defaultRepoNotFoundHints are the stderr fragments that mark a
// command failure as "no repository here" rather than an ordinary
// error. jj has changed this wording across releases, so the set is
// overridable through Options.
var defaultRepoNotFoundHints = []string{
	"There is no jj repo",
	"No repo found",
	"is not a valid jj repo",
}

// runner is the chokepoint every command flows through. It assembles
// the final argument vector, dispatches it on the bound executor, and
// classifies the outcome. Managers share one runner per repository
// handle; the runner itself is safe for concurrent use.
type runner struct {
	binary   string
	repoPath string
	executor executor.Executor
	hints    []string
	logger   *slog.Logger

	// validated flips true after the first successful command. Once
	// the repository is known to exist, later failures are never
	// classified as RepoNotFoundError even if their stderr happens to
	// contain one of the hint strings.
	validated atomic.Bool
}

// argv builds the full vector for a command: binary, the fixed flags
// that keep output machine-readable, the repository override when one
// is set, then the command's own arguments.
func (r *runner) argv(args []string) []string {
	argv := []string{r.binary, "--no-pager", "--color", "never"}
	if r.repoPath != "" {
		argv = append(argv, "--repository", r.repoPath)
	}
	return append(argv, args...)
}

// execute dispatches an already-assembled vector on the executor.
// Errors from this path are transport failures (spawn failure,
// cancellation), never command failures.
func (r *runner) execute(ctx context.Context, argv []string) (executor.Result, error) {
	start := time.Now()
	result, err := r.executor.Execute(ctx, argv)
	if err != nil {
		return executor.Result{}, fmt.Errorf("executing %s: %w", argv[0], err)
	}
	r.logger.Debug("command completed",
		"args", argv,
		"exit_code", result.ExitCode,
		"duration", time.Since(start))
	return result, nil
}

// run assembles, dispatches, and classifies one jj command. With
// check set, a nonzero exit becomes a CommandError (or a
// RepoNotFoundError when stderr matches a hint and no command has
// succeeded yet). Without check, nonzero exits are returned as data.
func (r *runner) run(ctx context.Context, args []string, check bool) (executor.Result, error) {
	argv := r.argv(args)
	result, err := r.execute(ctx, argv)
	if err != nil {
		return executor.Result{}, err
	}

	if result.ExitCode == 0 {
		r.validated.Store(true)
		return result, nil
	}
	if !check {
		return result, nil
	}

	stderr := strings.TrimSpace(result.Stderr)
	commandErr := CommandError{
		Args:     argv,
		ExitCode: result.ExitCode,
		Stderr:   stderr,
	}
	if !r.validated.Load() && matchesHint(stderr, r.hints) {
		return executor.Result{}, &RepoNotFoundError{CommandError: commandErr}
	}
	return executor.Result{}, &commandErr
}

func matchesHint(stderr string, hints []string) bool {
	for _, hint := range hints {
		if strings.Contains(stderr, hint) {
			return true
		}
	}
	return false
}
