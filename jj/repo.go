// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/jjkit/jjkit/executor"
)

// Options configures a repository handle. The zero value is usable:
// it resolves "jj" from PATH and runs it as a local subprocess.
type Options struct {
	// Binary is the jj binary name or path. Defaults to "jj".
	Binary string

	// Executor dispatches assembled commands. Defaults to a local
	// subprocess executor. When set explicitly, Open skips the host
	// PATH probe, since the binary lives wherever the executor runs
	// (a container, a remote host).
	Executor executor.Executor

	// RepoNotFoundHints overrides the stderr fragments used to
	// classify failures as RepoNotFoundError. jj's wording has
	// changed across releases; override this if a new release breaks
	// classification.
	RepoNotFoundHints []string

	// Logger receives debug records for every dispatched command.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// Repo is a handle on a jj repository. It is safe for concurrent use;
// each command dispatch is independent and the handle imposes no
// serialization of its own.
//
// Sub-resources are exposed as managers on the handle. They share the
// handle's executor and repository path and hold no state of their
// own.
type Repo struct {
	runner *runner

	Bookmark  *BookmarkManager
	Git       *GitManager
	Workspace *WorkspaceManager
	Op        *OperationManager
	Config    *ConfigManager
}

// Open returns a handle on the repository at path. An empty path
// targets whatever directory the executor's own context points at
// (the local working directory, or the container workdir).
//
// The binary is resolved eagerly: when no custom executor is given,
// Open fails with [*NotFoundError] if the binary is not on PATH.
// The repository itself is validated lazily, by the first dispatched
// command.
func Open(path string, options Options) (*Repo, error) {
	binary := options.Binary
	if binary == "" {
		binary = "jj"
	}
	backend := options.Executor
	if backend == nil {
		if _, err := exec.LookPath(binary); err != nil {
			return nil, &NotFoundError{Binary: binary}
		}
		backend = &executor.Local{}
	}
	hints := options.RepoNotFoundHints
	if hints == nil {
		hints = defaultRepoNotFoundHints
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return newRepo(&runner{
		binary:   binary,
		repoPath: path,
		executor: backend,
		hints:    hints,
		logger:   logger,
	}), nil
}

func newRepo(r *runner) *Repo {
	return &Repo{
		runner:    r,
		Bookmark:  &BookmarkManager{runner: r},
		Git:       &GitManager{runner: r},
		Workspace: &WorkspaceManager{runner: r},
		Op:        &OperationManager{runner: r},
		Config:    &ConfigManager{runner: r},
	}
}

// Path returns the repository path the handle was opened with.
func (r *Repo) Path() string {
	return r.runner.repoPath
}

// Run executes an arbitrary jj command and returns the raw result.
// The global flags and --repository are injected as for every other
// operation, but the result is not classified: a non-zero exit is
// returned as data, not as an error.
func (r *Repo) Run(ctx context.Context, args ...string) (executor.Result, error) {
	return r.runner.run(ctx, args, false)
}

// RunChecked is [Repo.Run] with the standard error classification
// applied: non-zero exits come back as [*CommandError] or
// [*RepoNotFoundError].
func (r *Repo) RunChecked(ctx context.Context, args ...string) (executor.Result, error) {
	return r.runner.run(ctx, args, true)
}

// LogOptions selects which changes [Repo.Log] returns.
type LogOptions struct {
	// Revset selects the changes. Defaults to "@".
	Revset string

	// Limit caps the number of returned changes. Zero means no cap.
	Limit int
}

// Log returns the changes matching a revset, most recent first.
func (r *Repo) Log(ctx context.Context, options LogOptions) ([]Change, error) {
	revset := options.Revset
	if revset == "" {
		revset = "@"
	}
	args := []string{"log", "--no-graph", "-T", changeListTemplate, "-r", revset}
	if options.Limit > 0 {
		args = append(args, "-n", strconv.Itoa(options.Limit))
	}
	result, err := r.runner.run(ctx, args, true)
	if err != nil {
		return nil, err
	}
	return parseChanges(result.Stdout)
}

// Show returns a single change. An empty revision means "@".
func (r *Repo) Show(ctx context.Context, revision string) (Change, error) {
	if revision == "" {
		revision = "@"
	}
	args := []string{"log", "--no-graph", "-T", changeTemplate, "-r", revision, "-n", "1"}
	result, err := r.runner.run(ctx, args, true)
	if err != nil {
		return Change{}, err
	}
	return parseChange(result.Stdout)
}

// DiffOptions selects what [Repo.Diff] and [Repo.DiffGit] compare.
// All fields are optional; the zero value diffs the working copy.
type DiffOptions struct {
	// Revision diffs one revision against its parents.
	Revision string

	// From and To diff between two revisions.
	From string
	To   string
}

func (o DiffOptions) args() []string {
	var args []string
	if o.Revision != "" {
		args = append(args, "-r", o.Revision)
	}
	if o.From != "" {
		args = append(args, "--from", o.From)
	}
	if o.To != "" {
		args = append(args, "--to", o.To)
	}
	return args
}

// Diff returns a parsed summary of changed files.
func (r *Repo) Diff(ctx context.Context, options DiffOptions) (DiffSummary, error) {
	args := append([]string{"diff", "--summary"}, options.args()...)
	result, err := r.runner.run(ctx, args, true)
	if err != nil {
		return DiffSummary{}, err
	}
	return parseDiffSummary(result.Stdout), nil
}

// DiffGit returns a git-format patch as raw text.
func (r *Repo) DiffGit(ctx context.Context, options DiffOptions) (string, error) {
	args := append([]string{"diff", "--git"}, options.args()...)
	result, err := r.runner.run(ctx, args, true)
	if err != nil {
		return "", err
	}
	return result.Stdout, nil
}

// Status returns the working copy change and its diff summary.
func (r *Repo) Status(ctx context.Context) (Status, error) {
	workingCopy, err := r.Show(ctx, "@")
	if err != nil {
		return Status{}, err
	}
	diff, err := r.Diff(ctx, DiffOptions{})
	if err != nil {
		return Status{}, err
	}
	return Status{WorkingCopy: workingCopy, Diff: diff}, nil
}

// FileList returns the files tracked in a revision. An empty revision
// means the working copy.
func (r *Repo) FileList(ctx context.Context, revision string) ([]string, error) {
	args := []string{"file", "list"}
	if revision != "" {
		args = append(args, "-r", revision)
	}
	result, err := r.runner.run(ctx, args, true)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(strings.TrimSpace(result.Stdout), "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// NewOptions configures [Repo.New].
type NewOptions struct {
	// Revisions are the parents of the new change. Defaults to "@".
	Revisions []string

	// Message is the initial description.
	Message string

	InsertBefore bool
	InsertAfter  bool
}

// New creates a new change and returns the resulting working copy
// change.
func (r *Repo) New(ctx context.Context, options NewOptions) (Change, error) {
	args := append([]string{"new"}, options.Revisions...)
	if options.Message != "" {
		args = append(args, "-m", options.Message)
	}
	if options.InsertBefore {
		args = append(args, "--insert-before")
	}
	if options.InsertAfter {
		args = append(args, "--insert-after")
	}
	if _, err := r.runner.run(ctx, args, true); err != nil {
		return Change{}, err
	}
	return r.Show(ctx, "@")
}

// DescribeOptions configures [Repo.Describe].
type DescribeOptions struct {
	// Message is the new description. An empty message clears the
	// description.
	Message string

	// ResetAuthor resets the author to the configured identity.
	ResetAuthor bool
}

// Describe sets the description of a change and returns the updated
// change. An empty revision means "@".
func (r *Repo) Describe(ctx context.Context, revision string, options DescribeOptions) (Change, error) {
	if revision == "" {
		revision = "@"
	}
	args := []string{"describe", revision, "-m", options.Message}
	if options.ResetAuthor {
		args = append(args, "--reset-author")
	}
	if _, err := r.runner.run(ctx, args, true); err != nil {
		return Change{}, err
	}
	return r.Show(ctx, revision)
}

// Commit finalizes the working copy into a described commit, starts a
// new change on top, and returns the finalized commit.
func (r *Repo) Commit(ctx context.Context, message string) (Change, error) {
	if _, err := r.runner.run(ctx, []string{"commit", "-m", message}, true); err != nil {
		return Change{}, err
	}
	return r.Show(ctx, "@-")
}

// Edit makes the given revision the working copy.
func (r *Repo) Edit(ctx context.Context, revision string) error {
	_, err := r.runner.run(ctx, []string{"edit", revision}, true)
	return err
}

// SquashOptions configures [Repo.Squash]. The zero value squashes the
// working copy into its parent.
type SquashOptions struct {
	// Revision is the change to squash. Defaults to "@".
	Revision string

	// Into overrides the squash target.
	Into string

	// Message sets the description of the result.
	Message string
}

// Squash moves a change's content into another change.
func (r *Repo) Squash(ctx context.Context, options SquashOptions) error {
	args := []string{"squash"}
	if options.Revision != "" {
		args = append(args, "-r", options.Revision)
	}
	if options.Into != "" {
		args = append(args, "--into", options.Into)
	}
	if options.Message != "" {
		args = append(args, "-m", options.Message)
	}
	_, err := r.runner.run(ctx, args, true)
	return err
}

// SplitOptions configures [Repo.Split].
type SplitOptions struct {
	// Revision is the change to split. Defaults to "@".
	Revision string

	// Files are the paths moved into the first of the two resulting
	// changes. At least one is required; interactive splitting is not
	// supported.
	Files []string
}

// Split splits a change in two by file paths.
func (r *Repo) Split(ctx context.Context, options SplitOptions) error {
	if len(options.Files) == 0 {
		return errors.New("split requires at least one file path")
	}
	args := []string{"split"}
	if options.Revision != "" {
		args = append(args, "-r", options.Revision)
	}
	args = append(args, "--")
	args = append(args, options.Files...)
	_, err := r.runner.run(ctx, args, true)
	return err
}

// RebaseOptions configures [Repo.Rebase]. Destination is required;
// Revision, Source, and Branch select what gets rebased.
type RebaseOptions struct {
	Revision    string
	Source      string
	Branch      string
	Destination string
}

// Rebase moves revisions onto a destination.
func (r *Repo) Rebase(ctx context.Context, options RebaseOptions) error {
	if options.Destination == "" {
		return errors.New("rebase requires a destination")
	}
	args := []string{"rebase", "-d", options.Destination}
	if options.Revision != "" {
		args = append(args, "-r", options.Revision)
	}
	if options.Source != "" {
		args = append(args, "-s", options.Source)
	}
	if options.Branch != "" {
		args = append(args, "-b", options.Branch)
	}
	_, err := r.runner.run(ctx, args, true)
	return err
}

// Abandon abandons one or more revisions. With no arguments it
// abandons the working copy change.
func (r *Repo) Abandon(ctx context.Context, revisions ...string) error {
	args := []string{"abandon"}
	if len(revisions) == 0 {
		revisions = []string{"@"}
	}
	args = append(args, revisions...)
	_, err := r.runner.run(ctx, args, true)
	return err
}

// RestoreOptions configures [Repo.Restore]. The zero value restores
// the working copy from its parent.
type RestoreOptions struct {
	Revision string
	From     string
	To       string
}

// Restore restores file contents from another revision.
func (r *Repo) Restore(ctx context.Context, options RestoreOptions) error {
	args := []string{"restore"}
	if options.Revision != "" {
		args = append(args, "-r", options.Revision)
	}
	if options.From != "" {
		args = append(args, "--from", options.From)
	}
	if options.To != "" {
		args = append(args, "--to", options.To)
	}
	_, err := r.runner.run(ctx, args, true)
	return err
}

// Duplicate duplicates one or more revisions and returns the copies.
// With no arguments it duplicates the working copy change.
func (r *Repo) Duplicate(ctx context.Context, revisions ...string) ([]Change, error) {
	args := []string{"duplicate"}
	if len(revisions) == 0 {
		revisions = []string{"@"}
	}
	args = append(args, revisions...)
	if _, err := r.runner.run(ctx, args, true); err != nil {
		return nil, err
	}
	return r.Log(ctx, LogOptions{Revset: "latest(@-..)", Limit: len(revisions)})
}

// Undo undoes the most recent operation.
func (r *Repo) Undo(ctx context.Context) error {
	_, err := r.runner.run(ctx, []string{"undo"}, true)
	return err
}
