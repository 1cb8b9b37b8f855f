// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/jjkit/jjkit/executor"
)

// testRepoPath is the repository path test handles are opened at.
const testRepoPath = "/repo"

// mockExecutor records every dispatched vector and returns queued
// results in order. With nothing queued it returns success with empty
// output.
type mockExecutor struct {
	mu      sync.Mutex
	calls   [][]string
	results []executor.Result
}

func (m *mockExecutor) queue(stdout, stderr string, exitCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, executor.Result{
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
	})
}

func (m *mockExecutor) Execute(_ context.Context, args []string) (executor.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, slices.Clone(args))
	var result executor.Result
	if len(m.results) > 0 {
		result = m.results[0]
		m.results = m.results[1:]
	}
	result.Args = slices.Clone(args)
	return result, nil
}

func (m *mockExecutor) call(i int) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[i]
}

func (m *mockExecutor) lastCall() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	return m.calls[len(m.calls)-1]
}

func (m *mockExecutor) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// errorExecutor fails every dispatch with a fixed transport error.
type errorExecutor struct {
	err error
}

func (e *errorExecutor) Execute(context.Context, []string) (executor.Result, error) {
	return executor.Result{}, e.err
}

// newTestRepo opens a handle at testRepoPath backed by the mock.
func newTestRepo(t *testing.T, mock *mockExecutor) *Repo {
	t.Helper()
	repo, err := Open(testRepoPath, Options{Executor: mock})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return repo
}

// jjArgv is the full vector the runner assembles for a command issued
// against testRepoPath.
func jjArgv(args ...string) []string {
	argv := []string{"jj", "--no-pager", "--color", "never", "--repository", testRepoPath}
	return append(argv, args...)
}

const testTimestamp = "2025-01-15T10:30:00+00:00"

func signatureDocument() string {
	return fmt.Sprintf(`{"name":"Test User","email":"test@example.com","timestamp":%q}`, testTimestamp)
}

// changeDocument renders one templated change the way jj does, with
// fixed metadata around the given id and description.
func changeDocument(changeID, description string) string {
	return fmt.Sprintf(
		`{"base":{"change_id":%q,"commit_id":"deadbeef","parents":["p0"],"description":%q,"author":%s,"committer":%s},`+
			`"bookmarks":[],"local_bookmarks":[],"tags":[],"empty":false,"conflict":false,"hidden":false}`,
		changeID, description, signatureDocument(), signatureDocument())
}
