// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"context"
	"strconv"
)

// OperationManager manages the jj operation log. Access it through
// [Repo.Op].
type OperationManager struct {
	runner *runner
}

// Log returns operation log entries, most recent first. A limit of
// zero returns everything.
func (m *OperationManager) Log(ctx context.Context, limit int) ([]Operation, error) {
	args := []string{"operation", "log", "--no-graph"}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	result, err := m.runner.run(ctx, args, true)
	if err != nil {
		return nil, err
	}
	return parseOperationLog(result.Stdout), nil
}

// Restore resets the repository to the state it had after the given
// operation.
func (m *OperationManager) Restore(ctx context.Context, operationID string) error {
	_, err := m.runner.run(ctx, []string{"operation", "restore", operationID}, true)
	return err
}

// Revert applies the inverse of the given operation, leaving later
// operations in place.
func (m *OperationManager) Revert(ctx context.Context, operationID string) error {
	_, err := m.runner.run(ctx, []string{"operation", "undo", operationID}, true)
	return err
}
