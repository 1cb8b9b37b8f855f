// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// localKillDelay is how long a cancelled command gets to exit after
// SIGTERM before the whole process group receives SIGKILL.
const localKillDelay = 3 * time.Second

// Local runs commands as local subprocesses. The zero value is ready
// to use: commands run in the current directory with the inherited
// environment.
type Local struct {
	// Dir is the working directory for commands. Empty means the
	// calling process's current directory.
	Dir string

	// Env holds extra environment entries in "KEY=value" form,
	// appended to the inherited environment. Empty means the
	// environment is inherited unchanged.
	Env []string
}

// Execute runs args as a local subprocess and captures stdout and
// stderr separately. A non-zero exit status is returned in the Result
// with a nil error; only start failures and cancellation produce
// errors.
//
// The command runs in its own process group so that cancellation
// kills the command and all its children. Without Setpgid, only the
// direct child receives the signal — grandchildren survive and keep
// the captured pipes open. On cancellation the group gets SIGTERM
// first, then SIGKILL after a short delay.
func (l *Local) Execute(ctx context.Context, args []string) (Result, error) {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = l.Dir
	if len(l.Env) > 0 {
		cmd.Env = append(os.Environ(), l.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		processGroupID := -cmd.Process.Pid
		if err := unix.Kill(processGroupID, unix.SIGTERM); err != nil {
			// SIGTERM failed (group already gone), escalate.
			return unix.Kill(processGroupID, unix.SIGKILL)
		}
		go func() {
			time.Sleep(localKillDelay)
			// Best-effort: ESRCH from an already-dead group is harmless.
			_ = unix.Kill(processGroupID, unix.SIGKILL)
		}()
		return nil
	}

	err := cmd.Run()
	result := Result{
		Args:   args,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return result, nil
	}

	// A non-zero exit is an outcome, not an error. Everything else
	// (binary not found, cancellation) propagates to the caller.
	var exitError *exec.ExitError
	if errors.As(err, &exitError) {
		result.ExitCode = exitError.ExitCode()
		return result, nil
	}
	return Result{Args: args}, err
}
