// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"
)

// Commander runs one shell command with a step's environment and
// reports its exit code. The production implementation shells out;
// tests inject a recording fake so execution semantics (ordering,
// fail-fast, env isolation) are testable without spawning processes.
//
// Run returns (exitCode, nil) when the process ran to completion,
// whatever its exit code. A non-nil error means the process could not
// run or was cut short (spawn failure, context cancellation).
type Commander interface {
	Run(ctx context.Context, command string, env map[string]string) (int, error)
}

// ShellCommander executes commands via the configured shell. Each
// command runs in its own process group so that cancellation kills
// the whole tree, not just the shell.
type ShellCommander struct {
	// Shell is the interpreter binary. Empty means "sh".
	Shell string

	// Stdout and Stderr receive the command's output. Nil means the
	// runner process's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Commander.
func (c *ShellCommander) Run(ctx context.Context, command string, env map[string]string) (int, error) {
	shell := c.Shell
	if shell == "" {
		shell = "sh"
	}

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	// Own process group so that kill signals reach the shell and all
	// its children (negative PID = every process in the group).
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	// The step's environment is layered over the runner's own: the
	// child needs PATH and friends, and the step's bindings must win
	// on collision (later entries override earlier ones).
	cmd.Env = os.Environ()
	for name, value := range env {
		cmd.Env = append(cmd.Env, name+"="+value)
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitError *exec.ExitError
	if errors.As(err, &exitError) {
		return exitError.ExitCode(), nil
	}
	// Non-exit errors: spawn failure, context cancellation, signal.
	return -1, err
}
