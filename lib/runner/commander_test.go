// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestShellCommanderExitCodes(t *testing.T) {
	t.Parallel()

	commander := &ShellCommander{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	exitCode, err := commander.Run(context.Background(), "true", nil)
	if err != nil || exitCode != 0 {
		t.Errorf("true: exit=%d err=%v", exitCode, err)
	}

	exitCode, err = commander.Run(context.Background(), "exit 7", nil)
	if err != nil {
		t.Fatalf("exit 7: %v", err)
	}
	if exitCode != 7 {
		t.Errorf("exit code = %d, want 7", exitCode)
	}
}

func TestShellCommanderEnv(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	commander := &ShellCommander{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	exitCode, err := commander.Run(context.Background(), `printf '%s' "$STEP_TOKEN"`, map[string]string{
		"STEP_TOKEN": "injected-value",
	})
	if err != nil || exitCode != 0 {
		t.Fatalf("exit=%d err=%v", exitCode, err)
	}
	if stdout.String() != "injected-value" {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestShellCommanderCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	commander := &ShellCommander{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	start := time.Now()
	_, err := commander.Run(ctx, "sleep 30", nil)
	if err == nil {
		t.Fatal("expected error from cancelled command")
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("cancellation took %v, process group kill did not work", elapsed)
	}
}

func TestTaskSetQuoting(t *testing.T) {
	t.Parallel()

	tasks := DefaultTasks()

	command, err := tasks["UseRuntimeVersion"](map[string]string{"versionSpec": "3.7; rm -rf /"})
	if err != nil {
		t.Fatalf("task: %v", err)
	}
	if !strings.Contains(command, `'3.7; rm -rf /'`) {
		t.Errorf("versionSpec not quoted: %q", command)
	}

	if _, err := tasks["UseRuntimeVersion"](nil); err == nil {
		t.Error("expected error for missing versionSpec")
	}
}
