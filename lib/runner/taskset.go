// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"fmt"
	"strings"

	"github.com/conveyor-ci/conveyor/lib/schema"
)

// TaskFunc translates a task step's inputs into the shell command
// that performs the tool invocation.
type TaskFunc func(inputs map[string]string) (string, error)

// TaskSet maps task names (the part before the @ in a task reference)
// to their translations. Task versions are accepted but not
// dispatched on: the agent image provides whichever tool version it
// provides, and the reference's version is informational.
type TaskSet map[string]TaskFunc

// DefaultTasks returns the built-in task set.
//
// UseRuntimeVersion delegates to the managed runtime provisioner: an
// external "runtime-select" executable on the agent image's PATH that
// selects an interpreter by version string. The provisioner's
// behavior (download, PATH rewiring) is entirely its own; the task
// only supplies the version argument from the versionSpec input.
func DefaultTasks() TaskSet {
	return TaskSet{
		"UseRuntimeVersion": func(inputs map[string]string) (string, error) {
			versionSpec := inputs["versionSpec"]
			if versionSpec == "" {
				return "", fmt.Errorf("UseRuntimeVersion requires a versionSpec input")
			}
			return "runtime-select " + shellQuote(versionSpec), nil
		},
	}
}

// Command resolves a task step to its shell command.
func (t TaskSet) Command(step schema.Step) (string, error) {
	name, _, err := step.TaskName()
	if err != nil {
		return "", err
	}
	task, exists := t[name]
	if !exists {
		return "", fmt.Errorf("unknown task %q", name)
	}
	return task(step.Inputs)
}

// shellQuote wraps a value in single quotes, escaping embedded single
// quotes, so task inputs cannot smuggle shell syntax into the
// generated command.
func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
