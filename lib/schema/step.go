// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"strings"
)

// StepKind identifies which variant of the step union is set.
type StepKind string

const (
	// StepTask is a tool invocation referenced as Name@version with
	// a key/value input map (e.g. the runtime provisioner).
	StepTask StepKind = "task"

	// StepScript is a single-line shell command.
	StepScript StepKind = "script"

	// StepBash is a multi-line shell script. Functionally identical
	// to StepScript at execution time; kept distinct because the
	// document schema distinguishes them.
	StepBash StepKind = "bash"

	// StepNone means no action key was set. Validation rejects it.
	StepNone StepKind = ""
)

// Step is one executable unit within a run. Exactly one of Task,
// Script, or Bash must be set:
//   - Task: delegate to a named tool (see runner.TaskSet)
//   - Script: run a shell command line
//   - Bash: run a multi-line shell script
type Step struct {
	// Task references a tool as "Name@version" (e.g.
	// "UseRuntimeVersion@0"). Mutually exclusive with Script and
	// Bash.
	Task string `yaml:"task,omitempty"`

	// Inputs are the task's key/value parameters. Only valid on
	// task steps. Values may contain $(name) macros bound at
	// matrix expansion time.
	Inputs map[string]string `yaml:"inputs,omitempty"`

	// Script is a shell command executed via sh -c. Mutually
	// exclusive with Task and Bash.
	Script string `yaml:"script,omitempty"`

	// Bash is a multi-line shell script executed via sh -c.
	// Mutually exclusive with Task and Script.
	Bash string `yaml:"bash,omitempty"`

	// DisplayName labels the step in logs and results. Optional;
	// when empty a label is derived from the action.
	DisplayName string `yaml:"displayName,omitempty"`

	// Env is exported into this step's child process environment
	// only. Values of the form $(name) are indirection references
	// resolved from the secret resolver at execution time; a
	// reference that cannot be resolved fails the step. Steps never
	// observe each other's env: each step's environment is built
	// fresh.
	Env map[string]string `yaml:"env,omitempty"`

	// Condition gates execution: "succeeded()" (the default when
	// empty) runs the step only while no earlier step has failed,
	// "always()" runs it regardless, "failed()" runs it only after
	// a failure.
	Condition string `yaml:"condition,omitempty"`

	// ContinueOnError records a non-zero exit without failing the
	// run. No step in the descriptors this was built for sets it,
	// but the document schema defines it.
	ContinueOnError bool `yaml:"continueOnError,omitempty"`

	// TimeoutMinutes bounds the step's wall-clock time. Zero means
	// the runner default applies.
	TimeoutMinutes int `yaml:"timeoutInMinutes,omitempty"`
}

// Kind returns which variant of the step union is set. When several
// action keys are set (invalid, caught by Validate) the first in
// task/script/bash order wins.
func (s *Step) Kind() StepKind {
	switch {
	case s.Task != "":
		return StepTask
	case s.Script != "":
		return StepScript
	case s.Bash != "":
		return StepBash
	default:
		return StepNone
	}
}

// Command returns the shell text for script and bash steps, and the
// empty string for task steps (tasks resolve through a TaskSet).
func (s *Step) Command() string {
	if s.Script != "" {
		return s.Script
	}
	return s.Bash
}

// Label returns the step's display name, falling back to a compact
// description of the action so every step has a usable log label.
func (s *Step) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	switch s.Kind() {
	case StepTask:
		return s.Task
	case StepScript:
		return firstLine(s.Script)
	case StepBash:
		return firstLine(s.Bash)
	default:
		return "(empty step)"
	}
}

// TaskName splits the Task reference into its name and version parts.
// Returns an error if the reference is not of the form Name@version.
func (s *Step) TaskName() (name, version string, err error) {
	name, version, found := strings.Cut(s.Task, "@")
	if !found || name == "" || version == "" {
		return "", "", fmt.Errorf("task reference %q must be of the form Name@version", s.Task)
	}
	return name, version, nil
}

// firstLine returns the first non-empty line of a script, trimmed,
// for use as a fallback display label.
func firstLine(script string) string {
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			return trimmed
		}
	}
	return ""
}
