// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "fmt"

// RunStatus is the lifecycle state of a concrete run. The state
// machine is deliberately small: Pending → Running → Succeeded or
// Failed, terminal on the first failing step or completion of the
// last one. Cancellation lands on Failed without running later steps.
type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// Terminal reports whether the status is an end state.
func (s RunStatus) Terminal() bool {
	return s == RunSucceeded || s == RunFailed
}

// ParseRunStatus parses the string form of a RunStatus, as stored in
// run records.
func ParseRunStatus(value string) (RunStatus, error) {
	switch RunStatus(value) {
	case RunPending, RunRunning, RunSucceeded, RunFailed:
		return RunStatus(value), nil
	default:
		return "", fmt.Errorf("unknown run status %q", value)
	}
}

// StepStatus is the outcome of a single step within a run.
type StepStatus string

const (
	// StepOK means the step's process exited zero (or the step's
	// non-zero exit was absorbed by continueOnError).
	StepOK StepStatus = "ok"

	// StepFailed means the step's process exited non-zero, its
	// environment could not be resolved, or it was cancelled.
	StepFailed StepStatus = "failed"

	// StepSkipped means the step's condition gated it out (the
	// default succeeded() condition after an earlier failure).
	StepSkipped StepStatus = "skipped"
)
