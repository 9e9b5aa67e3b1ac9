// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"time"

	"github.com/conveyor-ci/conveyor/lib/schema"
)

// Result is the outcome of executing one concrete run. It is a plain
// record (errors are carried as strings) so run stores can persist it
// as-is.
type Result struct {
	// Run is the ConcreteRun's name.
	Run string `cbor:"run"`

	// ImageName is the image the run was declared for.
	ImageName string `cbor:"image_name"`

	// Status is the run's terminal state: succeeded iff every
	// executed step exited zero.
	Status schema.RunStatus `cbor:"status"`

	// Steps has one entry per descriptor step, including skipped
	// ones, in declaration order.
	Steps []StepResult `cbor:"steps"`

	// StartTime is when execution began.
	StartTime time.Time `cbor:"start_time"`

	// Duration is total wall-clock time for the run.
	Duration time.Duration `cbor:"duration"`
}

// StepResult is the outcome of a single step.
type StepResult struct {
	// Label is the step's display label.
	Label string `cbor:"label"`

	// Status is ok, failed, or skipped.
	Status schema.StepStatus `cbor:"status"`

	// ExitCode is the step process's exit code. Zero for skipped
	// steps and steps that never spawned; -1 when the process was
	// cut short before producing an exit code.
	ExitCode int `cbor:"exit_code"`

	// Duration is the step's wall-clock time.
	Duration time.Duration `cbor:"duration"`

	// Error describes why the step failed, empty otherwise.
	Error string `cbor:"error,omitempty"`
}

// FirstFailure returns the first failed step, or nil if none failed.
func (r *Result) FirstFailure() *StepResult {
	for i := range r.Steps {
		if r.Steps[i].Status == schema.StepFailed {
			return &r.Steps[i]
		}
	}
	return nil
}
