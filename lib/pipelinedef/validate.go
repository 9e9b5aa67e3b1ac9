// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package pipelinedef

import (
	"fmt"

	"github.com/conveyor-ci/conveyor/lib/schema"
)

// recognizedConditions are the step condition predicates the runner
// evaluates. Empty means the default, succeeded().
var recognizedConditions = map[string]bool{
	"":            true,
	"succeeded()": true,
	"always()":    true,
	"failed()":    true,
}

// Validate checks a descriptor for structural issues. Returns a list
// of human-readable issue descriptions; an empty list means the
// descriptor is valid.
//
// Structural checks include:
//   - At least one job, and at least one step per job
//   - Matrix entry names are unique and non-empty
//   - Every matrix entry declares imageName and a runtime version
//   - Each step sets exactly one of task, script, or bash
//   - Inputs are only valid on task steps
//   - Task references are of the form Name@version
//   - Conditions are recognized predicates
//   - Step timeouts are non-negative
//   - Trigger patterns are non-empty
func Validate(descriptor *schema.Descriptor) []string {
	issues := descriptor.Trigger.Validate()

	if len(descriptor.Jobs) == 0 {
		issues = append(issues, "pipeline has no jobs (at least one job with steps is required)")
	}

	for jobIndex, job := range descriptor.Jobs {
		prefix := fmt.Sprintf("jobs[%d]", jobIndex)
		if job.Name != "" {
			prefix = fmt.Sprintf("%s %q", prefix, job.Name)
		}
		issues = append(issues, validateJob(job, prefix)...)
	}

	return issues
}

// validateJob checks a single job: its matrix and its steps.
func validateJob(job schema.Job, prefix string) []string {
	var issues []string

	// Matrix entry names must be unique. Duplicate names would make
	// run names ambiguous and run records overwrite each other.
	entryNames := make(map[string]int, len(job.Strategy.Matrix))
	for index, entry := range job.Strategy.Matrix {
		entryPrefix := fmt.Sprintf("%s.strategy.matrix[%d]", prefix, index)

		if entry.Name == "" {
			issues = append(issues, fmt.Sprintf("%s: entry name must not be empty", entryPrefix))
		} else {
			entryPrefix = fmt.Sprintf("%s %q", entryPrefix, entry.Name)
			if firstIndex, exists := entryNames[entry.Name]; exists {
				issues = append(issues, fmt.Sprintf(
					"%s: duplicate entry name (first used at matrix[%d])", entryPrefix, firstIndex))
			} else {
				entryNames[entry.Name] = index
			}
		}

		if entry.ImageName() == "" {
			issues = append(issues, fmt.Sprintf("%s: imageName is required", entryPrefix))
		}
		if entry.RuntimeVersion() == "" {
			issues = append(issues, fmt.Sprintf("%s: a runtime version variable is required (\"version\" or \"<runtime>.version\")", entryPrefix))
		}
	}

	if len(job.Steps) == 0 {
		issues = append(issues, fmt.Sprintf("%s: has no steps (at least one step is required)", prefix))
	}
	for index, step := range job.Steps {
		stepPrefix := fmt.Sprintf("%s.steps[%d]", prefix, index)
		issues = append(issues, validateStep(step, stepPrefix)...)
	}

	return issues
}

// validateStep checks a single step for structural issues.
func validateStep(step schema.Step, prefix string) []string {
	var issues []string
	if step.DisplayName != "" {
		prefix = fmt.Sprintf("%s %q", prefix, step.DisplayName)
	}

	actionCount := 0
	for _, set := range []bool{step.Task != "", step.Script != "", step.Bash != ""} {
		if set {
			actionCount++
		}
	}
	switch {
	case actionCount == 0:
		issues = append(issues, fmt.Sprintf("%s: must set exactly one of task, script, or bash", prefix))
	case actionCount > 1:
		issues = append(issues, fmt.Sprintf("%s: task, script, and bash are mutually exclusive (set exactly one)", prefix))
	}

	if step.Task != "" {
		if _, _, err := step.TaskName(); err != nil {
			issues = append(issues, fmt.Sprintf("%s: %v", prefix, err))
		}
	} else if len(step.Inputs) > 0 {
		issues = append(issues, fmt.Sprintf("%s: inputs are only valid on task steps", prefix))
	}

	if !recognizedConditions[step.Condition] {
		issues = append(issues, fmt.Sprintf(
			"%s: unrecognized condition %q (supported: succeeded(), always(), failed())",
			prefix, step.Condition))
	}

	if step.TimeoutMinutes < 0 {
		issues = append(issues, fmt.Sprintf("%s: timeoutInMinutes must not be negative", prefix))
	}

	return issues
}
