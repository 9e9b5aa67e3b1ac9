// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"github.com/conveyor-ci/conveyor/lib/schema"
)

// ConcreteRun is one matrix entry bound into a job: the image, the
// entry's variables, and the step list with $(variable) macros already
// substituted. Runs are independent of each other and of the
// descriptor they came from (all data is copied during expansion).
type ConcreteRun struct {
	// Name identifies the run: the matrix entry name, qualified by
	// the job name when the job has one ("test/linux_py37").
	Name string

	// ImageName is the OS image the run executes on, after macro
	// substitution of the job's pool.vmImage.
	ImageName string

	// Variables are the matrix entry's bindings. They are exported
	// into every step's environment (see envName for the name
	// mapping) in addition to having been substituted into step
	// fields.
	Variables map[string]string

	// Steps is the run's step sequence in declaration order.
	Steps []schema.Step
}

// Expand produces the concrete runs for a descriptor: one run per
// (job, matrix entry) pair, in declaration order. A job without a
// matrix yields exactly one run. The total equals the sum of per-job
// matrix sizes; with the conventional single job this is one run per
// entry.
//
// Each run gets its own copies of the entry variables and steps, so
// no state is shared between runs or with the descriptor.
func Expand(descriptor *schema.Descriptor) []ConcreteRun {
	var runs []ConcreteRun
	for _, job := range descriptor.Jobs {
		if len(job.Strategy.Matrix) == 0 {
			runs = append(runs, bindRun(job, schema.MatrixEntry{}))
			continue
		}
		for _, entry := range job.Strategy.Matrix {
			runs = append(runs, bindRun(job, entry))
		}
	}
	return runs
}

// bindRun binds one matrix entry into a job, substituting the entry's
// variables into the pool image and every step's string fields.
func bindRun(job schema.Job, entry schema.MatrixEntry) ConcreteRun {
	variables := make(map[string]string, len(entry.Variables))
	for name, value := range entry.Variables {
		variables[name] = value
	}

	steps := make([]schema.Step, len(job.Steps))
	for i, step := range job.Steps {
		steps[i] = bindStep(step, variables)
	}

	return ConcreteRun{
		Name:      runName(job, entry),
		ImageName: expandMacros(job.Pool.VMImage, variables),
		Variables: variables,
		Steps:     steps,
	}
}

// bindStep returns a copy of step with variables substituted into all
// string fields. Env values are substituted too: values that are
// secret indirections survive untouched because their names are not
// matrix variables.
func bindStep(step schema.Step, variables map[string]string) schema.Step {
	bound := step
	bound.Task = expandMacros(step.Task, variables)
	bound.Script = expandMacros(step.Script, variables)
	bound.Bash = expandMacros(step.Bash, variables)
	bound.DisplayName = expandMacros(step.DisplayName, variables)

	if len(step.Inputs) > 0 {
		bound.Inputs = make(map[string]string, len(step.Inputs))
		for key, value := range step.Inputs {
			bound.Inputs[key] = expandMacros(value, variables)
		}
	}
	if len(step.Env) > 0 {
		bound.Env = make(map[string]string, len(step.Env))
		for key, value := range step.Env {
			bound.Env[key] = expandMacros(value, variables)
		}
	}
	return bound
}

// runName derives a run's name from its job and matrix entry.
func runName(job schema.Job, entry schema.MatrixEntry) string {
	switch {
	case job.Name != "" && entry.Name != "":
		return job.Name + "/" + entry.Name
	case entry.Name != "":
		return entry.Name
	case job.Name != "":
		return job.Name
	default:
		return "default"
	}
}
