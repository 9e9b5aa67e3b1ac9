// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

// Package runner expands a pipeline descriptor's build matrix into
// concrete runs and executes runs step by step.
//
// Expansion binds each matrix entry's variables into the job's pool
// and step fields, producing one self-contained ConcreteRun per entry.
// Runs share no mutable state: callers may execute them sequentially
// or concurrently with identical observable outcomes.
//
// Execution is strictly sequential within a run and fails fast: the
// first step whose process exits non-zero marks the run failed, and
// remaining steps gated on the default succeeded() condition are
// skipped. Step environments are built fresh per step; a step never
// observes another step's environment. Secret indirections in step
// env values resolve through an explicit secret.Resolver, never
// through ambient process state.
package runner
