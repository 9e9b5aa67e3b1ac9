// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import "fmt"

// shouldRun evaluates a step's condition against the run state so
// far. The empty condition is succeeded(): run only while the run is
// still green. This is what makes the run fail fast: after the first
// failure, default-conditioned steps are skipped, not executed.
// always() opts a step out of fail-fast (cleanup, log upload);
// failed() inverts the default (failure handlers).
//
// Unrecognized predicates are an error rather than a skip: validation
// rejects them up front, and silently skipping a step on a typo would
// be the worst possible behavior.
func shouldRun(condition string, runFailed bool) (bool, error) {
	switch condition {
	case "", "succeeded()":
		return !runFailed, nil
	case "always()":
		return true, nil
	case "failed()":
		return runFailed, nil
	default:
		return false, fmt.Errorf("unrecognized condition %q", condition)
	}
}
