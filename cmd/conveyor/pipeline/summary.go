// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/conveyor-ci/conveyor/lib/runner"
	"github.com/conveyor-ci/conveyor/lib/schema"
)

var (
	succeededStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderSummary writes the per-run status table shown after all runs
// finish. With colored false (stdout is not a terminal) the same text
// is written unstyled, so piped output stays clean.
func renderSummary(w io.Writer, results []runner.Result, colored bool) {
	fmt.Fprintf(w, "\nsummary:\n")
	failures := 0
	for _, result := range results {
		status := string(result.Status)
		detail := dimStyle.Render(fmt.Sprintf("(%d steps, %s)",
			len(result.Steps), result.Duration.Round(time.Millisecond)))
		if colored {
			switch result.Status {
			case schema.RunSucceeded:
				status = succeededStyle.Render(status)
			case schema.RunFailed:
				status = failedStyle.Render(status)
			}
		} else {
			detail = fmt.Sprintf("(%d steps, %s)",
				len(result.Steps), result.Duration.Round(time.Millisecond))
		}

		fmt.Fprintf(w, "  %-30s %s %s\n", result.Run, status, detail)
		if result.Status == schema.RunFailed {
			failures++
			if failure := result.FirstFailure(); failure != nil {
				fmt.Fprintf(w, "  %-30s failed step: %s: %s\n", "", failure.Label, failure.Error)
			}
		}
	}
	fmt.Fprintf(w, "\n%d run(s), %d failed\n", len(results), failures)
}
