// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"
	"sort"

	"github.com/conveyor-ci/conveyor/cmd/conveyor/cli"
	"github.com/conveyor-ci/conveyor/lib/pipelinedef"
	"github.com/conveyor-ci/conveyor/lib/runner"
)

func expandCommand() *cli.Command {
	return &cli.Command{
		Name:    "expand",
		Summary: "Show the concrete runs a descriptor expands to",
		Usage:   "conveyor pipeline expand <file>",
		Description: `Expand the descriptor's build matrix and print each concrete run:
its name, OS image, variable bindings, and step labels, in the order
the runs would execute. No steps are run.`,
		Run: runExpand,
	}
}

func runExpand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: conveyor pipeline expand <file>")
	}

	descriptor, err := pipelinedef.Load(args[0])
	if err != nil {
		return err
	}

	runs := runner.Expand(descriptor)
	fmt.Printf("%d run(s):\n", len(runs))
	for _, run := range runs {
		fmt.Printf("\n%s  (image: %s)\n", run.Name, run.ImageName)
		for _, name := range sortedVariableNames(run.Variables) {
			fmt.Printf("  %s = %s\n", name, run.Variables[name])
		}
		for i, step := range run.Steps {
			fmt.Printf("  step %d: %s\n", i+1, step.Label())
		}
	}
	return nil
}

// sortedVariableNames keeps the variable listing stable across runs of
// the command; map iteration order is not.
func sortedVariableNames(variables map[string]string) []string {
	names := make([]string, 0, len(variables))
	for name := range variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
