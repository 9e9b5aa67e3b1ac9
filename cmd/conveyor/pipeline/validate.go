// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"
	"os"

	"github.com/conveyor-ci/conveyor/cmd/conveyor/cli"
	"github.com/conveyor-ci/conveyor/lib/pipelinedef"
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Summary: "Check a descriptor file for problems",
		Usage:   "conveyor pipeline validate <file>",
		Description: `Parse a descriptor file and check it against the schema.

All validation issues are reported at once, one per line, so a broken
descriptor can be fixed in a single pass. Exit code 0 means the file
is a valid pipeline; 1 means it is not.`,
		Run: runValidate,
	}
}

func runValidate(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: conveyor pipeline validate <file>")
	}
	path := args[0]

	descriptor, err := pipelinedef.ReadFile(path)
	if err != nil {
		return err
	}

	issues := pipelinedef.Validate(descriptor)
	if len(issues) == 0 {
		fmt.Printf("%s: ok (%d jobs)\n", path, len(descriptor.Jobs))
		if descriptor.Trigger.IsZero() {
			fmt.Println("note: no trigger patterns declared; the pipeline never triggers on a push")
		}
		return nil
	}

	fmt.Fprintf(os.Stderr, "%s: %d issue(s):\n", path, len(issues))
	for _, issue := range issues {
		fmt.Fprintf(os.Stderr, "  - %s\n", issue)
	}
	return &cli.ExitError{Code: 1}
}
