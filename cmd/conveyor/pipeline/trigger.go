// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"

	"github.com/conveyor-ci/conveyor/cmd/conveyor/cli"
	"github.com/conveyor-ci/conveyor/lib/pipelinedef"
)

func triggerCommand() *cli.Command {
	return &cli.Command{
		Name:    "trigger",
		Summary: "Check whether a ref push would trigger the pipeline",
		Usage:   "conveyor pipeline trigger <file> <ref>",
		Description: `Evaluate the descriptor's trigger rules against a ref.

The ref may be fully qualified (refs/tags/v1.2.0, refs/heads/main) or
bare (v1.2.0, main); bare refs are tried against both the tag and
branch filters. Exit code 0 means the ref triggers; 1 means it does
not.`,
		Examples: []cli.Example{
			{
				Description: "A release tag",
				Command:     "conveyor pipeline trigger ci.yml refs/tags/v1.2.0",
			},
			{
				Description: "A feature branch",
				Command:     "conveyor pipeline trigger ci.yml refs/heads/feature/x",
			},
		},
		Run: runTrigger,
	}
}

func runTrigger(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: conveyor pipeline trigger <file> <ref>")
	}
	path, ref := args[0], args[1]

	descriptor, err := pipelinedef.Load(path)
	if err != nil {
		return err
	}

	if descriptor.Trigger.Matches(ref) {
		fmt.Printf("%s triggers\n", ref)
		return nil
	}
	fmt.Printf("%s does not trigger\n", ref)
	return &cli.ExitError{Code: 1}
}
