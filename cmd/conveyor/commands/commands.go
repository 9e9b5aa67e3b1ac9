// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the conveyor command tree.
package commands

import (
	"fmt"
	"runtime/debug"

	"github.com/conveyor-ci/conveyor/cmd/conveyor/cli"
	"github.com/conveyor-ci/conveyor/cmd/conveyor/pipeline"
)

// Root returns the top-level conveyor command.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "conveyor",
		Summary: "Local CI pipeline runner",
		Description: `Conveyor parses, validates, and executes CI pipeline descriptors:
YAML (or JSONC) files declaring trigger rules, a build matrix, and an
ordered list of steps.`,
		Subcommands: []*cli.Command{
			pipeline.Command(),
			versionCommand(),
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(args []string) error {
			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				fmt.Println("conveyor (unknown version)")
				return nil
			}
			fmt.Printf("conveyor %s\n", info.Main.Version)
			return nil
		},
	}
}
