// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

// Package pipeline implements the "conveyor pipeline" command group:
// validating, expanding, trigger-checking, fingerprinting, and running
// pipeline descriptors.
package pipeline

import (
	"github.com/conveyor-ci/conveyor/cmd/conveyor/cli"
)

// Command returns the "pipeline" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "pipeline",
		Summary: "Work with pipeline descriptors",
		Description: `Work with pipeline descriptor files.

A descriptor declares trigger rules (which branch and tag pushes start
the pipeline), a build matrix (named combinations of OS image and
runtime version), and an ordered list of steps. Descriptors are
authored as YAML, or as JSONC (JSON with comments and trailing
commas) using the .jsonc extension.

The pipeline commands are local: they parse, check, and execute the
descriptor on this machine. Matrix entries expand to independent runs
that share no state; "conveyor pipeline run" executes them one after
another and records each run's result and log in the run store.`,
		Subcommands: []*cli.Command{
			validateCommand(),
			expandCommand(),
			triggerCommand(),
			fingerprintCommand(),
			runCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Validate a descriptor",
				Command:     "conveyor pipeline validate ci.yml",
			},
			{
				Description: "Show the concrete runs a matrix expands to",
				Command:     "conveyor pipeline expand ci.yml",
			},
			{
				Description: "Check whether a tag push would trigger",
				Command:     "conveyor pipeline trigger ci.yml refs/tags/v1.2.0",
			},
			{
				Description: "Execute all matrix runs with a secret file",
				Command:     "conveyor pipeline run ci.yml --secrets /etc/conveyor/secrets.yml",
			},
		},
	}
}
