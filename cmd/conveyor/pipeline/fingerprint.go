// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"

	"github.com/conveyor-ci/conveyor/cmd/conveyor/cli"
	"github.com/conveyor-ci/conveyor/lib/pipelinedef"
)

func fingerprintCommand() *cli.Command {
	return &cli.Command{
		Name:    "fingerprint",
		Summary: "Print a descriptor's content fingerprint",
		Usage:   "conveyor pipeline fingerprint <file>",
		Description: `Print the hex fingerprint of the descriptor's structure.

The fingerprint hashes the parsed descriptor, not the file bytes, so
it is stable across formatting, comments, and the YAML/JSONC choice.
Two files fingerprint equal iff they describe the same pipeline.`,
		Run: runFingerprint,
	}
}

func runFingerprint(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: conveyor pipeline fingerprint <file>")
	}

	descriptor, err := pipelinedef.ReadFile(args[0])
	if err != nil {
		return err
	}

	hash, err := pipelinedef.Fingerprint(descriptor)
	if err != nil {
		return err
	}
	fmt.Println(hash.Hex())
	return nil
}
