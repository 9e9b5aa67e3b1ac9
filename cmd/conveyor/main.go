// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

// Command conveyor is the Conveyor CLI: validate, expand,
// trigger-check, fingerprint, and run pipeline descriptors.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/conveyor-ci/conveyor/cmd/conveyor/commands"
)

func main() {
	if err := commands.Root().Execute(os.Args[1:]); err != nil {
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			// The command already printed its outcome.
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "conveyor: %v\n", err)
		os.Exit(1)
	}
}
