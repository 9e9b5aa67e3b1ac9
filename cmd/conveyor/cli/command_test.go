// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecuteDispatchesSubcommand(t *testing.T) {
	t.Parallel()

	var ran []string
	root := &Command{
		Name: "conveyor",
		Subcommands: []*Command{
			{
				Name: "pipeline",
				Subcommands: []*Command{
					{
						Name: "validate",
						Run: func(args []string) error {
							ran = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"pipeline", "validate", "file.yml"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(ran) != 1 || ran[0] != "file.yml" {
		t.Errorf("args = %v", ran)
	}
}

func TestExecuteUnknownSubcommand(t *testing.T) {
	t.Parallel()

	root := &Command{
		Name:        "conveyor",
		Subcommands: []*Command{{Name: "pipeline"}},
	}
	err := root.Execute([]string{"pypeline"})
	if err == nil || !strings.Contains(err.Error(), `unknown command "pypeline"`) {
		t.Fatalf("err = %v", err)
	}
}

func TestExecuteRequiresSubcommand(t *testing.T) {
	t.Parallel()

	root := &Command{
		Name:        "conveyor",
		Subcommands: []*Command{{Name: "pipeline"}},
	}
	if err := root.Execute(nil); err == nil {
		t.Fatal("expected error with no subcommand")
	}
}

func TestExecuteParsesFlags(t *testing.T) {
	t.Parallel()

	var store string
	var positional []string
	command := &Command{
		Name: "run",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
			flags.StringVar(&store, "store", "", "run store directory")
			return flags
		},
		Run: func(args []string) error {
			positional = args
			return nil
		},
	}

	if err := command.Execute([]string{"--store", "/tmp/runs", "pipeline.yml"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if store != "/tmp/runs" {
		t.Errorf("store = %q", store)
	}
	if len(positional) != 1 || positional[0] != "pipeline.yml" {
		t.Errorf("positional = %v", positional)
	}

	if err := command.Execute([]string{"--no-such-flag"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestHelpDoesNotRun(t *testing.T) {
	t.Parallel()

	command := &Command{
		Name: "validate",
		Run: func(args []string) error {
			return errors.New("should not run")
		},
	}
	if err := command.Execute([]string{"--help"}); err != nil {
		t.Fatalf("help should succeed without running: %v", err)
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	err := &ExitError{Code: 1}
	var coder interface{ ExitCode() int }
	if !errors.As(err, &coder) {
		t.Fatal("ExitError should expose ExitCode")
	}
	if coder.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d", coder.ExitCode())
	}
}
