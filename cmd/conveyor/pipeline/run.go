// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/conveyor-ci/conveyor/cmd/conveyor/cli"
	"github.com/conveyor-ci/conveyor/lib/config"
	"github.com/conveyor-ci/conveyor/lib/pipelinedef"
	"github.com/conveyor-ci/conveyor/lib/runner"
	"github.com/conveyor-ci/conveyor/lib/runstore"
	"github.com/conveyor-ci/conveyor/lib/schema"
	"github.com/conveyor-ci/conveyor/lib/secret"
)

var runFlags struct {
	run     string
	secrets string
	store   string
	vars    []string
	config  string
	verbose bool
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:    "run",
		Summary: "Execute a descriptor's runs on this machine",
		Usage:   "conveyor pipeline run <file> [flags]",
		Description: `Expand the descriptor's matrix and execute the resulting runs, one
after another, in declaration order. Each run's steps execute
sequentially and fail fast: the first failing step fails the run and
the remaining steps are skipped (unless gated on always() or
failed()). A failed run does not stop later runs.

Every run's result and captured output are recorded in the run store.
Exit code 0 means all runs succeeded; 1 means at least one failed.`,
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
			flags.StringVar(&runFlags.run, "run", "",
				"execute only the named run (as printed by expand)")
			flags.StringVar(&runFlags.secrets, "secrets", "",
				"path to a YAML secret file for $(name) env references")
			flags.StringVar(&runFlags.store, "store", "",
				"run store directory (overrides config)")
			flags.StringArrayVar(&runFlags.vars, "var", nil,
				"extra NAME=VALUE variable exported to every step (repeatable)")
			flags.StringVar(&runFlags.config, "config", "",
				"config file (overrides CONVEYOR_CONFIG)")
			flags.BoolVarP(&runFlags.verbose, "verbose", "v", false,
				"log structured step events to stderr")
			return flags
		},
		Examples: []cli.Example{
			{
				Description: "Execute a single matrix entry",
				Command:     "conveyor pipeline run ci.yml --run linux_py37",
			},
			{
				Description: "Inject an extra variable",
				Command:     "conveyor pipeline run ci.yml --var DEPLOY_TARGET=staging",
			},
		},
		Run: runRun,
	}
}

func runRun(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: conveyor pipeline run <file> [flags]")
	}

	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}

	descriptor, err := pipelinedef.Load(args[0])
	if err != nil {
		return err
	}

	runs := runner.Expand(descriptor)
	if runFlags.run != "" {
		runs, err = selectRun(runs, runFlags.run)
		if err != nil {
			return err
		}
	}

	extraVariables, err := parseVariables(runFlags.vars)
	if err != nil {
		return err
	}

	secrets, err := openSecrets(cfg)
	if err != nil {
		return err
	}

	storeDirectory := cfg.Store.Directory
	if runFlags.store != "" {
		storeDirectory = runFlags.store
	}
	store, err := runstore.Open(storeDirectory)
	if err != nil {
		return err
	}
	compression, err := runstore.ParseCompressionTag(cfg.Store.Compression)
	if err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if runFlags.verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	// SIGINT and SIGTERM cancel the in-flight step; remaining steps
	// and runs are recorded as skipped or not started.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := make([]runner.Result, 0, len(runs))
	for _, run := range runs {
		for name, value := range extraVariables {
			run.Variables[name] = value
		}

		fmt.Printf("=== run %s (image: %s) ===\n", run.Name, run.ImageName)
		var log bytes.Buffer
		result := runner.Execute(ctx, run, runner.Options{
			Commander: &runner.ShellCommander{
				Shell:  cfg.Runner.Shell,
				Stdout: io.MultiWriter(os.Stdout, &log),
				Stderr: io.MultiWriter(os.Stderr, &log),
			},
			Secrets:        secrets,
			Progress:       os.Stdout,
			Logger:         logger,
			DefaultTimeout: time.Duration(cfg.Runner.StepTimeoutMinutes) * time.Minute,
		})
		results = append(results, result)

		if err := store.Save(result, log.Bytes(), compression); err != nil {
			return fmt.Errorf("recording run %s: %w", result.Run, err)
		}
	}

	colored := term.IsTerminal(int(os.Stdout.Fd()))
	renderSummary(os.Stdout, results, colored)

	for _, result := range results {
		if result.Status != schema.RunSucceeded {
			return &cli.ExitError{Code: 1}
		}
	}
	return nil
}

// loadRunConfig picks the config source: --config flag first, then
// CONVEYOR_CONFIG, then built-in defaults.
func loadRunConfig() (*config.Config, error) {
	if runFlags.config != "" {
		return config.LoadFile(runFlags.config)
	}
	if os.Getenv("CONVEYOR_CONFIG") != "" {
		return config.Load()
	}
	return config.Default(), nil
}

// selectRun filters the expanded runs down to the one named by --run.
func selectRun(runs []runner.ConcreteRun, name string) ([]runner.ConcreteRun, error) {
	for _, run := range runs {
		if run.Name == name {
			return []runner.ConcreteRun{run}, nil
		}
	}
	available := make([]string, len(runs))
	for i, run := range runs {
		available[i] = run.Name
	}
	return nil, fmt.Errorf("no run named %q (available: %s)", name, strings.Join(available, ", "))
}

// parseVariables parses repeated --var NAME=VALUE flags.
func parseVariables(pairs []string) (map[string]string, error) {
	variables := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("--var %q: expected NAME=VALUE", pair)
		}
		variables[name] = value
	}
	return variables, nil
}

// openSecrets builds the secret resolver: the --secrets flag wins over
// the config file; with neither, every $(name) reference fails its
// step.
func openSecrets(cfg *config.Config) (secret.Resolver, error) {
	path := cfg.Secrets.File
	if runFlags.secrets != "" {
		path = runFlags.secrets
	}
	if path == "" {
		return secret.Empty, nil
	}
	fileStore, err := secret.OpenFileStore(path)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "loaded %d secret(s) from %s\n", fileStore.Len(), path)
	return fileStore, nil
}
