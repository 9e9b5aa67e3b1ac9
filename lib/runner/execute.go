// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/conveyor-ci/conveyor/lib/schema"
	"github.com/conveyor-ci/conveyor/lib/secret"
)

// defaultStepTimeout is used when a step does not declare
// timeoutInMinutes.
const defaultStepTimeout = 5 * time.Minute

// Options configures Execute. The zero value executes through the
// shell with no secrets and no output.
type Options struct {
	// Commander runs step commands. Nil means a ShellCommander
	// writing to the runner's own stdout/stderr.
	Commander Commander

	// Tasks translates task steps. Nil means DefaultTasks().
	Tasks TaskSet

	// Secrets resolves $(name) indirections in step env values.
	// Nil means secret.Empty: every indirection fails its step.
	Secrets secret.Resolver

	// Progress receives the per-step "[pipeline] step i/n" lines.
	// Nil means io.Discard.
	Progress io.Writer

	// Logger receives structured step events. Nil discards them.
	Logger *slog.Logger

	// DefaultTimeout bounds steps without their own timeout. Zero
	// means defaultStepTimeout.
	DefaultTimeout time.Duration
}

// Execute runs a ConcreteRun's steps in strict declaration order.
//
// Fail-fast: the first step whose process exits non-zero (or whose
// environment cannot be resolved) marks the run failed; remaining
// steps gated on the default succeeded() condition are recorded as
// skipped without executing. always() and failed() steps still run.
// A step with continueOnError records its exit code but leaves the
// run green.
//
// Cancellation of ctx fails the in-flight step and stops the run
// immediately; even always() steps do not run after cancellation.
//
// Each step's environment is built fresh: the run's matrix variables
// (exported under their envName form) plus the step's own env map
// with secret indirections resolved. Nothing a step puts in its
// process environment is visible to any other step.
func Execute(ctx context.Context, run ConcreteRun, options Options) Result {
	commander := options.Commander
	if commander == nil {
		commander = &ShellCommander{}
	}
	tasks := options.Tasks
	if tasks == nil {
		tasks = DefaultTasks()
	}
	secrets := options.Secrets
	if secrets == nil {
		secrets = secret.Empty
	}
	progress := options.Progress
	if progress == nil {
		progress = io.Discard
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	defaultTimeout := options.DefaultTimeout
	if defaultTimeout == 0 {
		defaultTimeout = defaultStepTimeout
	}

	result := Result{
		Run:       run.Name,
		ImageName: run.ImageName,
		Status:    schema.RunRunning,
		StartTime: time.Now(),
		Steps:     make([]StepResult, 0, len(run.Steps)),
	}
	logger = logger.With("run", run.Name, "image", run.ImageName)
	logger.Info("run starting", "steps", len(run.Steps))

	runFailed := false
	total := len(run.Steps)
	for index, step := range run.Steps {
		label := step.Label()

		if ctx.Err() != nil {
			// Cancelled between steps: nothing further runs, not
			// even always() steps. Record the remainder as skipped.
			runFailed = true
			result.Steps = append(result.Steps, StepResult{Label: label, Status: schema.StepSkipped})
			continue
		}

		runStep, err := shouldRun(step.Condition, runFailed)
		if err != nil {
			// Validation rejects unknown conditions; fail loud if
			// one slips through.
			runFailed = true
			result.Steps = append(result.Steps, StepResult{
				Label:  label,
				Status: schema.StepFailed,
				Error:  err.Error(),
			})
			continue
		}
		if !runStep {
			fmt.Fprintf(progress, "[pipeline] step %d/%d: %s... skipped\n", index+1, total, label)
			logger.Info("step skipped", "step", label)
			result.Steps = append(result.Steps, StepResult{Label: label, Status: schema.StepSkipped})
			continue
		}

		stepResult := executeStep(ctx, step, run, commander, tasks, secrets, defaultTimeout)
		stepResult.Label = label
		result.Steps = append(result.Steps, stepResult)

		switch stepResult.Status {
		case schema.StepOK:
			suffix := ""
			if stepResult.ExitCode != 0 {
				suffix = fmt.Sprintf(" (exit %d, continued)", stepResult.ExitCode)
			}
			fmt.Fprintf(progress, "[pipeline] step %d/%d: %s... ok%s (%s)\n",
				index+1, total, label, suffix, stepResult.Duration.Round(time.Millisecond))
			logger.Info("step ok", "step", label, "exit_code", stepResult.ExitCode, "duration", stepResult.Duration)
		case schema.StepFailed:
			runFailed = true
			fmt.Fprintf(progress, "[pipeline] step %d/%d: %s... failed: %s\n",
				index+1, total, label, stepResult.Error)
			logger.Error("step failed", "step", label, "exit_code", stepResult.ExitCode, "error", stepResult.Error)
		}
	}

	result.Duration = time.Since(result.StartTime)
	if runFailed {
		result.Status = schema.RunFailed
	} else {
		result.Status = schema.RunSucceeded
	}
	logger.Info("run finished", "status", string(result.Status), "duration", result.Duration)
	return result
}

// executeStep resolves one step's command and environment and runs it.
func executeStep(ctx context.Context, step schema.Step, run ConcreteRun, commander Commander, tasks TaskSet, secrets secret.Resolver, defaultTimeout time.Duration) StepResult {
	startTime := time.Now()

	command, err := stepCommand(step, tasks)
	if err != nil {
		return StepResult{
			Status:   schema.StepFailed,
			Duration: time.Since(startTime),
			Error:    err.Error(),
		}
	}

	env, err := stepEnvironment(step, run, secrets)
	if err != nil {
		// A missing secret is fatal to the step that needs it, and
		// only that step.
		return StepResult{
			Status:   schema.StepFailed,
			Duration: time.Since(startTime),
			Error:    err.Error(),
		}
	}

	timeout := defaultTimeout
	if step.TimeoutMinutes > 0 {
		timeout = time.Duration(step.TimeoutMinutes) * time.Minute
	}
	stepContext, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	exitCode, err := commander.Run(stepContext, command, env)
	duration := time.Since(startTime)
	switch {
	case err != nil:
		return StepResult{
			Status:   schema.StepFailed,
			ExitCode: exitCode,
			Duration: duration,
			Error:    err.Error(),
		}
	case exitCode != 0 && !step.ContinueOnError:
		return StepResult{
			Status:   schema.StepFailed,
			ExitCode: exitCode,
			Duration: duration,
			Error:    fmt.Sprintf("exit code %d", exitCode),
		}
	default:
		return StepResult{
			Status:   schema.StepOK,
			ExitCode: exitCode,
			Duration: duration,
		}
	}
}

// stepCommand returns the shell command for a step: task steps
// translate through the task set, script and bash steps run verbatim.
func stepCommand(step schema.Step, tasks TaskSet) (string, error) {
	if step.Kind() == schema.StepTask {
		return tasks.Command(step)
	}
	command := step.Command()
	if command == "" {
		return "", fmt.Errorf("step has no command")
	}
	return command, nil
}

// stepEnvironment builds a step's environment: the run's matrix
// variables under their exported names, then the step's own env with
// whole-value $(name) references resolved through the secret
// resolver. The map is built fresh per step; steps share nothing.
func stepEnvironment(step schema.Step, run ConcreteRun, secrets secret.Resolver) (map[string]string, error) {
	env := make(map[string]string, len(run.Variables)+len(step.Env))
	for name, value := range run.Variables {
		env[envName(name)] = value
	}
	for name, value := range step.Env {
		if secretName, isReference := secretReference(value); isReference {
			resolved, err := secrets.Resolve(secretName)
			if err != nil {
				return nil, fmt.Errorf("resolving env %s: %w", name, err)
			}
			env[name] = resolved
			continue
		}
		env[name] = value
	}
	return env, nil
}
