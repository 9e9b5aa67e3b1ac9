// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the Conveyor CLI.
//
// Configuration is loaded from a single file specified by:
//   - CONVEYOR_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This keeps runner
// behavior deterministic and auditable: the config in effect is
// always the one named explicitly.
//
// The config file may contain environment-specific sections
// (development, staging, production) that override base values when
// the environment matches.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the Conveyor runner configuration.
type Config struct {
	// Environment identifies the deployment type.
	Environment Environment `yaml:"environment"`

	// Runner configures step execution defaults.
	Runner RunnerConfig `yaml:"runner"`

	// Store configures run record persistence.
	Store StoreConfig `yaml:"store"`

	// Secrets configures secret resolution.
	Secrets SecretsConfig `yaml:"secrets"`

	// Per-environment overrides, applied after the base config.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per
// environment.
type ConfigOverrides struct {
	Runner  *RunnerConfig  `yaml:"runner,omitempty"`
	Store   *StoreConfig   `yaml:"store,omitempty"`
	Secrets *SecretsConfig `yaml:"secrets,omitempty"`
}

// RunnerConfig configures step execution.
type RunnerConfig struct {
	// Shell is the interpreter for script and bash steps.
	// Default: sh
	Shell string `yaml:"shell"`

	// StepTimeoutMinutes bounds steps that declare no timeout.
	// Default: 5
	StepTimeoutMinutes int `yaml:"step_timeout_minutes"`
}

// StoreConfig configures the run record store.
type StoreConfig struct {
	// Directory is the store root.
	// Default: ./conveyor-runs
	Directory string `yaml:"directory"`

	// Compression is the log compression algorithm: none, lz4, or
	// zstd. Default: zstd
	Compression string `yaml:"compression"`
}

// SecretsConfig configures secret resolution.
type SecretsConfig struct {
	// File is the path to the flat YAML secret file. Empty means no
	// secret store: every $(name) indirection fails its step.
	File string `yaml:"file"`
}

// Default returns the development-environment defaults.
func Default() *Config {
	return &Config{
		Environment: Development,
		Runner: RunnerConfig{
			Shell:              "sh",
			StepTimeoutMinutes: 5,
		},
		Store: StoreConfig{
			Directory:   "./conveyor-runs",
			Compression: "zstd",
		},
	}
}

// Load reads the config file named by CONVEYOR_CONFIG, applies
// defaults for unset fields, and applies the override section for the
// configured environment.
func Load() (*Config, error) {
	path := os.Getenv("CONVEYOR_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("CONVEYOR_CONFIG environment variable not set (or pass --config)")
	}
	return LoadFile(path)
}

// LoadFile reads the named config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	var overrides *ConfigOverrides
	switch cfg.Environment {
	case Development:
		overrides = cfg.Development
	case Staging:
		overrides = cfg.Staging
	case Production:
		overrides = cfg.Production
	case "":
		cfg.Environment = Development
		overrides = cfg.Development
	default:
		return nil, fmt.Errorf("config %s: unknown environment %q", path, cfg.Environment)
	}
	cfg.apply(overrides)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// apply overlays an override section onto the config.
func (c *Config) apply(overrides *ConfigOverrides) {
	if overrides == nil {
		return
	}
	if overrides.Runner != nil {
		c.Runner = *overrides.Runner
	}
	if overrides.Store != nil {
		c.Store = *overrides.Store
	}
	if overrides.Secrets != nil {
		c.Secrets = *overrides.Secrets
	}
}

// validate rejects configs that would fail at first use.
func (c *Config) validate() error {
	if c.Runner.Shell == "" {
		return fmt.Errorf("runner.shell must not be empty")
	}
	if c.Runner.StepTimeoutMinutes <= 0 {
		return fmt.Errorf("runner.step_timeout_minutes must be positive")
	}
	if c.Store.Directory == "" {
		return fmt.Errorf("store.directory must not be empty")
	}
	switch c.Store.Compression {
	case "none", "lz4", "zstd":
	default:
		return fmt.Errorf("store.compression must be none, lz4, or zstd (got %q)", c.Store.Compression)
	}
	return nil
}
