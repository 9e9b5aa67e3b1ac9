// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Descriptor is a parsed pipeline document. It owns the trigger rules
// and the job list, and is immutable after parsing: the orchestrator
// reads it once at load time and never mutates it.
type Descriptor struct {
	// Trigger decides which repository refs cause a pipeline run.
	// See TriggerSpec for the matching rules.
	Trigger TriggerSpec `yaml:"trigger"`

	// Jobs is the ordered list of jobs. Documents that declare a
	// top-level steps list instead of jobs are normalized into a
	// single anonymous job during unmarshalling.
	Jobs []Job `yaml:"jobs"`
}

// Job is one entry of the document's jobs list: a build matrix, an
// agent pool selector, and the ordered steps executed once per matrix
// entry.
type Job struct {
	// Name identifies the job in logs and run names. Optional when
	// the document has a single job.
	Name string `yaml:"job"`

	// Strategy holds the build matrix. A job without a matrix
	// expands to exactly one run.
	Strategy Strategy `yaml:"strategy"`

	// Pool selects the agent image. VMImage may reference matrix
	// variables with $(name) macros (the common pattern is
	// vmImage: $(imageName)).
	Pool Pool `yaml:"pool"`

	// Steps is the ordered step list. Steps execute strictly
	// sequentially within a run; at least one is required.
	Steps []Step `yaml:"steps"`
}

// Strategy holds a job's build matrix in declaration order.
type Strategy struct {
	Matrix []MatrixEntry
}

// Pool selects the agent environment a run executes on.
type Pool struct {
	// VMImage is the OS image name (e.g. "ubuntu-22.04", "macOS-13").
	VMImage string `yaml:"vmImage"`
}

// UnmarshalYAML decodes a Strategy. The matrix is a mapping of entry
// name to variable map; yaml.v3's map decoding would lose declaration
// order, so the node's content pairs are walked directly. Entries are
// conventionally processed in declaration order and Expand preserves
// it.
func (s *Strategy) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Matrix yaml.Node `yaml:"matrix"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.Matrix.IsZero() {
		return nil
	}
	if raw.Matrix.Kind != yaml.MappingNode {
		return fmt.Errorf("strategy.matrix must be a mapping of entry name to variables")
	}

	entries := make([]MatrixEntry, 0, len(raw.Matrix.Content)/2)
	for i := 0; i+1 < len(raw.Matrix.Content); i += 2 {
		nameNode := raw.Matrix.Content[i]
		valueNode := raw.Matrix.Content[i+1]

		var variables map[string]string
		if err := valueNode.Decode(&variables); err != nil {
			return fmt.Errorf("matrix entry %q: %w", nameNode.Value, err)
		}
		entries = append(entries, MatrixEntry{
			Name:      nameNode.Value,
			Variables: variables,
		})
	}
	s.Matrix = entries
	return nil
}

// rawDescriptor is the wire shape before normalization. A document
// may declare steps at the top level instead of a jobs list; both
// forms parse into the same Descriptor.
type rawDescriptor struct {
	Trigger TriggerSpec `yaml:"trigger"`
	Jobs    []Job       `yaml:"jobs"`
	Pool    Pool        `yaml:"pool"`
	Steps   []Step      `yaml:"steps"`
}

// UnmarshalYAML decodes a Descriptor, normalizing the single-job
// shorthand (top-level pool/steps, no jobs list) into a one-element
// job list. Declaring both jobs and top-level steps is rejected:
// the two forms are mutually exclusive in the document schema.
func (d *Descriptor) UnmarshalYAML(node *yaml.Node) error {
	var raw rawDescriptor
	if err := node.Decode(&raw); err != nil {
		return err
	}

	if len(raw.Jobs) > 0 && len(raw.Steps) > 0 {
		return fmt.Errorf("document declares both jobs and top-level steps (use one form)")
	}

	d.Trigger = raw.Trigger
	if len(raw.Steps) > 0 {
		d.Jobs = []Job{{Pool: raw.Pool, Steps: raw.Steps}}
		return nil
	}
	d.Jobs = raw.Jobs
	return nil
}
