// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

// Package pipelinedef provides parsing, validation, and fingerprinting
// for pipeline descriptor documents.
//
// Descriptors are authored as YAML (the native format) or as JSONC
// (JSON extended with comments and trailing commas). Both forms decode
// into the same schema.Descriptor.
//
// The typical flow:
//
//  1. ReadFile or Parse: document bytes → schema.Descriptor
//  2. Validate: structural checks (steps present, matrix entries
//     complete, exactly one action per step, and so on)
//  3. runner.Expand: matrix entries → concrete runs
//  4. runner.Execute: run the steps
//
// Parsing is deterministic: the same bytes always produce a
// structurally identical descriptor, which Fingerprint makes checkable
// as a single hash.
package pipelinedef

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/conveyor-ci/conveyor/lib/schema"
)

// Parse unmarshals a YAML descriptor document. Returns a *SyntaxError
// when the document is not well-formed; structural problems in a
// well-formed document are reported by Validate, not here.
func Parse(data []byte) (*schema.Descriptor, error) {
	var descriptor schema.Descriptor
	if err := yaml.Unmarshal(data, &descriptor); err != nil {
		return nil, &SyntaxError{err: err}
	}
	return &descriptor, nil
}

// ParseJSONC strips JSONC comments and trailing commas from data, then
// parses the result. JSON is a YAML subset, so the stripped bytes feed
// the same decoder as Parse and both formats share one code path.
func ParseJSONC(data []byte) (*schema.Descriptor, error) {
	return Parse(jsonc.ToJSON(data))
}

// ReadFile reads a descriptor file from disk and parses it, picking
// the format by extension: .json and .jsonc use ParseJSONC, everything
// else is treated as YAML.
func ReadFile(path string) (*schema.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var descriptor *schema.Descriptor
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		descriptor, err = ParseJSONC(data)
	default:
		descriptor, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return descriptor, nil
}

// Load reads, parses, and validates a descriptor file. Validation
// issues are returned as a *SchemaError carrying the full issue list,
// so callers can print every problem at once instead of fixing them
// one at a time.
func Load(path string) (*schema.Descriptor, error) {
	descriptor, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if issues := Validate(descriptor); len(issues) > 0 {
		return nil, &SchemaError{Path: path, Issues: issues}
	}
	return descriptor, nil
}
