// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package pipelinedef

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// ciDocument mirrors the shape of a real matrix-based CI descriptor:
// tag-triggered, two matrix entries, a provisioner task, and shell
// steps with secrets injected into the test step only.
const ciDocument = `
trigger:
  tags:
    include:
      - v*
jobs:
  - job: test
    strategy:
      matrix:
        mac_37:
          imageName: macOS-13
          python.version: '3.7'
        linux_py37:
          imageName: ubuntu-22.04
          python.version: '3.7'
    pool:
      vmImage: $(imageName)
    steps:
      - task: UseRuntimeVersion@0
        inputs:
          versionSpec: '$(python.version)'
      - script: pip install --upgrade black pytest
        displayName: Install dependencies
      - script: black --check .
        displayName: Check formatting
      - bash: |
          pytest
        displayName: Run tests
        env:
          TILEDB_REST_TOKEN: $(TILEDB_REST_TOKEN)
          AWS_ACCESS_KEY_ID: $(AWS_ACCESS_KEY_ID)
          AWS_SECRET_ACCESS_KEY: $(AWS_SECRET_ACCESS_KEY)
`

// ciDocumentJSONC is the same descriptor authored as JSONC.
const ciDocumentJSONC = `{
  // Release tags only.
  "trigger": {"tags": {"include": ["v*"]}},
  "jobs": [{
    "job": "test",
    "strategy": {"matrix": {
      "mac_37": {"imageName": "macOS-13", "python.version": "3.7"},
      "linux_py37": {"imageName": "ubuntu-22.04", "python.version": "3.7"},
    }},
    "pool": {"vmImage": "$(imageName)"},
    "steps": [
      {"task": "UseRuntimeVersion@0", "inputs": {"versionSpec": "$(python.version)"}},
      {"script": "pip install --upgrade black pytest", "displayName": "Install dependencies"},
      {"script": "black --check .", "displayName": "Check formatting"},
      {"bash": "pytest\n", "displayName": "Run tests", "env": {
        "TILEDB_REST_TOKEN": "$(TILEDB_REST_TOKEN)",
        "AWS_ACCESS_KEY_ID": "$(AWS_ACCESS_KEY_ID)",
        "AWS_SECRET_ACCESS_KEY": "$(AWS_SECRET_ACCESS_KEY)",
      }},
    ],
  }],
}`

func TestParse(t *testing.T) {
	t.Parallel()

	descriptor, err := Parse([]byte(ciDocument))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if !descriptor.Trigger.Matches("refs/tags/v1.2.0") {
		t.Error("trigger should match refs/tags/v1.2.0")
	}
	if descriptor.Trigger.Matches("refs/heads/feature/x") {
		t.Error("trigger should not match feature branches")
	}

	if len(descriptor.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(descriptor.Jobs))
	}
	job := descriptor.Jobs[0]
	if len(job.Strategy.Matrix) != 2 {
		t.Fatalf("expected 2 matrix entries, got %d", len(job.Strategy.Matrix))
	}
	if len(job.Steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(job.Steps))
	}

	testStep := job.Steps[3]
	if len(testStep.Env) != 3 {
		t.Errorf("test step env = %v, want 3 secret references", testStep.Env)
	}
	if testStep.Env["TILEDB_REST_TOKEN"] != "$(TILEDB_REST_TOKEN)" {
		t.Errorf("secret reference not preserved: %q", testStep.Env["TILEDB_REST_TOKEN"])
	}
	// Secrets belong to the test step only.
	for i := 0; i < 3; i++ {
		if len(job.Steps[i].Env) != 0 {
			t.Errorf("steps[%d] should have no env, got %v", i, job.Steps[i].Env)
		}
	}

	if issues := Validate(descriptor); len(issues) != 0 {
		t.Errorf("unexpected validation issues: %v", issues)
	}
}

func TestParseSyntaxError(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("jobs: [\n  - steps"))
	if err == nil {
		t.Fatal("expected syntax error")
	}
	var syntaxError *SyntaxError
	if !errors.As(err, &syntaxError) {
		t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
	}
}

func TestParseJSONCEquivalence(t *testing.T) {
	t.Parallel()

	fromYAML, err := Parse([]byte(ciDocument))
	if err != nil {
		t.Fatalf("Parse YAML: %v", err)
	}
	fromJSONC, err := ParseJSONC([]byte(ciDocumentJSONC))
	if err != nil {
		t.Fatalf("ParseJSONC: %v", err)
	}

	yamlHash, err := Fingerprint(fromYAML)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	jsoncHash, err := Fingerprint(fromJSONC)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if yamlHash != jsoncHash {
		t.Errorf("YAML and JSONC forms should fingerprint equal:\n  yaml  %s\n  jsonc %s",
			yamlHash.Hex(), jsoncHash.Hex())
	}
}

func TestParseDeterministic(t *testing.T) {
	t.Parallel()

	var previous Hash
	for i := 0; i < 8; i++ {
		descriptor, err := Parse([]byte(ciDocument))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		hash, err := Fingerprint(descriptor)
		if err != nil {
			t.Fatalf("Fingerprint: %v", err)
		}
		if i > 0 && hash != previous {
			t.Fatalf("re-parsing produced a different descriptor: %s vs %s",
				hash.Hex(), previous.Hex())
		}
		previous = hash
	}
}

func TestFingerprintDistinguishes(t *testing.T) {
	t.Parallel()

	first, err := Parse([]byte(ciDocument))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	second, err := Parse([]byte("steps:\n  - script: echo other\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	firstHash, _ := Fingerprint(first)
	secondHash, _ := Fingerprint(second)
	if firstHash == secondHash {
		t.Error("different descriptors should not fingerprint equal")
	}
}

func TestReadFileDispatchesOnExtension(t *testing.T) {
	t.Parallel()

	directory := t.TempDir()
	yamlPath := filepath.Join(directory, "pipeline.yml")
	jsoncPath := filepath.Join(directory, "pipeline.jsonc")
	if err := os.WriteFile(yamlPath, []byte(ciDocument), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(jsoncPath, []byte(ciDocumentJSONC), 0o644); err != nil {
		t.Fatal(err)
	}

	fromYAML, err := ReadFile(yamlPath)
	if err != nil {
		t.Fatalf("ReadFile yaml: %v", err)
	}
	fromJSONC, err := ReadFile(jsoncPath)
	if err != nil {
		t.Fatalf("ReadFile jsonc: %v", err)
	}

	yamlHash, _ := Fingerprint(fromYAML)
	jsoncHash, _ := Fingerprint(fromJSONC)
	if yamlHash != jsoncHash {
		t.Error("ReadFile should produce the same descriptor from both formats")
	}
}

func TestLoadReturnsSchemaError(t *testing.T) {
	t.Parallel()

	directory := t.TempDir()
	path := filepath.Join(directory, "broken.yml")
	// Parseable but invalid: a step with no action.
	document := "jobs:\n  - job: broken\n    steps:\n      - displayName: does nothing\n"
	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected schema error")
	}
	var schemaError *SchemaError
	if !errors.As(err, &schemaError) {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	if schemaError.Path != path {
		t.Errorf("SchemaError.Path = %q", schemaError.Path)
	}
	if len(schemaError.Issues) == 0 {
		t.Error("SchemaError should carry the issue list")
	}
}
