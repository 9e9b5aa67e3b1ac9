// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"testing"

	"github.com/conveyor-ci/conveyor/lib/schema"
)

// matrixDescriptor is the canonical two-entry matrix: one job, two
// environments, a provisioner task and a test step with a secret
// reference.
func matrixDescriptor() *schema.Descriptor {
	return &schema.Descriptor{
		Jobs: []schema.Job{{
			Strategy: schema.Strategy{Matrix: []schema.MatrixEntry{
				{Name: "mac_37", Variables: map[string]string{
					"imageName": "macOS-13", "python.version": "3.7",
				}},
				{Name: "linux_py37", Variables: map[string]string{
					"imageName": "ubuntu-22.04", "python.version": "3.7",
				}},
			}},
			Pool: schema.Pool{VMImage: "$(imageName)"},
			Steps: []schema.Step{
				{Task: "UseRuntimeVersion@0", Inputs: map[string]string{"versionSpec": "$(python.version)"}},
				{Script: "pytest", DisplayName: "Run tests", Env: map[string]string{
					"TILEDB_REST_TOKEN": "$(TILEDB_REST_TOKEN)",
				}},
			},
		}},
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()

	descriptor := matrixDescriptor()
	runs := Expand(descriptor)

	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Name != "mac_37" || runs[1].Name != "linux_py37" {
		t.Errorf("run names = %q, %q", runs[0].Name, runs[1].Name)
	}

	// Each run retains its own image/version pair, unmodified.
	if runs[0].ImageName != "macOS-13" {
		t.Errorf("mac_37 image = %q", runs[0].ImageName)
	}
	if runs[1].ImageName != "ubuntu-22.04" {
		t.Errorf("linux_py37 image = %q", runs[1].ImageName)
	}
	for _, run := range runs {
		if run.Variables["python.version"] != "3.7" {
			t.Errorf("run %s python.version = %q", run.Name, run.Variables["python.version"])
		}
		if run.Steps[0].Inputs["versionSpec"] != "3.7" {
			t.Errorf("run %s versionSpec = %q (macro not bound)", run.Name, run.Steps[0].Inputs["versionSpec"])
		}
		// Secret references are not matrix variables and survive
		// expansion untouched.
		if run.Steps[1].Env["TILEDB_REST_TOKEN"] != "$(TILEDB_REST_TOKEN)" {
			t.Errorf("run %s secret reference = %q", run.Name, run.Steps[1].Env["TILEDB_REST_TOKEN"])
		}
	}

	// No cross-contamination: mutating one run's data touches neither
	// the other run nor the descriptor.
	runs[0].Variables["imageName"] = "mutated"
	runs[0].Steps[1].Env["TILEDB_REST_TOKEN"] = "mutated"
	if runs[1].Variables["imageName"] != "ubuntu-22.04" {
		t.Error("runs share variable maps")
	}
	if descriptor.Jobs[0].Strategy.Matrix[0].Variables["imageName"] != "macOS-13" {
		t.Error("expansion aliased the descriptor's variable map")
	}
	if descriptor.Jobs[0].Steps[1].Env["TILEDB_REST_TOKEN"] != "$(TILEDB_REST_TOKEN)" {
		t.Error("expansion aliased the descriptor's env map")
	}
}

func TestExpandJobQualifiesRunName(t *testing.T) {
	t.Parallel()

	descriptor := matrixDescriptor()
	descriptor.Jobs[0].Name = "test"

	runs := Expand(descriptor)
	if runs[0].Name != "test/mac_37" || runs[1].Name != "test/linux_py37" {
		t.Errorf("run names = %q, %q", runs[0].Name, runs[1].Name)
	}
}

func TestExpandWithoutMatrix(t *testing.T) {
	t.Parallel()

	descriptor := &schema.Descriptor{
		Jobs: []schema.Job{{
			Pool:  schema.Pool{VMImage: "ubuntu-22.04"},
			Steps: []schema.Step{{Script: "make test"}},
		}},
	}
	runs := Expand(descriptor)
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Name != "default" {
		t.Errorf("run name = %q", runs[0].Name)
	}
	if runs[0].ImageName != "ubuntu-22.04" {
		t.Errorf("image = %q", runs[0].ImageName)
	}
}

func TestExpandMacros(t *testing.T) {
	t.Parallel()

	variables := map[string]string{
		"imageName":      "ubuntu-22.04",
		"python.version": "3.7",
	}

	tests := []struct {
		input string
		want  string
	}{
		{"$(imageName)", "ubuntu-22.04"},
		{"image: $(imageName), python $(python.version)", "image: ubuntu-22.04, python 3.7"},
		{"$(unknown) stays", "$(unknown) stays"},
		{"no macros", "no macros"},
		{"bare $imageName untouched", "bare $imageName untouched"},
		{"${imageName} untouched", "${imageName} untouched"},
	}
	for _, test := range tests {
		if got := expandMacros(test.input, variables); got != test.want {
			t.Errorf("expandMacros(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSecretReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    string
		wantName string
		wantOK   bool
	}{
		{"$(TILEDB_REST_TOKEN)", "TILEDB_REST_TOKEN", true},
		{"$(AWS_ACCESS_KEY_ID)", "AWS_ACCESS_KEY_ID", true},
		{"prefix $(NAME)", "", false},
		{"$(NAME) suffix", "", false},
		{"literal", "", false},
		{"", "", false},
	}
	for _, test := range tests {
		name, ok := secretReference(test.value)
		if name != test.wantName || ok != test.wantOK {
			t.Errorf("secretReference(%q) = %q, %v", test.value, name, ok)
		}
	}
}

func TestEnvName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		variable string
		want     string
	}{
		{"python.version", "PYTHON_VERSION"},
		{"imageName", "IMAGENAME"},
		{"already_upper", "ALREADY_UPPER"},
		{"dash-ed", "DASH_ED"},
	}
	for _, test := range tests {
		if got := envName(test.variable); got != test.want {
			t.Errorf("envName(%q) = %q, want %q", test.variable, got, test.want)
		}
	}
}
