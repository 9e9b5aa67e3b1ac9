// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestTriggerSpecMatches(t *testing.T) {
	t.Parallel()

	spec := TriggerSpec{
		Tags:     RefFilter{Include: []string{"v*"}},
		Branches: RefFilter{Include: []string{"main", "release/*"}},
	}

	tests := []struct {
		ref  string
		want bool
	}{
		{"v1.2.0", true},
		{"refs/tags/v1.2.0", true},
		{"refs/tags/1.2.0", false},
		{"main", true},
		{"refs/heads/main", true},
		{"refs/heads/release/2.x", true},
		{"feature/x", false},
		{"refs/heads/feature/x", false},
		// Tag patterns never apply to branch refs.
		{"refs/heads/v1.2.0", false},
	}
	for _, test := range tests {
		if got := spec.Matches(test.ref); got != test.want {
			t.Errorf("Matches(%q) = %v, want %v", test.ref, got, test.want)
		}
	}
}

func TestTriggerSpecExclude(t *testing.T) {
	t.Parallel()

	spec := TriggerSpec{
		Branches: RefFilter{
			Include: []string{"release/*"},
			Exclude: []string{"release/*-rc"},
		},
	}

	if !spec.Matches("refs/heads/release/2.x") {
		t.Error("release/2.x should match")
	}
	if spec.Matches("refs/heads/release/2.x-rc") {
		t.Error("release/2.x-rc is excluded and should not match")
	}
}

func TestTriggerSpecEmptyMatchesNothing(t *testing.T) {
	t.Parallel()

	var spec TriggerSpec
	if !spec.IsZero() {
		t.Error("zero TriggerSpec should report IsZero")
	}
	for _, ref := range []string{"main", "refs/heads/main", "refs/tags/v1.0.0"} {
		if spec.Matches(ref) {
			t.Errorf("empty trigger matched %q", ref)
		}
	}
}

func TestTriggerSpecSequenceShorthand(t *testing.T) {
	t.Parallel()

	document := `
trigger:
  - main
  - release/*
`
	var parsed struct {
		Trigger TriggerSpec `yaml:"trigger"`
	}
	if err := yaml.Unmarshal([]byte(document), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !parsed.Trigger.Matches("refs/heads/main") {
		t.Error("shorthand trigger should match refs/heads/main")
	}
	if parsed.Trigger.Matches("refs/tags/main") {
		t.Error("shorthand trigger declares branch patterns only")
	}
}

func TestGlobMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"v*", "v1.2.0", true},
		{"v*", "v", true},
		{"v*", "1.2.0", false},
		{"*", "anything", true},
		{"*", "", true},
		{"main", "main", true},
		{"main", "maine", false},
		{"release/*", "release/2.x", true},
		{"release/*", "release", false},
		{"v?.?.?", "v1.2.0", true},
		{"v?.?.?", "v1.2.10", false},
		{"*-rc", "2.0-rc", true},
		{"*-rc", "2.0-rc1", false},
		// Multiple stars backtrack correctly.
		{"a*b*c", "aXXbYYc", true},
		{"a*b*c", "aXXcYYb", false},
	}
	for _, test := range tests {
		if got := globMatch(test.pattern, test.name); got != test.want {
			t.Errorf("globMatch(%q, %q) = %v, want %v", test.pattern, test.name, got, test.want)
		}
	}
}

func TestTriggerSpecValidate(t *testing.T) {
	t.Parallel()

	spec := TriggerSpec{
		Tags:     RefFilter{Include: []string{"v*", ""}},
		Branches: RefFilter{Exclude: []string{""}},
	}
	issues := spec.Validate()
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d: %v", len(issues), issues)
	}
}
