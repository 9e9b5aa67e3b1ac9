// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// branchRefPrefix and tagRefPrefix are the fully-qualified ref
// namespaces. Bare refs (no refs/ prefix) are matched against both
// filter sets, since a bare name does not say which namespace it
// belongs to.
const (
	branchRefPrefix = "refs/heads/"
	tagRefPrefix    = "refs/tags/"
)

// TriggerSpec decides which push events start the pipeline. A ref
// triggers iff it matches at least one include pattern of the relevant
// filter and no exclude pattern. A TriggerSpec with no patterns at all
// matches nothing: trigger documents state explicitly what runs.
type TriggerSpec struct {
	// Tags filters tag refs (refs/tags/...).
	Tags RefFilter `yaml:"tags"`

	// Branches filters branch refs (refs/heads/...).
	Branches RefFilter `yaml:"branches"`
}

// RefFilter is a set of glob patterns over ref names. Include is
// required for a match; Exclude vetoes a match that Include accepted.
type RefFilter struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// UnmarshalYAML decodes a TriggerSpec. Two wire forms are accepted:
// the full mapping form (tags/branches with include/exclude lists)
// and the shorthand sequence form, a bare list of branch patterns:
//
//	trigger:
//	  - main
//	  - release/*
func (t *TriggerSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var patterns []string
		if err := node.Decode(&patterns); err != nil {
			return err
		}
		t.Branches = RefFilter{Include: patterns}
		return nil
	}

	var raw struct {
		Tags     RefFilter `yaml:"tags"`
		Branches RefFilter `yaml:"branches"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	t.Tags = raw.Tags
	t.Branches = raw.Branches
	return nil
}

// Matches reports whether a push to ref should trigger the pipeline.
// Fully-qualified refs are matched against the filter for their
// namespace only; bare refs are tried against both filters. Patterns
// match the ref name with the namespace prefix stripped, so the
// pattern "v*" matches both "v1.2.0" and "refs/tags/v1.2.0".
func (t *TriggerSpec) Matches(ref string) bool {
	switch {
	case strings.HasPrefix(ref, branchRefPrefix):
		return t.Branches.matches(strings.TrimPrefix(ref, branchRefPrefix))
	case strings.HasPrefix(ref, tagRefPrefix):
		return t.Tags.matches(strings.TrimPrefix(ref, tagRefPrefix))
	default:
		return t.Branches.matches(ref) || t.Tags.matches(ref)
	}
}

// matches applies include-then-exclude semantics to a single name.
func (f *RefFilter) matches(name string) bool {
	included := false
	for _, pattern := range f.Include {
		if globMatch(pattern, name) {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, pattern := range f.Exclude {
		if globMatch(pattern, name) {
			return false
		}
	}
	return true
}

// Validate checks all patterns in both filters. Pattern syntax is
// simple enough that the only rejected input is an empty pattern, but
// the issue-list shape keeps trigger validation uniform with the rest
// of descriptor validation.
func (t *TriggerSpec) Validate() []string {
	var issues []string
	for _, section := range []struct {
		name   string
		filter RefFilter
	}{
		{"trigger.tags", t.Tags},
		{"trigger.branches", t.Branches},
	} {
		for i, pattern := range section.filter.Include {
			if pattern == "" {
				issues = append(issues, fmt.Sprintf("%s.include[%d]: pattern must not be empty", section.name, i))
			}
		}
		for i, pattern := range section.filter.Exclude {
			if pattern == "" {
				issues = append(issues, fmt.Sprintf("%s.exclude[%d]: pattern must not be empty", section.name, i))
			}
		}
	}
	return issues
}

// IsZero reports whether no patterns are declared in either filter.
// A zero trigger matches nothing; the validate command warns about it
// since such a pipeline can only ever be run manually.
func (t *TriggerSpec) IsZero() bool {
	return len(t.Tags.Include) == 0 && len(t.Tags.Exclude) == 0 &&
		len(t.Branches.Include) == 0 && len(t.Branches.Exclude) == 0
}
