// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"regexp"
	"strings"
)

// macroPattern matches $(name) references in descriptor strings.
// Names may contain dots ("python.version") per the document's
// variable naming convention. Only the parenthesized form is
// recognized; ${NAME} and bare $NAME are left for the shell.
var macroPattern = regexp.MustCompile(`\$\(([A-Za-z_][A-Za-z0-9_.]*)\)`)

// expandMacros replaces $(name) references with values from the
// variables map. References to names the map does not hold are left
// literal: at expansion time those are secret indirections (resolved
// per step at execution time) or shell text, and clobbering them
// would corrupt the step.
func expandMacros(input string, variables map[string]string) string {
	if !strings.Contains(input, "$(") {
		return input
	}
	return macroPattern.ReplaceAllStringFunc(input, func(match string) string {
		name := match[2 : len(match)-1]
		if value, exists := variables[name]; exists {
			return value
		}
		return match
	})
}

// secretReference reports whether value is exactly one $(name)
// reference, and returns the name. Only whole-value references are
// secret indirections; a $(name) embedded in longer text is ordinary
// macro syntax that expansion already had its chance at.
func secretReference(value string) (string, bool) {
	match := macroPattern.FindStringSubmatch(value)
	if match == nil || match[0] != value {
		return "", false
	}
	return match[1], true
}

// envName converts a variable name to its exported environment
// variable form: uppercase, with every character outside [A-Za-z0-9_]
// replaced by '_'. "python.version" exports as PYTHON_VERSION,
// "imageName" as IMAGENAME.
func envName(variable string) string {
	var builder strings.Builder
	builder.Grow(len(variable))
	for _, r := range strings.ToUpper(variable) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			builder.WriteRune(r)
		} else {
			builder.WriteRune('_')
		}
	}
	return builder.String()
}
