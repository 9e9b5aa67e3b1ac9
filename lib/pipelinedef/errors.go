// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package pipelinedef

import (
	"fmt"
	"strings"
)

// SyntaxError means the document is not well-formed structured text.
// The pipeline never starts: there is nothing to expand or execute.
type SyntaxError struct {
	err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parsing pipeline: %v", e.err)
}

func (e *SyntaxError) Unwrap() error {
	return e.err
}

// SchemaError means the document parsed but violates the descriptor
// schema (missing steps, incomplete matrix entries, and so on). It
// carries every issue found, not just the first.
type SchemaError struct {
	// Path is the file the descriptor was loaded from, when known.
	Path string

	// Issues are human-readable problem descriptions, one per issue.
	Issues []string
}

func (e *SchemaError) Error() string {
	prefix := "invalid pipeline"
	if e.Path != "" {
		prefix = e.Path
	}
	if len(e.Issues) == 1 {
		return fmt.Sprintf("%s: %s", prefix, e.Issues[0])
	}
	return fmt.Sprintf("%s: %d validation issues:\n  - %s",
		prefix, len(e.Issues), strings.Join(e.Issues, "\n  - "))
}
