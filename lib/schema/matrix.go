// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "strings"

// imageNameVariable is the matrix variable naming the OS image for an
// entry. Required on every entry when a matrix is declared.
const imageNameVariable = "imageName"

// versionKeySuffix matches runtime version variables. The document
// convention namespaces the version under the runtime name
// ("python.version", "node.version"); a bare "version" key is also
// accepted.
const versionKeySuffix = ".version"

// MatrixEntry is one named combination of build parameters. Each entry
// produces exactly one independent run. Names are unique within a
// matrix (enforced by validation); entries keep declaration order.
type MatrixEntry struct {
	// Name identifies the entry (e.g. "mac_37", "linux_py37").
	Name string

	// Variables are the entry's parameter bindings, substituted
	// into step fields as $(name) macros at expansion time. Must
	// include imageName and a runtime version variable.
	Variables map[string]string
}

// ImageName returns the entry's OS image, or "" if unset.
func (e *MatrixEntry) ImageName() string {
	return e.Variables[imageNameVariable]
}

// RuntimeVersion returns the entry's runtime version: the value of
// the first variable named "version" or ending in ".version", or ""
// if none is declared. With the conventional single runtime axis
// there is at most one such variable.
func (e *MatrixEntry) RuntimeVersion() string {
	if version, ok := e.Variables["version"]; ok {
		return version
	}
	for name, value := range e.Variables {
		if strings.HasSuffix(name, versionKeySuffix) {
			return value
		}
	}
	return ""
}
