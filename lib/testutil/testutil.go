// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Conveyor packages.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefix-N" where N is a
// monotonically increasing integer. Use this instead of time.Now()
// when tests need run or record names that must not collide across
// parallel subtests.
//
//	run := testutil.UniqueID("linux_py37")  // "linux_py37-1", ...
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}

// WriteFile writes a fixture file under directory and returns its
// path, failing the test on error. Keeps descriptor-fixture setup to
// one line in tests.
func WriteFile(t *testing.T, directory, name, content string) string {
	t.Helper()
	path := filepath.Join(directory, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}
