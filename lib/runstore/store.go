// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

// Package runstore persists execution results and step logs on disk.
//
// Each run gets one directory under the store root:
//
//	<root>/<run>/result.cbor   runner.Result, deterministic CBOR
//	<root>/<run>/log.<tag>     captured step output, compressed
//
// Records are immutable once written: a run that executes again
// overwrites its directory atomically-enough for a single-writer CLI,
// and nothing ever rewrites an individual file in place.
package runstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/conveyor-ci/conveyor/lib/codec"
	"github.com/conveyor-ci/conveyor/lib/runner"
)

// resultFile is the per-run record file name.
const resultFile = "result.cbor"

// Store is a directory of run records. The zero value is unusable;
// construct with Open.
type Store struct {
	root string
}

// Open creates the store root if needed and returns the store.
func Open(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating run store: %w", err)
	}
	return &Store{root: root}, nil
}

// Save writes a run's result record and its captured log. The log is
// compressed per tag; pass CompressionZstd unless you know better.
func (s *Store) Save(result runner.Result, log []byte, tag CompressionTag) error {
	directory := filepath.Join(s.root, recordName(result.Run))
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("creating run directory: %w", err)
	}

	encoded, err := codec.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result for %s: %w", result.Run, err)
	}
	if err := os.WriteFile(filepath.Join(directory, resultFile), encoded, 0o644); err != nil {
		return fmt.Errorf("writing result for %s: %w", result.Run, err)
	}

	compressed, err := compress(tag, log)
	if err != nil {
		return fmt.Errorf("compressing log for %s: %w", result.Run, err)
	}
	logPath := filepath.Join(directory, "log."+tag.String())
	if err := os.WriteFile(logPath, compressed, 0o644); err != nil {
		return fmt.Errorf("writing log for %s: %w", result.Run, err)
	}
	return nil
}

// Load reads a run's result record.
func (s *Store) Load(run string) (runner.Result, error) {
	var result runner.Result
	data, err := os.ReadFile(filepath.Join(s.root, recordName(run), resultFile))
	if err != nil {
		return result, fmt.Errorf("reading result for %s: %w", run, err)
	}
	if err := codec.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("decoding result for %s: %w", run, err)
	}
	return result, nil
}

// ReadLog reads and decompresses a run's captured log. The
// compression is recovered from the stored file's extension.
func (s *Store) ReadLog(run string) ([]byte, error) {
	directory := filepath.Join(s.root, recordName(run))
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("reading run directory for %s: %w", run, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "log.") {
			continue
		}
		tag, err := ParseCompressionTag(strings.TrimPrefix(name, "log."))
		if err != nil {
			return nil, fmt.Errorf("log for %s: %w", run, err)
		}
		data, err := os.ReadFile(filepath.Join(directory, name))
		if err != nil {
			return nil, fmt.Errorf("reading log for %s: %w", run, err)
		}
		return decompress(tag, data)
	}
	return nil, fmt.Errorf("no log recorded for %s", run)
}

// List returns the names of all recorded runs, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("reading run store: %w", err)
	}
	var runs []string
	for _, entry := range entries {
		if entry.IsDir() {
			runs = append(runs, entry.Name())
		}
	}
	sort.Strings(runs)
	return runs, nil
}

// recordName maps a run name to its directory name. Run names may be
// job-qualified ("test/linux_py37"); the separator becomes '_' so a
// record is always a single directory level.
func recordName(run string) string {
	return strings.ReplaceAll(run, "/", "_")
}
