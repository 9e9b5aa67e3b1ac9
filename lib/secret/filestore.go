// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileStore is a Resolver backed by a flat YAML file of name: value
// pairs. The whole file is read once at open time; the store is
// immutable afterwards, matching the read-only, injected-per-run
// secret model.
type FileStore struct {
	values map[string]string
}

// OpenFileStore reads and parses a secret file. Values are
// whitespace-trimmed; a value that is empty after trimming is
// rejected, since an empty secret is always a configuration mistake
// that would otherwise surface as a confusing downstream auth error.
func OpenFileStore(path string) (*FileStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading secrets file: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing secrets file %s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for name, value := range raw {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return nil, fmt.Errorf("secrets file %s: secret %q is empty", path, name)
		}
		values[name] = trimmed
	}
	return &FileStore{values: values}, nil
}

// Resolve implements Resolver.
func (s *FileStore) Resolve(name string) (string, error) {
	value, exists := s.values[name]
	if !exists {
		return "", &NotFoundError{Name: name}
	}
	return value, nil
}

// Len returns the number of secrets held. Used by the CLI to report
// how many secrets were loaded without printing any of them.
func (s *FileStore) Len() int {
	return len(s.values)
}
