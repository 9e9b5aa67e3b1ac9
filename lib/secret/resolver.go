// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import "fmt"

// Resolver maps a secret name to its value. Implementations must be
// safe for concurrent use: independent runs may resolve in parallel.
type Resolver interface {
	// Resolve returns the secret's value. A missing secret returns
	// a *NotFoundError; any other error means the store itself is
	// unavailable.
	Resolve(name string) (string, error)
}

// NotFoundError reports a reference to a secret the store does not
// hold. The runner surfaces it as the failing step's error: a missing
// secret is fatal to the step that needs it, per the descriptor's
// error contract.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("secret %q not found", e.Name)
}

// Static is a fixed in-memory Resolver. The zero value resolves
// nothing. Used for tests and for values supplied directly on the
// command line.
type Static map[string]string

// Resolve implements Resolver.
func (s Static) Resolve(name string) (string, error) {
	value, exists := s[name]
	if !exists {
		return "", &NotFoundError{Name: name}
	}
	return value, nil
}

// Empty is a Resolver that holds no secrets. Execution without a
// secret store uses it so that every indirection reference fails
// loudly instead of silently expanding to nothing.
var Empty Resolver = Static(nil)
