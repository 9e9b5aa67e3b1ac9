// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret resolves $(name) indirection references in step
// environment values.
//
// Secrets are threaded explicitly: the runner receives a Resolver and
// consults it per reference, instead of reading ambient process
// environment. This keeps execution testable without a real secret
// store and makes every secret a step consumes visible at the call
// site.
package secret
