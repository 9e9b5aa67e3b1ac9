// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the pipeline descriptor data model: trigger
// rules, jobs with build matrices, and the ordered step list executed
// per matrix entry.
//
// A descriptor is parsed once (see lib/pipelinedef) and is immutable
// afterwards. The types here carry no behavior beyond accessors and
// trigger matching. Expansion and execution live in lib/runner.
package schema
