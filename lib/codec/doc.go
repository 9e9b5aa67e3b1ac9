// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides deterministic CBOR encoding for descriptor
// fingerprints and run records. The same logical value always encodes
// to the same bytes, which is what makes fingerprints comparable and
// stored run records byte-stable.
package codec
