// Copyright 2026 The Conveyor Authors
// SPDX-License-Identifier: Apache-2.0

package pipelinedef

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/conveyor-ci/conveyor/lib/codec"
	"github.com/conveyor-ci/conveyor/lib/schema"
)

// Hash is a 32-byte BLAKE3 digest of a descriptor's deterministic
// encoding. Two descriptors fingerprint equal iff they are
// structurally identical, regardless of source formatting, comments,
// or whether they were authored as YAML or JSONC.
type Hash [32]byte

// Hex returns the lowercase hex form of the hash.
func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

// descriptorDomainKey is the BLAKE3 key for descriptor fingerprints.
// Domain separation keeps descriptor hashes from colliding with any
// other hash of the same bytes. The value is the ASCII domain name
// zero-padded to 32 bytes, readable in hex dumps; changing it
// invalidates all recorded fingerprints.
var descriptorDomainKey = [32]byte{
	'c', 'o', 'n', 'v', 'e', 'y', 'o', 'r', '.', 'd', 'e', 's', 'c',
	'r', 'i', 'p', 't', 'o', 'r', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Fingerprint hashes a descriptor's deterministic CBOR encoding.
// Re-parsing the same document always yields the same fingerprint,
// which is how tests and the CLI demonstrate parse determinism and
// how operators detect descriptor drift between environments.
func Fingerprint(descriptor *schema.Descriptor) (Hash, error) {
	encoded, err := codec.Marshal(descriptor)
	if err != nil {
		return Hash{}, fmt.Errorf("encoding descriptor: %w", err)
	}

	hasher, err := blake3.NewKeyed(descriptorDomainKey[:])
	if err != nil {
		panic("pipelinedef: BLAKE3 keyed hasher initialization failed: " + err.Error())
	}
	_, _ = hasher.Write(encoded) // never fails

	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash, nil
}
