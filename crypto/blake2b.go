// Package crypto provides the cryptographic primitives the ledger core
// needs: BLAKE2b hashing, ed25519 signatures, and the work-validator
// predicate. It operates on raw byte slices and fixed-size arrays only, so
// that types and block can both depend on it without a cycle.
package crypto

import (
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Hash256 is a full-width BLAKE2b-256 digest, computed over the
// concatenation of all the given byte slices without any separator —
// matching the original implementation's practice of hashing the raw
// concatenation of a block's hashable fields.
func Hash256(parts ...[]byte) [32]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only fails for an oversized key, and we never pass one.
		panic(fmt.Sprintf("blake2b.New256: %v", err))
	}
	for _, p := range parts {
		h.Write(p) //nolint:errcheck // hash.Hash.Write never returns an error
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// HashN computes a variable-length BLAKE2b digest, 1..64 bytes, over the
// concatenation of parts. Used for the account checksum (5 bytes / 40
// bits) in the base-58 text encoding.
func HashN(size int, parts ...[]byte) ([]byte, error) {
	h, err := blake2b.New(size, nil)
	if err != nil {
		return nil, fmt.Errorf("blake2b.New(%d): %w", size, err)
	}
	for _, p := range parts {
		h.Write(p) //nolint:errcheck
	}
	return h.Sum(nil), nil
}
