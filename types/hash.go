package types

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// HashLength is the width, in bytes, of a BLAKE2b-256 block hash.
const HashLength = 32

// Hash is a 256-bit BLAKE2b digest, used both as a block hash and (for
// smart-contract blocks) as a token type identifier.
type Hash [HashLength]byte

// ZeroHash is the distinguished "no hash" value: the predecessor of an
// open/state-open block, the token_hash of the native token, and the
// representation-table key for a not-yet-set representative.
var ZeroHash Hash

func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashLength {
		return h, fmt.Errorf("invalid hash length: got %d want %d", len(b), HashLength)
	}
	copy(h[:], b)
	return h, nil
}

func (h Hash) IsZero() bool {
	return h == ZeroHash
}

func (h Hash) Bytes() []byte {
	out := make([]byte, HashLength)
	copy(out, h[:])
	return out
}

func (h Hash) Equal(o Hash) bool {
	return h == o
}

func (h Hash) Compare(o Hash) int {
	return bytes.Compare(h[:], o[:])
}

// Xor folds o into h, used to maintain the checksum table (spec.md §3,
// invariant 6): every block hash XORs into a single running checksum as it
// enters and, symmetrically, as it leaves the ledger.
func (h Hash) Xor(o Hash) Hash {
	var out Hash
	for i := range out {
		out[i] = h[i] ^ o[i]
	}
	return out
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) MarshalBinary() ([]byte, error) {
	return h.Bytes(), nil
}

func (h *Hash) UnmarshalBinary(b []byte) error {
	parsed, err := HashFromBytes(b)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func (h Hash) MarshalText() ([]byte, error) {
	return Bytes(h[:]).MarshalText()
}

func (h *Hash) UnmarshalText(src []byte) error {
	var b Bytes
	if err := b.UnmarshalText(src); err != nil {
		return err
	}
	parsed, err := HashFromBytes(b)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
