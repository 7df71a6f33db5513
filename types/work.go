package types

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// WorkLength is the width, in bytes, of the work nonce on the wire.
const WorkLength = 8

// Work is the 64-bit proof-of-work nonce attached to every block. The
// ledger core never generates it; it only consumes a validity result
// supplied by an external work oracle (spec.md §1, §4.2).
type Work uint64

func WorkFromBytes(b []byte) (Work, error) {
	if len(b) != WorkLength {
		return 0, fmt.Errorf("invalid work length: got %d want %d", len(b), WorkLength)
	}
	return Work(binary.BigEndian.Uint64(b)), nil
}

// Bytes returns the work nonce in the big-endian wire form specified by
// spec.md §6 ("work in big-endian on the wire").
func (w Work) Bytes() []byte {
	out := make([]byte, WorkLength)
	binary.BigEndian.PutUint64(out, uint64(w))
	return out
}

func (w Work) String() string {
	return hex.EncodeToString(w.Bytes())
}

func (w Work) MarshalText() ([]byte, error) {
	return Bytes(w.Bytes()).MarshalText()
}

func (w *Work) UnmarshalText(src []byte) error {
	var b Bytes
	if err := b.UnmarshalText(src); err != nil {
		return err
	}
	parsed, err := WorkFromBytes(b)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
