package types

import (
	"encoding/hex"
	"fmt"
)

// SignatureLength is the width, in bytes, of a 512-bit ed25519 signature.
const SignatureLength = 64

// Signature is the 512-bit ed25519 signature carried by every block.
type Signature [SignatureLength]byte

func SignatureFromBytes(b []byte) (Signature, error) {
	var s Signature
	if len(b) != SignatureLength {
		return s, fmt.Errorf("invalid signature length: got %d want %d", len(b), SignatureLength)
	}
	copy(s[:], b)
	return s, nil
}

func (s Signature) Bytes() []byte {
	out := make([]byte, SignatureLength)
	copy(out, s[:])
	return out
}

func (s Signature) String() string {
	return hex.EncodeToString(s[:])
}

func (s Signature) MarshalText() ([]byte, error) {
	return Bytes(s[:]).MarshalText()
}

func (s *Signature) UnmarshalText(src []byte) error {
	var b Bytes
	if err := b.UnmarshalText(src); err != nil {
		return err
	}
	parsed, err := SignatureFromBytes(b)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
