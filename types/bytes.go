package types

import (
	"encoding/hex"
	"fmt"
)

// Bytes is a byte slice that marshals to/from JSON as a "0x"-prefixed hex
// string, matching the wire conventions used throughout the block JSON
// envelope (signature, work, link).
type Bytes []byte

func (b Bytes) MarshalText() ([]byte, error) {
	if len(b) == 0 {
		return nil, nil
	}
	dst := make([]byte, 2+hex.EncodedLen(len(b)))
	dst[0], dst[1] = '0', 'x'
	hex.Encode(dst[2:], b)
	return dst, nil
}

func (b *Bytes) UnmarshalText(src []byte) error {
	if len(src) == 0 {
		*b = nil
		return nil
	}
	if len(src) >= 2 && src[0] == '0' && (src[1] == 'x' || src[1] == 'X') {
		src = src[2:]
	}
	dst := make([]byte, hex.DecodedLen(len(src)))
	if _, err := hex.Decode(dst, src); err != nil {
		return fmt.Errorf("decoding hex bytes: %w", err)
	}
	*b = dst
	return nil
}

func (b Bytes) String() string {
	return hex.EncodeToString(b)
}
