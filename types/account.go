package types

import (
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/accountchain/ledger/crypto"
)

// AccountLength is the width, in bytes, of a 256-bit ed25519 public key.
const AccountLength = 32

// accountChecksumLength is the width, in bytes, of the BLAKE2b-40 checksum
// appended to the base-58 text form (spec.md §6).
const accountChecksumLength = 5

// Account is a 256-bit ed25519 public key identifying the owner of an
// account chain.
type Account [AccountLength]byte

// BurnAccount is the distinguished all-zero account. Spec.md invariant 8:
// the burn account may never be opened.
var BurnAccount Account

func AccountFromBytes(b []byte) (Account, error) {
	var a Account
	if len(b) != AccountLength {
		return a, fmt.Errorf("invalid account length: got %d want %d", len(b), AccountLength)
	}
	copy(a[:], b)
	return a, nil
}

func (a Account) IsZero() bool {
	return a == BurnAccount
}

func (a Account) Bytes() []byte {
	out := make([]byte, AccountLength)
	copy(out, a[:])
	return out
}

func (a Account) Equal(o Account) bool {
	return a == o
}

// Hex returns the plain hex-encoded form of the account's public key, the
// alternate form JSON decoders must accept alongside the base-58 text
// form (spec.md §6).
func (a Account) Hex() string {
	return hex.EncodeToString(a[:])
}

// String returns the base-58-with-checksum text encoding: the 32-byte
// account followed by a 5-byte BLAKE2b checksum, both base-58 encoded
// with the standard alphabet.
func (a Account) String() string {
	checksum, err := crypto.HashN(accountChecksumLength, a[:])
	if err != nil {
		// only fails for an invalid digest size, which accountChecksumLength never is.
		panic(err)
	}
	reverse(checksum)
	payload := make([]byte, 0, AccountLength+accountChecksumLength)
	payload = append(payload, a[:]...)
	payload = append(payload, checksum...)
	return base58.Encode(payload)
}

// ParseAccount accepts either the base-58-with-checksum text form or a
// bare 64-character hex string, per spec.md §6's JSON-decoder contract.
func ParseAccount(s string) (Account, error) {
	if len(s) == AccountLength*2 {
		if b, err := hex.DecodeString(s); err == nil {
			return AccountFromBytes(b)
		}
	}
	payload, err := base58.Decode(s)
	if err != nil {
		return Account{}, fmt.Errorf("decoding account %q: %w", s, err)
	}
	if len(payload) != AccountLength+accountChecksumLength {
		return Account{}, fmt.Errorf("decoding account %q: unexpected length %d", s, len(payload))
	}
	body, checksum := payload[:AccountLength], payload[AccountLength:]
	want, err := crypto.HashN(accountChecksumLength, body)
	if err != nil {
		return Account{}, err
	}
	reverse(want)
	for i := range want {
		if want[i] != checksum[i] {
			return Account{}, fmt.Errorf("decoding account %q: checksum mismatch", s)
		}
	}
	return AccountFromBytes(body)
}

func (a Account) MarshalBinary() ([]byte, error) {
	return a.Bytes(), nil
}

func (a *Account) UnmarshalBinary(b []byte) error {
	parsed, err := AccountFromBytes(b)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a Account) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Account) UnmarshalText(src []byte) error {
	parsed, err := ParseAccount(string(src))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
