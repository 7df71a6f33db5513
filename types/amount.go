package types

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// AmountLength is the width, in bytes, of the canonical big-endian form of
// an Amount (spec.md §3: "128-bit unsigned integer, big-endian in
// canonical byte form").
const AmountLength = 16

// max128 is the largest value an Amount may hold: 2^128 - 1, the entire
// native-token supply minted to genesis.
var max128 = new(uint256.Int).Sub(
	new(uint256.Int).Lsh(uint256.NewInt(1), 128),
	uint256.NewInt(1),
)

// Amount is an unsigned quantity of a token, held as a 256-bit integer
// (the teacher's arithmetic type) range-checked to 128 bits on every
// mutation and on the wire, per spec.md §3.
type Amount struct {
	v uint256.Int
}

// ZeroAmount is the additive identity.
var ZeroAmount Amount

func NewAmount(v uint64) Amount {
	var a Amount
	a.v.SetUint64(v)
	return a
}

// AmountFromBytes parses the canonical 16-byte big-endian form.
func AmountFromBytes(b []byte) (Amount, error) {
	var a Amount
	if len(b) != AmountLength {
		return a, fmt.Errorf("invalid amount length: got %d want %d", len(b), AmountLength)
	}
	a.v.SetBytes(b)
	return a, nil
}

// Bytes returns the canonical 16-byte big-endian form.
func (a Amount) Bytes() []byte {
	raw := a.v.Bytes() // minimal-length big-endian
	out := make([]byte, AmountLength)
	copy(out[AmountLength-len(raw):], raw)
	return out
}

func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

func (a Amount) Cmp(o Amount) int {
	return a.v.Cmp(&o.v)
}

func (a Amount) LessThan(o Amount) bool {
	return a.v.Lt(&o.v)
}

func (a Amount) GreaterThan(o Amount) bool {
	return a.v.Gt(&o.v)
}

// Add returns a+o. Panics on overflow past 2^128-1: an overflowing add
// would mint supply out of thin air, which every call site in this module
// must have already ruled out via a balance check.
func (a Amount) Add(o Amount) Amount {
	var out Amount
	out.v.Add(&a.v, &o.v)
	if out.v.Gt(max128) {
		panic("types: amount overflow past 128 bits")
	}
	return out
}

// Sub returns a-o. Panics if o > a: every call site must check
// NegativeSpend-equivalent conditions before calling Sub.
func (a Amount) Sub(o Amount) Amount {
	if o.v.Gt(&a.v) {
		panic("types: amount underflow")
	}
	var out Amount
	out.v.Sub(&a.v, &o.v)
	return out
}

// AbsDiff returns |a-o| without panicking regardless of ordering, used by
// the state-block amount derivation (spec.md §4.3 State step 4).
func AbsDiff(a, o Amount) Amount {
	if a.LessThan(o) {
		return o.Sub(a)
	}
	return a.Sub(o)
}

func (a Amount) MarshalBinary() ([]byte, error) {
	return a.Bytes(), nil
}

func (a *Amount) UnmarshalBinary(b []byte) error {
	parsed, err := AmountFromBytes(b)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a Amount) String() string {
	return a.v.ToBig().String()
}

func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.v.ToBig().String()), nil
}

func (a *Amount) UnmarshalText(src []byte) error {
	bi, ok := new(big.Int).SetString(string(src), 10)
	if !ok {
		return fmt.Errorf("parsing amount %q", src)
	}
	if bi.Sign() < 0 {
		return fmt.Errorf("amount %q is negative", src)
	}
	v, overflow := uint256.FromBig(bi)
	if overflow {
		return fmt.Errorf("amount %q overflows 256 bits", src)
	}
	if v.Gt(max128) {
		return fmt.Errorf("amount %q overflows 128 bits", src)
	}
	a.v = *v
	return nil
}

func (a Amount) Hex() string {
	return hex.EncodeToString(a.Bytes())
}
