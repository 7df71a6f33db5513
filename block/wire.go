package block

import (
	"encoding/binary"
	"fmt"

	"github.com/accountchain/ledger/types"
)

// Encode and Decode implement the consensus-critical big-endian byte
// format of spec.md §6. The external serializer component owns the
// network wire format; this module implements the same byte-exact layout
// because it doubles as the content-addressed value the store persists
// in the blocks table (spec.md §3), and because the canonical hash in
// hash.go must be computable from exactly these fields.
func Encode(b Block) ([]byte, error) {
	switch v := b.(type) {
	case *Send:
		buf := make([]byte, 0, 32+32+16+64+8)
		buf = append(buf, v.Previous[:]...)
		buf = append(buf, v.Destination[:]...)
		buf = append(buf, v.Balance.Bytes()...)
		buf = append(buf, v.sig[:]...)
		buf = append(buf, v.work.Bytes()...)
		return buf, nil
	case *Receive:
		buf := make([]byte, 0, 32+32+64+8)
		buf = append(buf, v.Previous[:]...)
		buf = append(buf, v.Source[:]...)
		buf = append(buf, v.sig[:]...)
		buf = append(buf, v.work.Bytes()...)
		return buf, nil
	case *Open:
		buf := make([]byte, 0, 32+32+32+64+8)
		buf = append(buf, v.Source[:]...)
		buf = append(buf, v.Representative[:]...)
		buf = append(buf, v.Account[:]...)
		buf = append(buf, v.sig[:]...)
		buf = append(buf, v.work.Bytes()...)
		return buf, nil
	case *Change:
		buf := make([]byte, 0, 32+32+64+8)
		buf = append(buf, v.Previous[:]...)
		buf = append(buf, v.Representative[:]...)
		buf = append(buf, v.sig[:]...)
		buf = append(buf, v.work.Bytes()...)
		return buf, nil
	case *State:
		buf := make([]byte, 0, 32*5+16+64+8)
		buf = append(buf, v.Account[:]...)
		buf = append(buf, v.Previous[:]...)
		buf = append(buf, v.Representative[:]...)
		buf = append(buf, v.Balance.Bytes()...)
		buf = append(buf, v.Link[:]...)
		buf = append(buf, v.TokenHash[:]...)
		buf = append(buf, v.sig[:]...)
		buf = append(buf, v.work.Bytes()...)
		return buf, nil
	case *SmartContract:
		abiLen := make([]byte, 16)
		binary.BigEndian.PutUint64(abiLen[8:], uint64(len(v.AbiBytes)))
		buf := make([]byte, 0, 32+32+32+16+len(v.AbiBytes)+64+8)
		buf = append(buf, v.ScAccount[:]...)
		buf = append(buf, v.ScOwnerAccount[:]...)
		buf = append(buf, v.AbiHash[:]...)
		buf = append(buf, abiLen...)
		buf = append(buf, v.AbiBytes...)
		buf = append(buf, v.sig[:]...)
		buf = append(buf, v.work.Bytes()...)
		return buf, nil
	default:
		return nil, fmt.Errorf("block: unknown variant %T", b)
	}
}

// Decode parses the byte-exact form of the given type back into a Block.
func Decode(t Type, data []byte) (Block, error) {
	switch t {
	case TypeSend:
		if len(data) != 32+32+16+64+8 {
			return nil, fmt.Errorf("block: bad send length %d", len(data))
		}
		b := &Send{}
		copy(b.Previous[:], data[0:32])
		copy(b.Destination[:], data[32:64])
		bal, err := types.AmountFromBytes(data[64:80])
		if err != nil {
			return nil, err
		}
		b.Balance = bal
		copy(b.sig[:], data[80:144])
		w, err := types.WorkFromBytes(data[144:152])
		if err != nil {
			return nil, err
		}
		b.work = w
		return b, nil
	case TypeReceive:
		if len(data) != 32+32+64+8 {
			return nil, fmt.Errorf("block: bad receive length %d", len(data))
		}
		b := &Receive{}
		copy(b.Previous[:], data[0:32])
		copy(b.Source[:], data[32:64])
		copy(b.sig[:], data[64:128])
		w, err := types.WorkFromBytes(data[128:136])
		if err != nil {
			return nil, err
		}
		b.work = w
		return b, nil
	case TypeOpen:
		if len(data) != 32+32+32+64+8 {
			return nil, fmt.Errorf("block: bad open length %d", len(data))
		}
		b := &Open{}
		copy(b.Source[:], data[0:32])
		copy(b.Representative[:], data[32:64])
		copy(b.Account[:], data[64:96])
		copy(b.sig[:], data[96:160])
		w, err := types.WorkFromBytes(data[160:168])
		if err != nil {
			return nil, err
		}
		b.work = w
		return b, nil
	case TypeChange:
		if len(data) != 32+32+64+8 {
			return nil, fmt.Errorf("block: bad change length %d", len(data))
		}
		b := &Change{}
		copy(b.Previous[:], data[0:32])
		copy(b.Representative[:], data[32:64])
		copy(b.sig[:], data[64:128])
		w, err := types.WorkFromBytes(data[128:136])
		if err != nil {
			return nil, err
		}
		b.work = w
		return b, nil
	case TypeState:
		const fixed = 32*5 + 16 + 64 + 8
		if len(data) != fixed {
			return nil, fmt.Errorf("block: bad state length %d", len(data))
		}
		b := &State{}
		copy(b.Account[:], data[0:32])
		copy(b.Previous[:], data[32:64])
		copy(b.Representative[:], data[64:96])
		bal, err := types.AmountFromBytes(data[96:112])
		if err != nil {
			return nil, err
		}
		b.Balance = bal
		copy(b.Link[:], data[112:144])
		copy(b.TokenHash[:], data[144:176])
		copy(b.sig[:], data[176:240])
		w, err := types.WorkFromBytes(data[240:248])
		if err != nil {
			return nil, err
		}
		b.work = w
		return b, nil
	case TypeSmartContract:
		const headLen = 32 + 32 + 32 + 16
		if len(data) < headLen+64+8 {
			return nil, fmt.Errorf("block: bad smart_contract length %d", len(data))
		}
		b := &SmartContract{}
		copy(b.ScAccount[:], data[0:32])
		copy(b.ScOwnerAccount[:], data[32:64])
		copy(b.AbiHash[:], data[64:96])
		abiLen := binary.BigEndian.Uint64(data[96+8 : 96+16])
		abiStart := headLen
		abiEnd := abiStart + int(abiLen)
		if len(data) != abiEnd+64+8 {
			return nil, fmt.Errorf("block: bad smart_contract abi length %d", abiLen)
		}
		b.AbiBytes = append([]byte(nil), data[abiStart:abiEnd]...)
		copy(b.sig[:], data[abiEnd:abiEnd+64])
		w, err := types.WorkFromBytes(data[abiEnd+64 : abiEnd+72])
		if err != nil {
			return nil, err
		}
		b.work = w
		return b, nil
	default:
		return nil, fmt.Errorf("block: unknown type %v", t)
	}
}
