package block

import (
	"encoding/binary"

	"github.com/accountchain/ledger/crypto"
	"github.com/accountchain/ledger/types"
)

// preamble builds the 32-byte preamble state and smart_contract hashes
// are prefixed with; its low 8 bytes encode the block-type discriminant,
// big-endian, per spec.md §4.1/§6.
func preamble(t Type) []byte {
	p := make([]byte, 32)
	binary.BigEndian.PutUint64(p[24:], uint64(t))
	return p
}

func hashSend(b *Send) types.Hash {
	bal := b.Balance.Bytes()
	return types.Hash(crypto.Hash256(b.Previous[:], b.Destination[:], bal))
}

func hashReceive(b *Receive) types.Hash {
	return types.Hash(crypto.Hash256(b.Previous[:], b.Source[:]))
}

func hashOpen(b *Open) types.Hash {
	return types.Hash(crypto.Hash256(b.Source[:], b.Representative[:], b.Account[:]))
}

func hashChange(b *Change) types.Hash {
	return types.Hash(crypto.Hash256(b.Previous[:], b.Representative[:]))
}

func hashState(b *State) types.Hash {
	return types.Hash(crypto.Hash256(
		preamble(TypeState),
		b.Account[:],
		b.Previous[:],
		b.Representative[:],
		b.Balance.Bytes(),
		b.Link[:],
		b.TokenHash[:],
	))
}

// hashSmartContract hashes the identity commitment only (account, owner,
// abi_hash) rather than the full ABI payload: abi_hash already binds
// AbiBytes (spec.md §4.2 requires abi_hash == BLAKE2b(abi_bytes)), so
// re-hashing the payload here would make hashing cost scale with contract
// size for no additional binding.
func hashSmartContract(b *SmartContract) types.Hash {
	return types.Hash(crypto.Hash256(
		preamble(TypeSmartContract),
		b.ScAccount[:],
		b.ScOwnerAccount[:],
		b.AbiHash[:],
	))
}
