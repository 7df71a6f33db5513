package store

import (
	"github.com/accountchain/ledger/block"
	"github.com/accountchain/ledger/types"
)

// Table names, one bucket per table of spec.md §3.
var (
	tableBlocks         = []byte("blocks")
	tableAccounts       = []byte("accounts")
	tablePending        = []byte("pending")
	tableRepresentation = []byte("representation")
	tableFrontier       = []byte("frontier")
	tableBlockInfo      = []byte("block_info")
	tableChecksum       = []byte("checksum")
	tableAbi            = []byte("abi")
)

// checksumKey is the fixed (0,0) key spec.md §3 describes for the single
// checksum row.
var checksumKey = []byte{0, 0}

// BlockRecord is the value stored for every block: its wire-encoded bytes
// (so the same bytes that hash to the key round-trip exactly) plus the
// successor pointer the rollback and account() walks need.
type BlockRecord struct {
	Type      block.Type `cbor:"1,keyasint"`
	Bytes     []byte     `cbor:"2,keyasint"`
	Successor types.Hash `cbor:"3,keyasint"`
}

// AccountInfo is the accounts table row (spec.md §3).
type AccountInfo struct {
	Head         types.Hash   `cbor:"1,keyasint"`
	OpenBlock    types.Hash   `cbor:"2,keyasint"`
	RepBlock     types.Hash   `cbor:"3,keyasint"`
	Balance      types.Amount `cbor:"4,keyasint"`
	ModifiedTime int64        `cbor:"5,keyasint"`
	BlockCount   uint64       `cbor:"6,keyasint"`
}

// PendingInfo is the pending table row (spec.md §3).
type PendingInfo struct {
	Source    types.Account   `cbor:"1,keyasint"`
	Amount    types.Amount    `cbor:"2,keyasint"`
	TokenType types.TokenType `cbor:"3,keyasint"`
}

// BlockInfo is the block_info checkpoint row (spec.md §3, §4.3
// "block-info checkpointing").
type BlockInfo struct {
	Account types.Account `cbor:"1,keyasint"`
	Balance types.Amount  `cbor:"2,keyasint"`
}

func accountKey(account types.Account, token types.TokenType) []byte {
	key := make([]byte, 0, types.AccountLength+types.HashLength)
	key = append(key, account[:]...)
	key = append(key, token[:]...)
	return key
}

func pendingKey(destination types.Account, send types.Hash) []byte {
	key := make([]byte, 0, types.AccountLength+types.HashLength)
	key = append(key, destination[:]...)
	key = append(key, send[:]...)
	return key
}
