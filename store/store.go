// Package store implements the persistent tables spec.md §3 names —
// blocks, accounts, pending, representation, frontier, block_info,
// checksum, abi — as typed views over a keyvaluedb.KeyValueDB. It knows
// nothing about block-processing semantics; package ledger is the only
// caller that decides what to read or write and in what order.
package store

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/accountchain/ledger/block"
	"github.com/accountchain/ledger/keyvaluedb"
	"github.com/accountchain/ledger/types"
)

// Store opens transactions against a keyvaluedb.KeyValueDB and exposes
// them as the typed Tx below.
type Store struct {
	db keyvaluedb.KeyValueDB
}

func New(db keyvaluedb.KeyValueDB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// BeginRead opens a read-only transaction: a consistent snapshot any
// number of which may be open concurrently with the single writer
// (spec.md §5).
func (s *Store) BeginRead() (*Tx, error) {
	tx, err := s.db.Begin(false)
	if err != nil {
		return nil, fmt.Errorf("store: begin read: %w", err)
	}
	return &Tx{tx: tx, writable: false}, nil
}

// BeginWrite opens the single allowed read-write transaction. The caller
// MUST call Commit or Abort on every exit path (spec.md §5, §7: "Nothing
// partial is written").
func (s *Store) BeginWrite() (*Tx, error) {
	tx, err := s.db.Begin(true)
	if err != nil {
		return nil, fmt.Errorf("store: begin write: %w", err)
	}
	return &Tx{tx: tx, writable: true}, nil
}

// Tx is one ledger-store transaction, scoped to the eight tables of
// spec.md §3.
type Tx struct {
	tx       keyvaluedb.Tx
	writable bool
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Abort discards every write this transaction made on the bbolt backend;
// the in-memory backend (keyvaluedb/memorydb) has no undo log and keeps
// them. Named Abort rather than Rollback to keep it unambiguous next to
// ledger.Rollback, which undoes already-committed blocks.
func (t *Tx) Abort() error {
	return t.tx.Rollback()
}

func (t *Tx) bucket(name []byte) keyvaluedb.Tx {
	return t.tx.Bucket(name)
}

func get[T any](b keyvaluedb.Tx, key []byte) (T, bool, error) {
	var out T
	raw, found, err := b.Get(key)
	if err != nil || !found {
		return out, found, err
	}
	if err := cbor.Unmarshal(raw, &out); err != nil {
		return out, true, fmt.Errorf("store: decoding row: %w", err)
	}
	return out, true, nil
}

func put(b keyvaluedb.Tx, key []byte, v any) error {
	raw, err := cbor.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encoding row: %w", err)
	}
	return b.Put(key, raw)
}

// ---- blocks ----

func (t *Tx) GetBlock(hash types.Hash) (block.Block, types.Hash, bool, error) {
	rec, found, err := get[BlockRecord](t.bucket(tableBlocks), hash[:])
	if err != nil || !found {
		return nil, types.ZeroHash, found, err
	}
	blk, err := block.Decode(rec.Type, rec.Bytes)
	if err != nil {
		return nil, types.ZeroHash, true, fmt.Errorf("store: decoding block %s: %w", hash, err)
	}
	return blk, rec.Successor, true, nil
}

func (t *Tx) HasBlock(hash types.Hash) (bool, error) {
	_, found, err := t.bucket(tableBlocks).Get(hash[:])
	return found, err
}

func (t *Tx) PutBlock(hash types.Hash, blk block.Block, successor types.Hash) error {
	raw, err := block.Encode(blk)
	if err != nil {
		return fmt.Errorf("store: encoding block %s: %w", hash, err)
	}
	return put(t.bucket(tableBlocks), hash[:], BlockRecord{Type: blk.Type(), Bytes: raw, Successor: successor})
}

// SetSuccessor records, for an existing block, the hash of the block that
// now follows it. Applying a send/receive/change/open block must update
// its predecessor's successor pointer; rolling one back must clear it.
func (t *Tx) SetSuccessor(hash types.Hash, successor types.Hash) error {
	rec, found, err := get[BlockRecord](t.bucket(tableBlocks), hash[:])
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("store: set successor: block %s not found", hash)
	}
	rec.Successor = successor
	return put(t.bucket(tableBlocks), hash[:], rec)
}

func (t *Tx) DeleteBlock(hash types.Hash) error {
	return t.bucket(tableBlocks).Delete(hash[:])
}

// ---- accounts ----

func (t *Tx) GetAccountInfo(account types.Account, token types.TokenType) (AccountInfo, bool, error) {
	return get[AccountInfo](t.bucket(tableAccounts), accountKey(account, token))
}

func (t *Tx) PutAccountInfo(account types.Account, token types.TokenType, info AccountInfo) error {
	return put(t.bucket(tableAccounts), accountKey(account, token), info)
}

func (t *Tx) DeleteAccountInfo(account types.Account, token types.TokenType) error {
	return t.bucket(tableAccounts).Delete(accountKey(account, token))
}

// ---- pending ----

func (t *Tx) GetPending(destination types.Account, send types.Hash) (PendingInfo, bool, error) {
	return get[PendingInfo](t.bucket(tablePending), pendingKey(destination, send))
}

func (t *Tx) PutPending(destination types.Account, send types.Hash, info PendingInfo) error {
	return put(t.bucket(tablePending), pendingKey(destination, send), info)
}

func (t *Tx) DeletePending(destination types.Account, send types.Hash) error {
	return t.bucket(tablePending).Delete(pendingKey(destination, send))
}

// ---- representation ----

func (t *Tx) GetWeight(repBlock types.Hash) (types.Amount, error) {
	amt, found, err := get[types.Amount](t.bucket(tableRepresentation), repBlock[:])
	if err != nil {
		return types.ZeroAmount, err
	}
	if !found {
		return types.ZeroAmount, nil
	}
	return amt, nil
}

// AddWeight adds amount to the cumulative vote weight pinned to repBlock
// (spec.md invariant 4).
func (t *Tx) AddWeight(repBlock types.Hash, amount types.Amount) error {
	if repBlock.IsZero() || amount.IsZero() {
		return nil
	}
	cur, err := t.GetWeight(repBlock)
	if err != nil {
		return err
	}
	return put(t.bucket(tableRepresentation), repBlock[:], cur.Add(amount))
}

// SubWeight subtracts amount from repBlock's weight, deleting the row
// when it reaches zero rather than leaving a zero-valued row behind.
func (t *Tx) SubWeight(repBlock types.Hash, amount types.Amount) error {
	if repBlock.IsZero() || amount.IsZero() {
		return nil
	}
	cur, err := t.GetWeight(repBlock)
	if err != nil {
		return err
	}
	next := cur.Sub(amount)
	if next.IsZero() {
		return t.bucket(tableRepresentation).Delete(repBlock[:])
	}
	return put(t.bucket(tableRepresentation), repBlock[:], next)
}

// ---- frontier ----

func (t *Tx) GetFrontier(blockHash types.Hash) (types.Account, bool, error) {
	return get[types.Account](t.bucket(tableFrontier), blockHash[:])
}

func (t *Tx) PutFrontier(blockHash types.Hash, account types.Account) error {
	return put(t.bucket(tableFrontier), blockHash[:], account)
}

func (t *Tx) DeleteFrontier(blockHash types.Hash) error {
	return t.bucket(tableFrontier).Delete(blockHash[:])
}

// ---- block_info ----

func (t *Tx) GetBlockInfo(hash types.Hash) (BlockInfo, bool, error) {
	return get[BlockInfo](t.bucket(tableBlockInfo), hash[:])
}

func (t *Tx) PutBlockInfo(hash types.Hash, info BlockInfo) error {
	return put(t.bucket(tableBlockInfo), hash[:], info)
}

func (t *Tx) DeleteBlockInfo(hash types.Hash) error {
	return t.bucket(tableBlockInfo).Delete(hash[:])
}

// ---- checksum ----

func (t *Tx) GetChecksum() (types.Hash, error) {
	h, found, err := get[types.Hash](t.bucket(tableChecksum), checksumKey)
	if err != nil || !found {
		return types.ZeroHash, err
	}
	return h, nil
}

// XorChecksum folds hash into the running checksum, maintaining spec.md
// invariant 6. It is called symmetrically on block entry and removal.
func (t *Tx) XorChecksum(hash types.Hash) error {
	cur, err := t.GetChecksum()
	if err != nil {
		return err
	}
	return put(t.bucket(tableChecksum), checksumKey, cur.Xor(hash))
}

// ---- abi ----

func (t *Tx) GetAbi(hash types.Hash) ([]byte, bool, error) {
	return t.bucket(tableAbi).Get(hash[:])
}

func (t *Tx) PutAbi(hash types.Hash, abi []byte) error {
	return t.bucket(tableAbi).Put(hash[:], abi)
}

func (t *Tx) DeleteAbi(hash types.Hash) error {
	return t.bucket(tableAbi).Delete(hash[:])
}
