// Package keyvaluedb defines the minimal transactional key-value contract
// the ledger store is built on, modeled directly on the teacher's
// internal/keyvaluedb package: a Reader/Writer pair, an iterator, and a
// Tx that must always be completed by Commit or Rollback.
package keyvaluedb

import "errors"

// ErrNotFound is a sentinel for a missing key, for call sites that want
// the idiomatic error form. Reader.Get below never returns it: it reports
// a missing key through its boolean result instead.
var ErrNotFound = errors.New("keyvaluedb: key not found")

// Reader reads from a bucket.
type Reader interface {
	// Get reads the value for key. The second return value is false if
	// the key does not exist.
	Get(key []byte) (value []byte, found bool, err error)
}

// Writer writes to a bucket.
type Writer interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// Iterator walks a bucket in binary-alphabetical key order.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Close() error
}

// Iterable creates iterators over a bucket, optionally restricted to keys
// sharing a prefix.
type Iterable interface {
	// Iterate returns a forward iterator over all keys with the given
	// prefix (nil or empty prefix iterates the whole bucket).
	// NB! the iterator must always be closed, or the enclosing
	// transaction deadlocks on its next operation.
	Iterate(prefix []byte) Iterator
}

// Tx is one key-value transaction: a consistent read-only snapshot, or an
// exclusive read-write view. Every Tx obtained from a KeyValueDB MUST be
// completed by exactly one call to Commit or Rollback, on every exit
// path — including error paths — mirroring the teacher's "NB! all
// transactions MUST be completed" contract.
type Tx interface {
	Reader
	Writer
	Iterable
	// Bucket scopes subsequent Reader/Writer/Iterable calls to the named
	// table. Tables are created on first use within a write
	// transaction.
	Bucket(name []byte) Tx
	Commit() error
	Rollback() error
}

// KeyValueDB is the storage engine the ledger store opens transactions
// against.
type KeyValueDB interface {
	// Begin starts a new transaction. writable selects read-write vs.
	// read-only; per spec.md §5 only one read-write transaction may be
	// open at a time, while any number of read-only transactions may run
	// concurrently with it.
	Begin(writable bool) (Tx, error)
	Close() error
}
