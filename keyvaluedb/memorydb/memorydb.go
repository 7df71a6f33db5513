// Package memorydb is an in-memory keyvaluedb.KeyValueDB, modeled on the
// teacher's internal/keyvaluedb/memorydb package. It exists for fast unit
// tests of the ledger processor that don't need to exercise the bbolt
// backend itself.
package memorydb

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/accountchain/ledger/keyvaluedb"
)

type DB struct {
	mu      sync.Mutex
	buckets map[string]map[string][]byte
}

func New() *DB {
	return &DB{buckets: make(map[string]map[string][]byte)}
}

func (db *DB) Begin(writable bool) (keyvaluedb.Tx, error) {
	db.mu.Lock()
	if !writable {
		db.mu.Unlock()
	}
	return &tx{db: db, writable: writable}, nil
}

func (db *DB) Close() error { return nil }

type tx struct {
	db       *DB
	writable bool
	done     bool
	bucket   string
}

func (t *tx) Bucket(name []byte) keyvaluedb.Tx {
	return &tx{db: t.db, writable: t.writable, bucket: string(name)}
}

func (t *tx) table() map[string][]byte {
	b, ok := t.db.buckets[t.bucket]
	if !ok {
		b = make(map[string][]byte)
		t.db.buckets[t.bucket] = b
	}
	return b
}

func (t *tx) Get(key []byte) ([]byte, bool, error) {
	v, ok := t.db.buckets[t.bucket][string(key)]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (t *tx) Put(key, value []byte) error {
	if !t.writable {
		return fmt.Errorf("memorydb: put on read-only transaction")
	}
	v := make([]byte, len(value))
	copy(v, value)
	t.table()[string(key)] = v
	return nil
}

func (t *tx) Delete(key []byte) error {
	if !t.writable {
		return fmt.Errorf("memorydb: delete on read-only transaction")
	}
	delete(t.db.buckets[t.bucket], string(key))
	return nil
}

func (t *tx) Iterate(prefix []byte) keyvaluedb.Iterator {
	table := t.db.buckets[t.bucket]
	keys := make([]string, 0, len(table))
	for k := range table {
		if bytes.HasPrefix([]byte(k), prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return &iterator{table: table, keys: keys, idx: -1}
}

func (t *tx) Commit() error {
	t.finish()
	return nil
}

func (t *tx) Rollback() error {
	// the in-memory backend mutates eagerly and has no undo log; tests
	// that need rollback semantics exercise the bbolt backend instead.
	t.finish()
	return nil
}

func (t *tx) finish() {
	if t.done {
		return
	}
	t.done = true
	if t.writable {
		t.db.mu.Unlock()
	}
}

type iterator struct {
	table map[string][]byte
	keys  []string
	idx   int
}

func (it *iterator) Next() bool {
	it.idx++
	return it.idx < len(it.keys)
}

func (it *iterator) Key() []byte {
	return []byte(it.keys[it.idx])
}

func (it *iterator) Value() []byte {
	return it.table[it.keys[it.idx]]
}

func (it *iterator) Close() error { return nil }
