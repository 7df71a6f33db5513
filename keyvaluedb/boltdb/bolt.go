// Package boltdb implements keyvaluedb.KeyValueDB on top of go.etcd.io/bbolt,
// the teacher's storage engine of choice (keyvaluedb/boltdb/bolt_db.go in
// the teacher repository). bbolt gives the ledger exactly the semantics
// spec.md §5 requires: a single writer, any number of concurrent readers,
// and linearizable read-write transactions.
package boltdb

import (
	"fmt"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/accountchain/ledger/keyvaluedb"
	"github.com/accountchain/ledger/logger"
)

type DB struct {
	db  *bolt.DB
	log *slog.Logger
}

// Open opens (creating if necessary) a bbolt file at path. log may be nil,
// in which case slog.Default() is used — the ledger core never logs
// (spec.md §7), this is purely for the store/db wiring layer.
func Open(path string, log *slog.Logger) (*DB, error) {
	if log == nil {
		log = slog.Default()
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		log.Error("opening bolt store", logger.Error(err), logger.Data(path))
		return nil, fmt.Errorf("boltdb: opening %s: %w", path, err)
	}
	log.Info("opened bolt store", logger.Data(path))
	return &DB{db: db, log: log}, nil
}

func (d *DB) Begin(writable bool) (keyvaluedb.Tx, error) {
	tx, err := d.db.Begin(writable)
	if err != nil {
		return nil, fmt.Errorf("boltdb: begin(writable=%v): %w", writable, err)
	}
	return &Tx{tx: tx}, nil
}

func (d *DB) Close() error {
	if err := d.db.Close(); err != nil {
		d.log.Error("closing bolt store", logger.Error(err))
		return err
	}
	d.log.Info("closed bolt store")
	return nil
}

func (d *DB) Path() string {
	return d.db.Path()
}

type Tx struct {
	tx     *bolt.Tx
	bucket *bolt.Bucket
}

func (t *Tx) Bucket(name []byte) keyvaluedb.Tx {
	b := t.tx.Bucket(name)
	if b == nil && t.tx.Writable() {
		var err error
		b, err = t.tx.CreateBucketIfNotExists(name)
		if err != nil {
			// bbolt only returns an error here for a closed/non-writable
			// tx, both of which are caller bugs we want to surface loudly
			// rather than silently drop a table.
			panic(fmt.Sprintf("boltdb: creating bucket %q: %v", name, err))
		}
	}
	return &Tx{tx: t.tx, bucket: b}
}

func (t *Tx) Get(key []byte) ([]byte, bool, error) {
	if t.bucket == nil {
		return nil, false, nil
	}
	v := t.bucket.Get(key)
	if v == nil {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (t *Tx) Put(key, value []byte) error {
	if t.bucket == nil {
		return fmt.Errorf("boltdb: put on unscoped transaction")
	}
	return t.bucket.Put(key, value)
}

func (t *Tx) Delete(key []byte) error {
	if t.bucket == nil {
		return fmt.Errorf("boltdb: delete on unscoped transaction")
	}
	return t.bucket.Delete(key)
}

func (t *Tx) Iterate(prefix []byte) keyvaluedb.Iterator {
	if t.bucket == nil {
		return &emptyIterator{}
	}
	return &boltIterator{c: t.bucket.Cursor(), prefix: prefix, first: true}
}

// Commit commits a read-write transaction. bbolt cannot commit a read-only
// one, so Commit completes it by releasing it instead.
func (t *Tx) Commit() error {
	if !t.tx.Writable() {
		return t.tx.Rollback()
	}
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

type boltIterator struct {
	c          *bolt.Cursor
	prefix     []byte
	first      bool
	key, value []byte
}

func (it *boltIterator) Next() bool {
	var k, v []byte
	if it.first {
		it.first = false
		if len(it.prefix) == 0 {
			k, v = it.c.First()
		} else {
			k, v = it.c.Seek(it.prefix)
		}
	} else {
		k, v = it.c.Next()
	}
	if k == nil || (len(it.prefix) > 0 && !hasPrefix(k, it.prefix)) {
		it.key, it.value = nil, nil
		return false
	}
	it.key, it.value = k, v
	return true
}

func (it *boltIterator) Key() []byte   { return it.key }
func (it *boltIterator) Value() []byte { return it.value }
func (it *boltIterator) Close() error  { return nil }

func hasPrefix(k, prefix []byte) bool {
	if len(k) < len(prefix) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

type emptyIterator struct{}

func (emptyIterator) Next() bool   { return false }
func (emptyIterator) Key() []byte  { return nil }
func (emptyIterator) Value() []byte { return nil }
func (emptyIterator) Close() error { return nil }
