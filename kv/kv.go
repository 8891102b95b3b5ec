// Package kv defines the ordered key-value contract the ledger tables live
// in, and Txn, the write-set used to stage a single ledger operation before
// it is committed as one atomic Batch.
package kv

import (
	"bytes"
	"errors"
	"sort"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is an ordered key-value store.
//
// Iterate visits keys in ascending byte order. Keys and values handed to fn
// are copies and may be retained.
type Store interface {
	Get(key []byte) ([]byte, error)
	Iterate(prefix []byte, fn func(key, value []byte) error) error
	Write(b *Batch) error
	Close() error
}

// Op is a single write of a Batch.
type Op struct {
	Key    []byte
	Value  []byte
	Delete bool
}

// Batch is a list of writes applied atomically by Store.Write.
// Its zero value is ready to use.
type Batch struct {
	ops []Op
}

// Set records a put of value under key.
func (b *Batch) Set(key, value []byte) {
	b.ops = append(b.ops, Op{Key: key, Value: value})
}

// Delete records the removal of key.
func (b *Batch) Delete(key []byte) {
	b.ops = append(b.ops, Op{Key: key, Delete: true})
}

// Len returns the number of writes in the batch.
func (b *Batch) Len() int { return len(b.ops) }

// Ops returns the writes in the order they were recorded.
func (b *Batch) Ops() []Op { return b.ops }

// Txn buffers reads and writes over a Store. Reads see the pending writes.
// Nothing reaches the Store until Commit.
type Txn struct {
	store   Store
	pending map[string][]byte // nil value marks a deletion
}

// NewTxn starts an empty write-set over s.
func NewTxn(s Store) *Txn {
	return &Txn{store: s, pending: make(map[string][]byte)}
}

// Get returns the value of key as seen by this transaction.
func (t *Txn) Get(key []byte) ([]byte, error) {
	if v, ok := t.pending[string(key)]; ok {
		if v == nil {
			return nil, ErrNotFound
		}
		return v, nil
	}
	return t.store.Get(key)
}

// Set stages a put.
func (t *Txn) Set(key, value []byte) {
	if value == nil {
		value = []byte{}
	}
	t.pending[string(key)] = value
}

// Delete stages a removal.
func (t *Txn) Delete(key []byte) {
	t.pending[string(key)] = nil
}

// Dirty reports whether any write is staged.
func (t *Txn) Dirty() bool { return len(t.pending) > 0 }

// Iterate visits every key with prefix as seen by this transaction, in
// ascending order.
func (t *Txn) Iterate(prefix []byte, fn func(key, value []byte) error) error {
	merged := make(map[string][]byte)
	err := t.store.Iterate(prefix, func(k, v []byte) error {
		merged[string(k)] = v
		return nil
	})
	if err != nil {
		return err
	}
	for k, v := range t.pending {
		if !bytes.HasPrefix([]byte(k), prefix) {
			continue
		}
		if v == nil {
			delete(merged, k)
		} else {
			merged[k] = v
		}
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := fn([]byte(k), merged[k]); err != nil {
			return err
		}
	}
	return nil
}

// Batch returns the staged writes sorted by key.
func (t *Txn) Batch() *Batch {
	keys := make([]string, 0, len(t.pending))
	for k := range t.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b := new(Batch)
	for _, k := range keys {
		if v := t.pending[k]; v == nil {
			b.Delete([]byte(k))
		} else {
			b.Set([]byte(k), v)
		}
	}
	return b
}

// Commit writes the staged writes to the store in a single batch and resets
// the transaction.
func (t *Txn) Commit() error {
	if !t.Dirty() {
		return nil
	}
	if err := t.store.Write(t.Batch()); err != nil {
		return err
	}
	t.Discard()
	return nil
}

// Discard drops every staged write.
func (t *Txn) Discard() {
	clear(t.pending)
}
