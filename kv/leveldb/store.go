// Package leveldb implements kv.Store on top of goleveldb, either on disk or
// fully in memory.
package leveldb

import (
	"fmt"
	"strings"

	"github.com/etnz/assets/kv"
	"github.com/sirupsen/logrus"
	goleveldb "github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const logModule = "leveldb"

// Store is a goleveldb-backed kv.Store.
type Store struct {
	db   *goleveldb.DB
	sync bool
}

// Open opens (or creates) a database in the directory at path. Writes are
// synced to disk.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	db, err := goleveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("open leveldb %q: %w", path, err)
	}
	logrus.WithFields(logrus.Fields{"module": logModule, "path": path}).Debug("opened store")
	return &Store{db: db, sync: true}, nil
}

// OpenMemory opens an empty database that lives in memory only.
func OpenMemory() (*Store, error) {
	db, err := goleveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open memory leveldb: %w", err)
	}
	return &Store{db: db}, nil
}

// Get implements kv.Store.
func (s *Store) Get(key []byte) ([]byte, error) {
	v, err := s.db.Get(key, nil)
	if err == goleveldb.ErrNotFound {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("leveldb get: %w", err)
	}
	return v, nil
}

// Iterate implements kv.Store.
func (s *Store) Iterate(prefix []byte, fn func(key, value []byte) error) error {
	it := s.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer it.Release()
	for it.Next() {
		// the iterator reuses its buffers
		k := append([]byte(nil), it.Key()...)
		v := append([]byte(nil), it.Value()...)
		if err := fn(k, v); err != nil {
			return err
		}
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("leveldb iterate: %w", err)
	}
	return nil
}

// Write implements kv.Store.
func (s *Store) Write(b *kv.Batch) error {
	batch := new(goleveldb.Batch)
	for _, op := range b.Ops() {
		if op.Delete {
			batch.Delete(op.Key)
		} else {
			batch.Put(op.Key, op.Value)
		}
	}
	if err := s.db.Write(batch, &opt.WriteOptions{Sync: s.sync}); err != nil {
		return fmt.Errorf("leveldb write: %w", err)
	}
	return nil
}

// Close implements kv.Store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
