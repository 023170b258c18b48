package storage

import (
	"encoding/binary"
	"encoding/json"

	"github.com/dgraph-io/badger/v4"
)

// Entry is one cached probe outcome, keyed by position hash.
type Entry struct {
	Found bool `json:"found"`
	WDL   int  `json:"wdl"`
	DTZ   int  `json:"dtz"`
}

// Cache wraps BadgerDB for persistent probe caching. Remote probes are
// slow and rate limited; results never change, so they cache forever.
type Cache struct {
	db *badger.DB
}

// OpenCache opens (or creates) the probe cache in the given directory.
// Pass an empty dir to use the default location.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		var err error
		dir, err = GetCacheDBDir()
		if err != nil {
			return nil, err
		}
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // badger's own logging is noise here

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func cacheKey(key uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], key)
	return buf[:]
}

// Get returns the cached entry for a position hash, if present.
func (c *Cache) Get(key uint64) (Entry, bool, error) {
	var entry Entry
	found := false

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKey(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &entry); err != nil {
				return err
			}
			found = true
			return nil
		})
	})
	return entry, found, err
}

// Put stores the entry for a position hash.
func (c *Cache) Put(key uint64, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cacheKey(key), data)
	})
}
