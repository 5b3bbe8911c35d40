// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package poster

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/cinematch/internal/metrics"
)

// Persistent is a durable poster URL store that outlives the process.
type Persistent interface {
	Get(id int64) (string, bool, error)
	Put(id int64, url string) error
	Close() error
}

// memoryCache holds resolved URLs for the life of the process. Entries are
// never evicted; catalog artwork does not change.
type memoryCache struct {
	mu   sync.RWMutex
	urls map[int64]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{urls: make(map[int64]string)}
}

func (c *memoryCache) get(id int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	url, ok := c.urls[id]
	return url, ok
}

func (c *memoryCache) put(id int64, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.urls[id] = url
	metrics.PosterCacheEntries.Set(float64(len(c.urls)))
}

func (c *memoryCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.urls)
}

const badgerKeyPrefix = "poster:"

// BadgerStore persists poster URLs in BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a BadgerDB poster store at path.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.ValueLogFileSize = 16 << 20
	return openBadger(opts)
}

// OpenInMemoryBadgerStore opens a BadgerDB poster store that lives only in
// memory.
func OpenInMemoryBadgerStore() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts)
}

func openBadger(opts badger.Options) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for posters: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func badgerKey(id int64) []byte {
	return []byte(badgerKeyPrefix + strconv.FormatInt(id, 10))
}

// Get returns the stored URL for id.
func (s *BadgerStore) Get(id int64) (string, bool, error) {
	var url string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			url = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get poster %d: %w", id, err)
	}
	return url, true, nil
}

// Put stores the URL for id.
func (s *BadgerStore) Put(id int64, url string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(id), []byte(url))
	})
	if err != nil {
		return fmt.Errorf("put poster %d: %w", id, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
