// Package cache memoizes parsed tries by the content hash of their
// serialized bytes.
//
// A TrieCache is NOT internally synchronized. It assumes a single owner, one
// cache per worker; concurrent use requires either one cache per goroutine or
// externally supplied locking. This is a documented constraint of the
// per-worker context model, not an oversight: lookups are short, CPU bound
// and lock-free on the hot path. The cached tries themselves are immutable
// and safe to share across any number of readers, and a trie handed out by
// Get stays valid even after its entry is evicted.
package cache

import (
	"container/list"

	"github.com/hupe1980/addrtrie/codec"
	"github.com/hupe1980/addrtrie/internal/hash"
	"github.com/hupe1980/addrtrie/trie"
)

// DefaultCapacity is the entry bound used when no capacity is given.
const DefaultCapacity = 64

// TrieCache is a bounded LRU mapping blob content hashes to parsed tries.
type TrieCache struct {
	capacity int
	items    map[uint64]*list.Element
	lru      *list.List // front = most recently used

	hits   uint64
	misses uint64
}

type entry struct {
	key   uint64
	value *trie.Trie
}

// New creates a TrieCache holding at most capacity parsed tries.
// A capacity below 1 falls back to DefaultCapacity.
func New(capacity int) *TrieCache {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &TrieCache{
		capacity: capacity,
		items:    make(map[uint64]*list.Element, capacity),
		lru:      list.New(),
	}
}

// Get returns the trie cached under key, promoting it to most recently used.
func (c *TrieCache) Get(key uint64) (*trie.Trie, bool) {
	el, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.lru.MoveToFront(el)
	return el.Value.(*entry).value, true
}

// Put caches a parsed trie under key, evicting the least recently used entry
// when the cache is full. Putting an existing key replaces its value and
// promotes it.
func (c *TrieCache) Put(key uint64, t *trie.Trie) {
	if el, ok := c.items[key]; ok {
		el.Value.(*entry).value = t
		c.lru.MoveToFront(el)
		return
	}
	el := c.lru.PushFront(&entry{key: key, value: t})
	c.items[key] = el
	if len(c.items) > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.items, oldest.Value.(*entry).key)
		}
	}
}

// Len returns the number of cached tries.
func (c *TrieCache) Len() int {
	return len(c.items)
}

// Stats returns the hit and miss counters.
func (c *TrieCache) Stats() (hits, misses uint64) {
	return c.hits, c.misses
}

// GetOrParse returns the parsed trie for blob, decoding and caching it on a
// miss. The key is the FNV-1a hash of the raw bytes, so identical blobs parse
// once per cache lifetime. Decode failures are returned as ordinary errors
// and nothing is cached for them.
func (c *TrieCache) GetOrParse(blob []byte) (*trie.Trie, error) {
	key := hash.FNV1a64(blob)
	if t, ok := c.Get(key); ok {
		return t, nil
	}
	t, err := codec.Decode(blob)
	if err != nil {
		return nil, err
	}
	c.Put(key, t)
	return t, nil
}
