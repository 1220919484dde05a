package cache

import (
	"strconv"
	"testing"

	"github.com/hupe1980/addrtrie/codec"
	"github.com/hupe1980/addrtrie/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedBlob(t *testing.T, street string, uprn uint64) []byte {
	t.Helper()
	b := trie.NewBuilder()
	b.Insert([]string{"1", street}, uprn)
	return codec.Finalize(b)
}

func TestLRUEviction(t *testing.T) {
	c := New(2)

	c.Put(1, nil)
	c.Put(2, nil)
	c.Put(3, nil) // evicts key 1

	_, ok := c.Get(1)
	assert.False(t, ok)
	_, ok = c.Get(2)
	assert.True(t, ok)
	_, ok = c.Get(3)
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestLRUGetPromotes(t *testing.T) {
	c := New(2)

	c.Put(1, nil)
	c.Put(2, nil)

	// Touch 1, making 2 the eviction candidate.
	_, ok := c.Get(1)
	require.True(t, ok)

	c.Put(3, nil)

	_, ok = c.Get(1)
	assert.True(t, ok)
	_, ok = c.Get(2)
	assert.False(t, ok)
}

func TestLRUPutExistingPromotes(t *testing.T) {
	c := New(2)

	c.Put(1, nil)
	c.Put(2, nil)
	c.Put(1, nil) // replace + promote
	c.Put(3, nil) // evicts 2, not 1

	_, ok := c.Get(1)
	assert.True(t, ok)
	_, ok = c.Get(2)
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestLRUCapacityFallback(t *testing.T) {
	c := New(0)
	for i := 0; i < DefaultCapacity; i++ {
		c.Put(uint64(i), nil)
	}
	assert.Equal(t, DefaultCapacity, c.Len())

	c.Put(uint64(DefaultCapacity), nil)
	assert.Equal(t, DefaultCapacity, c.Len())

	// First-inserted key is the one evicted.
	_, ok := c.Get(0)
	assert.False(t, ok)
}

func TestGetOrParse(t *testing.T) {
	c := New(4)
	blob := encodedBlob(t, "HIGH STREET", 42)

	first, err := c.GetOrParse(blob)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := c.GetOrParse(blob)
	require.NoError(t, err)
	// Identical bytes parse once: same instance comes back.
	assert.Same(t, first, second)

	hits, misses := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestGetOrParseDistinctBlobs(t *testing.T) {
	c := New(4)

	for i := 0; i < 3; i++ {
		_, err := c.GetOrParse(encodedBlob(t, "STREET "+strconv.Itoa(i), uint64(i+1)))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, c.Len())
}

func TestGetOrParseBadBlob(t *testing.T) {
	c := New(4)

	_, err := c.GetOrParse([]byte("not a trie"))
	assert.Error(t, err)
	// Failures are not cached.
	assert.Equal(t, 0, c.Len())

	_, err = c.GetOrParse([]byte("not a trie"))
	assert.Error(t, err)
}
