package match

import (
	"strconv"
	"testing"

	"github.com/hupe1980/addrtrie/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPair is the two-entry gazetteer from the skip-tolerance contract:
// "7 LOVE LANE KINGS LANGLEY" -> 9 and its annex -> 10.
func buildPair(t *testing.T) *trie.Trie {
	t.Helper()
	b := trie.NewBuilder()
	b.Insert([]string{"7", "LOVE", "LANE", "KINGS", "LANGLEY"}, 9)
	b.Insert([]string{"ANNEX", "7", "LOVE", "LANE", "KINGS", "LANGLEY"}, 10)
	return b.Build()
}

// buildStreet inserts houses 1..12 on LOVE LANE KINGS LANGLEY with
// identifiers 101..112, giving interior nodes counts above the default
// skip/entry support thresholds.
func buildStreet(t *testing.T) *trie.Trie {
	t.Helper()
	b := trie.NewBuilder()
	for house := 1; house <= 12; house++ {
		b.Insert([]string{strconv.Itoa(house), "LOVE", "LANE", "KINGS", "LANGLEY"}, uint64(100+house))
	}
	return b.Build()
}

func TestFindExact(t *testing.T) {
	tr := buildPair(t)

	uprn, ok := Find(tr, []string{"7", "LOVE", "LANE", "KINGS", "LANGLEY"}, DefaultParams())
	require.True(t, ok)
	assert.Equal(t, uint64(9), uprn)

	uprn, ok = Find(tr, []string{"ANNEX", "7", "LOVE", "LANE", "KINGS", "LANGLEY"}, DefaultParams())
	require.True(t, ok)
	assert.Equal(t, uint64(10), uprn)
}

func TestFindEmptyTokens(t *testing.T) {
	tr := buildPair(t)

	_, ok := Find(tr, nil, DefaultParams())
	assert.False(t, ok)
}

func TestFindTrailingNoise(t *testing.T) {
	tr := buildPair(t)
	tokens := []string{"7", "LOVE", "LANE", "KINGS", "LANGLEY", "EXTRA"}

	t.Run("tolerated with trailing-ignore budget", func(t *testing.T) {
		uprn, ok := Find(tr, tokens, DefaultParams())
		require.True(t, ok)
		assert.Equal(t, uint64(9), uprn)
	})

	t.Run("fails with no budget at all", func(t *testing.T) {
		p := DefaultParams()
		p.MaxTrailingTokensIgnored = 0
		p.SkipMaxInWalk = 0

		_, ok := Find(tr, tokens, p)
		assert.False(t, ok)

		out := Classify(tr, tokens, p)
		assert.Equal(t, StatusNoPath, out.Status)
	})
}

func TestFindMidWalkSkip(t *testing.T) {
	tr := buildStreet(t)

	// Noise between street and house number: the walk misses at LANE, looks
	// ahead, and lands on LOVE (count 12 > SkipMinLocalCount).
	tokens := []string{"7", "LOVE", "NOISE", "LANE", "KINGS", "LANGLEY"}
	uprn, ok := Find(tr, tokens, DefaultParams())
	require.True(t, ok)
	assert.Equal(t, uint64(107), uprn)
}

func TestFindEntryNodeTolerance(t *testing.T) {
	tr := buildStreet(t)

	// Missing the root-side token LANGLEY entirely: the walk starts from a
	// precomputed entry node instead of the root.
	uprn, ok := Find(tr, []string{"7", "LOVE", "LANE", "KINGS"}, DefaultParams())
	require.True(t, ok)
	assert.Equal(t, uint64(107), uprn)
}

func TestFindAmbiguous(t *testing.T) {
	b := trie.NewBuilder()
	tokens := []string{"1", "HIGH", "STREET", "WATFORD"}
	b.Insert(tokens, 100)
	b.Insert(tokens, 200)
	tr := b.Build()

	_, ok := Find(tr, tokens, DefaultParams())
	assert.False(t, ok)

	out := Classify(tr, tokens, DefaultParams())
	assert.Equal(t, StatusAmbiguous, out.Status)
	assert.Equal(t, uint32(2), out.NodeTerminals)
	assert.True(t, out.ConsumedAll)
}

func TestClassify(t *testing.T) {
	tr := buildStreet(t)

	tests := []struct {
		name   string
		tokens []string
		want   Status
	}{
		{"exact", []string{"7", "LOVE", "LANE", "KINGS", "LANGLEY"}, StatusExact},
		{"insufficient detail", []string{"LANE", "KINGS", "LANGLEY"}, StatusInsufficient},
		{"no path", []string{"COMPLETELY", "UNKNOWN"}, StatusNoPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Classify(tr, tt.tokens, DefaultParams())
			assert.Equal(t, tt.want, out.Status)
		})
	}
}

func TestClassifyExactFields(t *testing.T) {
	tr := buildStreet(t)

	out := Classify(tr, []string{"7", "LOVE", "LANE", "KINGS", "LANGLEY"}, DefaultParams())
	assert.Equal(t, StatusExact, out.Status)
	assert.Equal(t, uint64(107), out.UPRN)
	assert.Equal(t, 5, out.MatchedLength)
	assert.True(t, out.ConsumedAll)
}

func TestClassifyEmptyTrie(t *testing.T) {
	tr := trie.NewBuilder().Build()

	out := Classify(tr, []string{"7", "LOVE", "LANE"}, DefaultParams())
	assert.Equal(t, StatusNoPath, out.Status)
	assert.Equal(t, 0, out.MatchedLength)
}

func TestClampParams(t *testing.T) {
	assert.Equal(t, uint32(0), Clamp(-5))
	assert.Equal(t, uint32(0), Clamp(0))
	assert.Equal(t, uint32(7), Clamp(7))
	assert.Equal(t, uint32(0xFFFFFFFF), Clamp(int64(0xFFFFFFFF)))
	assert.Equal(t, uint32(0xFFFFFFFF), Clamp(int64(0x1_0000_0000)))
}
