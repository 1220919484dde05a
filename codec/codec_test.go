package codec

import (
	"encoding/binary"
	"strconv"
	"testing"

	"github.com/hupe1980/addrtrie/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSample(t *testing.T) *trie.Trie {
	t.Helper()
	b := trie.NewBuilder()
	b.Insert([]string{"7", "LOVE", "LANE", "KINGS", "LANGLEY"}, 9)
	b.Insert([]string{"ANNEX", "7", "LOVE", "LANE", "KINGS", "LANGLEY"}, 10)
	b.Insert([]string{"1", "HIGH", "STREET", "WATFORD"}, 11)
	b.Insert([]string{"1", "HIGH", "STREET", "WATFORD"}, 12) // ambiguous terminal
	return b.Build()
}

func TestRoundTrip(t *testing.T) {
	original := buildSample(t)

	blob := Encode(original)
	decoded, err := Decode(blob)
	require.NoError(t, err)

	assertNodeEqual(t, original.Root(), decoded.Root(), "")

	// And the round trip is byte-stable.
	assert.Equal(t, blob, Encode(decoded))
}

func TestRoundTripLargeUPRN(t *testing.T) {
	b := trie.NewBuilder()
	// Exercises both 32-bit halves of the identifier encoding.
	b.Insert([]string{"1", "HIGH", "STREET"}, 0x1234_5678_9ABC_DEF0)
	blob := Finalize(b)

	decoded, err := Decode(blob)
	require.NoError(t, err)

	n := decoded.WalkExact([]string{"1", "HIGH", "STREET"})
	require.NotNil(t, n)
	assert.Equal(t, uint64(0x1234_5678_9ABC_DEF0), n.UPRN)
}

func TestEncodeEmptyTrie(t *testing.T) {
	blob := Finalize(trie.NewBuilder())

	decoded, err := Decode(blob)
	require.NoError(t, err)
	require.NotNil(t, decoded.Root())
	assert.Equal(t, uint32(0), decoded.Root().Count)
	assert.True(t, decoded.Root().IsLeaf())
}

func TestDecodeLegacyQCK1(t *testing.T) {
	// Handcrafted legacy blob: root{count:2} -> "A"{count:2} -> leaf.
	var blob []byte
	blob = binary.LittleEndian.AppendUint32(blob, MagicQCK1)
	blob = append(blob, FlagsExpected)
	blob = binary.LittleEndian.AppendUint32(blob, 2) // root count
	blob = binary.LittleEndian.AppendUint32(blob, 1) // root child count
	blob = binary.LittleEndian.AppendUint32(blob, 1) // token length
	blob = append(blob, 'A')
	blob = binary.LittleEndian.AppendUint32(blob, 2) // child count field: count
	blob = binary.LittleEndian.AppendUint32(blob, 0) // child child count

	decoded, err := Decode(blob)
	require.NoError(t, err)

	n := decoded.WalkExact([]string{"A"})
	require.NotNil(t, n)
	assert.Equal(t, uint32(2), n.Count)
	// Legacy nodes carry no terminal counts or identifiers.
	assert.Equal(t, uint32(0), n.Terminals)
	assert.Equal(t, uint64(0), n.UPRN)
}

func TestDecodeErrors(t *testing.T) {
	valid := Encode(buildSample(t))

	badMagic := append([]byte{}, valid...)
	binary.LittleEndian.PutUint32(badMagic, 0xDEADBEEF)

	badFlags := append([]byte{}, valid...)
	badFlags[4] = 0x01

	trailing := append(append([]byte{}, valid...), 0x00)

	tests := []struct {
		name string
		blob []byte
		want error
	}{
		{"empty", nil, ErrTruncated},
		{"short header", valid[:3], ErrTruncated},
		{"bad magic", badMagic, ErrBadMagic},
		{"bad flags", badFlags, ErrBadFlags},
		{"truncated body", valid[:len(valid)-5], ErrTruncated},
		{"header only", valid[:5], ErrTruncated},
		{"trailing bytes", trailing, ErrTrailingBytes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.blob)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeRejectsHostileChildCount(t *testing.T) {
	// A child count far larger than the remaining bytes must fail before
	// any allocation, not during decoding.
	var blob []byte
	blob = binary.LittleEndian.AppendUint32(blob, MagicQCK2)
	blob = append(blob, FlagsExpected)
	blob = binary.LittleEndian.AppendUint32(blob, 1)          // count
	blob = binary.LittleEndian.AppendUint32(blob, 0)          // terminals
	blob = binary.LittleEndian.AppendUint32(blob, 0)          // uprn lo
	blob = binary.LittleEndian.AppendUint32(blob, 0)          // uprn hi
	blob = binary.LittleEndian.AppendUint32(blob, 0xFFFFFFFF) // child count

	_, err := Decode(blob)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	blob := Encode(buildSample(t))
	decoded, err := Decode(blob)
	require.NoError(t, err)

	// Corrupting the source buffer must not affect the parsed trie.
	for i := range blob {
		blob[i] = 0xFF
	}
	n := decoded.WalkExact([]string{"7", "LOVE", "LANE", "KINGS", "LANGLEY"})
	require.NotNil(t, n)
	assert.Equal(t, uint64(9), n.UPRN)
}

func TestRoundTripManyEntries(t *testing.T) {
	b := trie.NewBuilder()
	for house := 1; house <= 50; house++ {
		b.Insert([]string{strconv.Itoa(house), "STATION", "ROAD", "WATFORD"}, uint64(1000+house))
	}
	original := b.Build()

	decoded, err := Decode(Encode(original))
	require.NoError(t, err)
	assert.Equal(t, original.NodeCount(), decoded.NodeCount())
	assertNodeEqual(t, original.Root(), decoded.Root(), "")
}

func assertNodeEqual(t *testing.T, a, b *trie.Node, path string) {
	t.Helper()
	require.Equal(t, a == nil, b == nil, "node presence at %q", path)
	if a == nil {
		return
	}
	assert.Equal(t, a.Count, b.Count, "count at %q", path)
	assert.Equal(t, a.Terminals, b.Terminals, "terminals at %q", path)
	assert.Equal(t, a.UPRN, b.UPRN, "uprn at %q", path)
	require.Equal(t, len(a.Children), len(b.Children), "child count at %q", path)
	for i := range a.Children {
		require.Equal(t, a.Children[i].Token, b.Children[i].Token, "child token at %q", path)
		assertNodeEqual(t, a.Children[i].Node, b.Children[i].Node, path+"/"+a.Children[i].Token)
	}
}
