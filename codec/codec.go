package codec

import (
	"encoding/binary"
	"errors"

	"github.com/hupe1980/addrtrie/trie"
)

// Wire format constants. All integers little-endian.
const (
	// MagicQCK2 identifies the canonical format: header is the magic followed
	// by one flags byte; a node is count u32, terminals u32, uprn u64 (low
	// half then high half), child count u32, then per child a length-prefixed
	// UTF-8 token and the recursively encoded child node.
	MagicQCK2 = 0x324B4351 // 'QCK2'

	// MagicQCK1 identifies the legacy predecessor: same shape but nodes carry
	// only count and child count.
	MagicQCK1 = 0x314B4351 // 'QCK1'

	// FlagsExpected is the only flags byte either format accepts.
	FlagsExpected = 0x00
)

const headerSize = 5

// maxDepth bounds decode recursion. Address tries are as deep as their
// longest token sequence, so anything past this is a malformed or hostile
// blob, not real data.
const maxDepth = 4096

var (
	// ErrBadMagic is returned when the blob does not start with a known magic.
	ErrBadMagic = errors.New("codec: bad magic")
	// ErrBadFlags is returned when the flags byte is not the expected constant.
	ErrBadFlags = errors.New("codec: unexpected flags")
	// ErrTruncated is returned when a read would pass the end of the buffer.
	ErrTruncated = errors.New("codec: truncated blob")
	// ErrTrailingBytes is returned when bytes remain after the root node.
	ErrTrailingBytes = errors.New("codec: trailing bytes after root node")
	// ErrTooDeep is returned when node nesting exceeds maxDepth.
	ErrTooDeep = errors.New("codec: node nesting too deep")
)

// Encode serializes a trie to canonical QCK2 bytes. An empty trie encodes as
// a zero root with no children.
func Encode(t *trie.Trie) []byte {
	buf := make([]byte, 0, 1024)
	buf = binary.LittleEndian.AppendUint32(buf, MagicQCK2)
	buf = append(buf, FlagsExpected)

	root := t.Root()
	if root == nil {
		root = &trie.Node{}
	}
	return appendNode(buf, root)
}

func appendNode(buf []byte, n *trie.Node) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, n.Count)
	buf = binary.LittleEndian.AppendUint32(buf, n.Terminals)

	uprn := n.UPRN
	if n.Terminals != 1 {
		uprn = 0
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(uprn))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(uprn>>32))

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(n.Children)))
	for i := range n.Children {
		c := &n.Children[i]
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(c.Token)))
		buf = append(buf, c.Token...)
		buf = appendNode(buf, c.Node)
	}
	return buf
}

// Finalize builds and serializes a completed builder, releasing its mutable
// aggregation state.
func Finalize(b *trie.Builder) []byte {
	return Encode(b.Build())
}

// Decode parses a serialized trie. It accepts canonical QCK2 blobs and legacy
// QCK1 blobs (whose nodes decode with zero terminal counts and identifiers).
// The input is fully validated: short reads, unknown magic or flags, trailing
// bytes and excessive nesting all fail with an ordinary error.
func Decode(data []byte) (*trie.Trie, error) {
	if len(data) < headerSize {
		return nil, ErrTruncated
	}
	magic := binary.LittleEndian.Uint32(data)
	if magic != MagicQCK2 && magic != MagicQCK1 {
		return nil, ErrBadMagic
	}
	if data[4] != FlagsExpected {
		return nil, ErrBadFlags
	}

	cur := &cursor{data: data, pos: headerSize}
	arena := trie.NewArena()
	legacy := magic == MagicQCK1

	root, err := decodeNode(cur, arena, legacy, 0)
	if err != nil {
		return nil, err
	}
	// Strict consumption: a valid blob is exactly one root node.
	if cur.pos != len(cur.data) {
		return nil, ErrTrailingBytes
	}
	return trie.New(root, arena), nil
}

type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) remaining() int {
	return len(c.data) - c.pos
}

func (c *cursor) u32() (uint32, error) {
	if c.remaining() < 4 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *cursor) str() (string, error) {
	n, err := c.u32()
	if err != nil {
		return "", err
	}
	if int64(n) > int64(c.remaining()) {
		return "", ErrTruncated
	}
	// Copy out of the caller's buffer so the parsed trie does not alias it.
	s := string(c.data[c.pos : c.pos+int(n)])
	c.pos += int(n)
	return s, nil
}

// Minimum encoded sizes, used to reject child counts that could not possibly
// fit in the remaining bytes before allocating for them.
const (
	minNodeQCK2 = 20 // count + terminals + uprn + child count
	minNodeQCK1 = 8  // count + child count
)

func decodeNode(c *cursor, arena *trie.Arena, legacy bool, depth int) (*trie.Node, error) {
	if depth > maxDepth {
		return nil, ErrTooDeep
	}

	n := arena.Alloc()

	count, err := c.u32()
	if err != nil {
		return nil, err
	}
	n.Count = count

	if !legacy {
		terminals, err := c.u32()
		if err != nil {
			return nil, err
		}
		lo, err := c.u32()
		if err != nil {
			return nil, err
		}
		hi, err := c.u32()
		if err != nil {
			return nil, err
		}
		n.Terminals = terminals
		n.UPRN = uint64(hi)<<32 | uint64(lo)
		if n.Terminals != 1 {
			n.UPRN = 0
		}
	}

	nchild, err := c.u32()
	if err != nil {
		return nil, err
	}

	minNode := minNodeQCK2
	if legacy {
		minNode = minNodeQCK1
	}
	// Each child needs at least a token length prefix plus a minimal node.
	if int64(nchild)*int64(4+minNode) > int64(c.remaining()) {
		return nil, ErrTruncated
	}

	if nchild > 0 {
		n.Children = make([]trie.Child, 0, nchild)
		for i := uint32(0); i < nchild; i++ {
			tok, err := c.str()
			if err != nil {
				return nil, err
			}
			child, err := decodeNode(c, arena, legacy, depth+1)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, trie.Child{Token: tok, Node: child})
		}
	}
	return n, nil
}
