package trie

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Trie is a parsed, immutable reversed-suffix trie. The arena is the sole
// owner of every node; once constructed a Trie is safe for unbounded
// concurrent readers.
type Trie struct {
	root  *Node
	arena *Arena
}

// New wraps a root node and its owning arena as an immutable Trie.
func New(root *Node, arena *Arena) *Trie {
	return &Trie{root: root, arena: arena}
}

// Root returns the root node, or nil for an empty trie.
func (t *Trie) Root() *Node {
	if t == nil {
		return nil
	}
	return t.root
}

// NodeCount returns the total number of nodes in the trie.
func (t *Trie) NodeCount() int {
	if t == nil || t.arena == nil {
		return 0
	}
	return t.arena.Len()
}

// WalkExact consumes tokens right to left, requiring every step to find a
// child. Returns the final node, or nil on the first miss or for an empty
// token sequence.
func (t *Trie) WalkExact(tokens []string) *Node {
	n := t.Root()
	if n == nil || len(tokens) == 0 {
		return nil
	}
	for i := len(tokens); i > 0; i-- {
		n = FindChild(n, tokens[i-1])
		if n == nil {
			return nil
		}
	}
	return n
}

// SuffixCounts returns, for each position i, the Count of the node reached by
// consuming the suffix tokens[i:] right to left from the root. Positions past
// the point where the path breaks are zero.
func (t *Trie) SuffixCounts(tokens []string) []uint32 {
	counts := make([]uint32, len(tokens))
	n := t.Root()
	if n == nil {
		return counts
	}
	for i := len(tokens) - 1; i >= 0; i-- {
		n = FindChild(n, tokens[i])
		if n == nil {
			break
		}
		counts[i] = n.Count
	}
	return counts
}

// CountTail walks a reversed tail (rightmost token first) from the root and
// returns the Count of the node reached, or 0 if the path is missing. This is
// the counting primitive used by the peeler and by caller-side cleaning
// policies.
func (t *Trie) CountTail(tailReversed []string) uint32 {
	n := t.Root()
	if n == nil {
		return 0
	}
	for _, tok := range tailReversed {
		n = FindChild(n, tok)
		if n == nil {
			return 0
		}
	}
	return n.Count
}

// UPRNSet collects every identifier carried by a unique terminal into a
// bitmap. The same identifier may terminate several distinct sequences, so
// the set can be smaller than the number of terminal nodes.
func (t *Trie) UPRNSet() *roaring64.Bitmap {
	set := roaring64.New()
	collectUPRNs(t.Root(), set)
	return set
}

func collectUPRNs(n *Node, set *roaring64.Bitmap) {
	if n == nil {
		return
	}
	if n.Terminals == 1 {
		set.Add(n.UPRN)
	}
	for i := range n.Children {
		collectUPRNs(n.Children[i].Node, set)
	}
}
