package trie

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// buildNode is the mutable aggregation form of a node. Children live in a map
// for O(1) insertion; Build sorts them into the immutable form.
type buildNode struct {
	count     uint32
	terminals uint32
	uprn      uint64
	children  map[string]*buildNode
}

func newBuildNode() *buildNode {
	return &buildNode{children: make(map[string]*buildNode)}
}

// Builder aggregates (identifier, token sequence) pairs into a reversed-suffix
// trie. It is mutable state and is NOT safe for concurrent writers; parallel
// ingestion must use one Builder per goroutine, merged afterward.
type Builder struct {
	root *buildNode
	seqs int
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{root: newBuildNode()}
}

// Insert adds a token sequence terminating at uprn. Tokens are consumed in
// reverse order (last token first); Count is incremented at the root and at
// every node visited, including the final one. Empty sequences are ignored.
func (b *Builder) Insert(tokens []string, uprn uint64) {
	if len(tokens) == 0 {
		return
	}
	n := b.root
	n.count++
	for i := len(tokens); i > 0; i-- {
		tok := tokens[i-1]
		child := n.children[tok]
		if child == nil {
			child = newBuildNode()
			n.children[tok] = child
		}
		n = child
		n.count++
	}
	n.terminals++
	if n.terminals == 1 {
		n.uprn = uprn
	} else {
		// Ambiguous terminal: the identifier is no longer unique.
		n.uprn = 0
	}
	b.seqs++
}

// Merge folds other into b. Counts and terminal counts are summed; the
// identifier at a node is recomputed from the summed terminal count and the
// identifiers carried by the two operands, never invented. Merge is
// associative and commutative. The other builder is consumed and must not be
// used afterwards.
func (b *Builder) Merge(other *Builder) {
	if other == nil || other.root == nil {
		return
	}
	mergeNodes(b.root, other.root)
	b.seqs += other.seqs
	other.root = nil
}

func mergeNodes(dst, src *buildNode) {
	dst.count += src.count
	uprnBefore := dst.uprn
	dst.terminals += src.terminals
	switch {
	case dst.terminals == 0:
		dst.uprn = 0
	case dst.terminals == 1:
		// Exactly one terminal across both sides; take the side that has it.
		if uprnBefore != 0 {
			dst.uprn = uprnBefore
		} else {
			dst.uprn = src.uprn
		}
	default:
		dst.uprn = 0
	}
	for tok, schild := range src.children {
		dchild := dst.children[tok]
		if dchild == nil {
			dchild = newBuildNode()
			dst.children[tok] = dchild
		}
		mergeNodes(dchild, schild)
	}
}

// Sequences returns the number of sequences inserted (across merges).
func (b *Builder) Sequences() int {
	return b.seqs
}

// Build converts the aggregation state into an immutable Trie with sorted
// children backed by a fresh arena. The builder is consumed and must not be
// used afterwards.
func (b *Builder) Build() *Trie {
	if b.root == nil {
		return New(nil, NewArena())
	}
	arena := NewArena()
	root := freeze(b.root, arena)
	b.root = nil
	return New(root, arena)
}

func freeze(bn *buildNode, arena *Arena) *Node {
	n := arena.Alloc()
	n.Count = bn.count
	n.Terminals = bn.terminals
	n.UPRN = bn.uprn
	if len(bn.children) == 0 {
		return n
	}
	n.Children = make([]Child, 0, len(bn.children))
	for tok, child := range bn.children {
		n.Children = append(n.Children, Child{Token: tok, Node: freeze(child, arena)})
	}
	slices.SortFunc(n.Children, func(a, b Child) int {
		return strings.Compare(a.Token, b.Token)
	})
	return n
}

// Entry is one (identifier, token sequence) pair for bulk building.
type Entry struct {
	UPRN   uint64
	Tokens []string
}

// BuildParallel partitions entries across workers, builds one independent
// Builder per worker, and merges the partial tries. Insertion order
// invariance and merge commutativity make the result identical to a
// sequential build. Cancelling ctx aborts the build.
func BuildParallel(ctx context.Context, entries []Entry, workers int) (*Builder, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(entries) {
		workers = max(len(entries), 1)
	}

	partials := make([]*Builder, workers)
	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(entries) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		w := w
		lo := w * chunk
		hi := min(lo+chunk, len(entries))
		if lo >= hi {
			partials[w] = NewBuilder()
			continue
		}
		g.Go(func() error {
			b := NewBuilder()
			for i := lo; i < hi; i++ {
				if i%1024 == 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
				}
				b.Insert(entries[i].Tokens, entries[i].UPRN)
			}
			partials[w] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := partials[0]
	for _, p := range partials[1:] {
		if p != nil {
			out.Merge(p)
		}
	}
	return out, nil
}
