package trie

// arenaSlabSize is the number of nodes per slab. Slabs are never grown in
// place, so node pointers stay valid for the lifetime of the arena.
const arenaSlabSize = 1024

// Arena allocates nodes in fixed-size slabs and owns them exclusively.
// Parent→child references point into the arena; nodes are never individually
// freed, the whole structure is dropped as a unit with its Trie.
//
// Allocating nodes in slabs keeps a multi-million node parse from producing
// one heap object per node.
type Arena struct {
	slabs [][]Node
	used  int // nodes used in the last slab
}

// NewArena creates an empty node arena.
func NewArena() *Arena {
	return &Arena{}
}

// Alloc returns a pointer to a fresh zero node owned by the arena.
func (a *Arena) Alloc() *Node {
	if len(a.slabs) == 0 || a.used == arenaSlabSize {
		a.slabs = append(a.slabs, make([]Node, arenaSlabSize))
		a.used = 0
	}
	slab := a.slabs[len(a.slabs)-1]
	n := &slab[a.used]
	a.used++
	return n
}

// Len returns the number of nodes allocated so far.
func (a *Arena) Len() int {
	if len(a.slabs) == 0 {
		return 0
	}
	return (len(a.slabs)-1)*arenaSlabSize + a.used
}
