package trie

import (
	"slices"
	"strings"
)

// Node is a single node of a parsed reversed-suffix trie. It represents the
// set of all inserted address token sequences sharing a common suffix.
//
// Nodes are owned exclusively by their Trie and must be treated as read-only
// once parsed.
type Node struct {
	// Count is the number of inserted sequences passing through or
	// terminating at this node.
	Count uint32

	// Terminals is the number of inserted sequences ending exactly here:
	// 0 = not terminal, 1 = unique terminal, >1 = ambiguous terminal.
	Terminals uint32

	// UPRN is the resolved identifier. Valid iff Terminals == 1; the codec
	// and builder enforce zero otherwise.
	UPRN uint64

	// Children is kept sorted lexicographically by token to support binary
	// search and deterministic serialization.
	Children []Child
}

// Child is a labeled edge to a child node.
type Child struct {
	Token string
	Node  *Node
}

// FindChild binary-searches n's sorted children for token.
// Returns nil when n is nil or the token is absent.
func FindChild(n *Node, token string) *Node {
	if n == nil {
		return nil
	}
	i, ok := slices.BinarySearchFunc(n.Children, token, func(c Child, t string) int {
		return strings.Compare(c.Token, t)
	})
	if !ok {
		return nil
	}
	return n.Children[i].Node
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}
