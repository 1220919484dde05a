package match

import (
	"github.com/hupe1980/addrtrie/trie"
)

// TraceStep records one successful step of a walk: the token consumed and the
// Count of the node landed on.
type TraceStep struct {
	Token string
	Count uint32
}

// walkResult carries either an early exact acceptance or the best attempt
// reached across every (start offset, entry node) pair.
type walkResult struct {
	exact bool
	uprn  uint64

	node      *trie.Node  // best node reached
	consumed  int         // matched tokens on the best path
	exhausted bool        // whether that path consumed all tokens
	trace     []TraceStep // best path trace (only when requested)
}

// entryNodes precomputes the walk-start seeds: the root plus every node up to
// p.MaxTrieEntryDepth edges below it with Count >= p.EntryMinLocalCount. The
// stack-based traversal gives a fixed deterministic order, which is part of
// the tie-breaking contract.
func entryNodes(root *trie.Node, p Params) []*trie.Node {
	nodes := []*trie.Node{root}
	if p.MaxTrieEntryDepth == 0 {
		return nodes
	}

	type item struct {
		node  *trie.Node
		depth uint32
	}
	stack := []item{{root, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.depth == p.MaxTrieEntryDepth {
			continue
		}
		for i := range it.node.Children {
			child := it.node.Children[i].Node
			if child == nil {
				continue
			}
			if child.Count >= p.EntryMinLocalCount {
				nodes = append(nodes, child)
			}
			stack = append(stack, item{child, it.depth + 1})
		}
	}
	return nodes
}

// resolveUniqueTerminal descends from a node whose subtree represents exactly
// one address: at each level it follows the single child with nonzero Count.
// More than one viable child aborts the resolution. Returns the sole unique
// terminal, or nil.
func resolveUniqueTerminal(n *trie.Node) *trie.Node {
	cur := n
	for cur != nil {
		if cur.Terminals == 1 {
			return cur
		}
		var next *trie.Node
		for i := range cur.Children {
			child := cur.Children[i].Node
			if child == nil || child.Count == 0 {
				continue
			}
			if next != nil {
				return nil
			}
			next = child
		}
		cur = next
	}
	return nil
}

// tryAccept evaluates the acceptance test at node, given tokens consumed
// since the attempt's start offset.
func tryAccept(n *trie.Node, start, consumed, total int, p Params) (uint64, bool) {
	if n == nil {
		return 0, false
	}
	matched := max(consumed-start, 0)
	if uint64(matched) < uint64(p.MinMatchedTokens) {
		return 0, false
	}
	if n.Count == 1 {
		if term := resolveUniqueTerminal(n); term != nil && term.Terminals == 1 {
			return term.UPRN, true
		}
	}
	if n.Terminals == 1 && (consumed == total || n.IsLeaf()) {
		return n.UPRN, true
	}
	return 0, false
}

// walkBest runs the full (start offset, entry node) iteration. It returns as
// soon as any attempt accepts; otherwise it records the attempt with the most
// consumed tokens, breaking ties toward the more specific node (smaller
// Count). Traces are collected only when withTrace is set.
func walkBest(t *trie.Trie, tokens []string, p Params, withTrace bool) walkResult {
	var wr walkResult
	root := t.Root()
	n := len(tokens)
	if root == nil || n == 0 {
		return wr
	}

	entries := entryNodes(root, p)
	maxStart := int(min(uint64(p.MaxTrailingTokensIgnored), uint64(n-1)))

	for s := 0; s <= maxStart; s++ {
		for _, entry := range entries {
			node := entry
			i := s
			var skips uint32
			var trace []TraceStep

			// The entry node itself may already accept (rare, and only when
			// MinMatchedTokens is zero).
			if uprn, ok := tryAccept(node, s, i, n, p); ok {
				return acceptedResult(uprn, node, i-s, i == n, trace)
			}

			for i < n {
				tok := tokens[n-1-i]
				if child := trie.FindChild(node, tok); child != nil {
					node = child
					i++
					if withTrace {
						trace = append(trace, TraceStep{Token: tok, Count: node.Count})
					}
					if uprn, ok := tryAccept(node, s, i, n, p); ok {
						return acceptedResult(uprn, node, i-s, i == n, trace)
					}
					continue
				}

				// No direct child: look ahead within the remaining skip
				// budget for a well-supported landing child.
				if skips < p.SkipMaxInWalk {
					budget := int(min(uint64(p.SkipMaxInWalk-skips), uint64(n-1-i)))
					var landing *trie.Node
					delta := 0
					for d := 1; d <= budget; d++ {
						la := tokens[n-1-(i+d)]
						if cand := trie.FindChild(node, la); cand != nil && cand.Count > p.SkipMinLocalCount {
							landing = cand
							delta = d
							break
						}
					}
					if landing != nil {
						skips += uint32(delta)
						node = landing
						i += delta + 1
						if withTrace {
							trace = append(trace, TraceStep{Token: tokens[n-1-(i-1)], Count: node.Count})
						}
						if uprn, ok := tryAccept(node, s, i, n, p); ok {
							return acceptedResult(uprn, node, i-s, i == n, trace)
						}
						continue
					}
				}

				// Mismatch with no permissible skip ends this attempt.
				break
			}

			consumed := max(i-s, 0)
			if consumed > wr.consumed {
				wr.node = node
				wr.consumed = consumed
				wr.exhausted = i >= n
				wr.trace = trace
			} else if consumed == wr.consumed && consumed > 0 && wr.node != nil && node.Count < wr.node.Count {
				wr.node = node
				wr.exhausted = i >= n
				wr.trace = trace
			}
		}
	}
	return wr
}

func acceptedResult(uprn uint64, node *trie.Node, consumed int, exhausted bool, trace []TraceStep) walkResult {
	return walkResult{
		exact:     true,
		uprn:      uprn,
		node:      node,
		consumed:  consumed,
		exhausted: exhausted,
		trace:     trace,
	}
}
