// Package match implements the skip-tolerant, multi-seed fuzzy lookup over a
// parsed reversed-suffix trie.
//
// The algorithm is a deterministic, parameterized heuristic, not a
// scored/ranked matcher: for each candidate start offset and each precomputed
// entry node, a greedy right-to-left walk consumes tokens, skipping a bounded
// number of noise tokens mid-walk when the landing child is well supported.
// The first acceptance across the (start offset, entry node, walk step)
// iteration wins; ties are broken purely by iteration order.
//
// All entry points are read-only over the trie and safe for unbounded
// concurrent callers.
package match
