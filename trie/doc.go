// Package trie implements the reversed-suffix address trie: the immutable
// parsed data model, the exact-walk navigation primitives, the mutable
// aggregation builder, and the trailing-token peeler.
//
// Sequences are inserted last token first, so broad shared context (locality,
// street) sits near the root and highly specific context (house number, flat
// qualifier) sits deep in the tree. Noise is more likely near the leaves than
// near the root, which is what makes the skip and entry heuristics in the
// match package effective.
//
// A parsed Trie is immutable and safe for unbounded concurrent readers. A
// Builder is mutable aggregation state and is NOT safe for concurrent
// writers; parallel ingestion must use independent builders merged afterward
// (see BuildParallel).
package trie
