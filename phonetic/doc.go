// Package phonetic provides the string normalization and similarity
// helpers used when preparing address tokens for trie lookups.
//
// The trie matches tokens byte-for-byte, so anything fuzzy has to
// happen before insertion and lookup: strip diacritics, compare
// candidate spellings phonetically, or score near-misses with edit
// distance. This package collects those helpers behind a small,
// dependency-light surface.
package phonetic
