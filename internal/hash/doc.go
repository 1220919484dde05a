// Package hash provides the hashing primitives used for cache keying.
//
// Trie blobs are identified by the 64-bit FNV-1a hash of their raw bytes:
//
//	key := hash.FNV1a64(blob)
//
// FNV-1a is not collision-resistant against adversarial input; blob contents
// are trusted build artifacts, and the hash only keys a memoization cache
// where a collision costs a wrong lookup, not a safety violation.
package hash
