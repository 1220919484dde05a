// Package addrtrie resolves noisy address token sequences to UPRNs
// (Unique Property Reference Numbers) using a persisted suffix trie.
//
// Addresses are tokenized, reversed, and stored in a trie so that the
// coarse locality tokens (postcode town, street) sit near the root and
// the discriminating tokens (house number, flat) sit near the leaves.
// Lookups walk the trie right-to-left with bounded skip tolerance, so
// inputs with spurious trailing tokens or small interior noise still
// resolve.
//
// # Quick Start
//
// Build and serialize a trie:
//
//	b := trie.NewBuilder()
//	b.Insert(9, []string{"7", "LOVE", "LANE", "KINGS", "LANGLEY"})
//	blob := codec.Finalize(b)
//
// Resolve against the serialized blob:
//
//	r := addrtrie.NewResolver()
//	uprn, ok, _ := r.Find(blob, []string{"7", "LOVE", "LANE", "KINGS", "LANGLEY"})
//
// Classify failures instead of just failing:
//
//	out, _ := r.Classify(blob, tokens)
//	switch out.Status {
//	case match.StatusExact:        // unique UPRN found
//	case match.StatusAmbiguous:    // several properties share the tokens
//	case match.StatusInsufficient: // valid prefix but not enough detail
//	case match.StatusNoPath:       // tokens do not reach the trie at all
//	}
//
// # Concurrency
//
// A Resolver owns an unsynchronized decode cache and must not be shared
// across goroutines. Create one Resolver per worker; the decoded tries
// themselves are immutable and safe to read from anywhere.
package addrtrie
