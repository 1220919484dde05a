package match

import (
	"github.com/hupe1980/addrtrie/trie"
)

// minCleanKeep is the number of leaf-side tokens CleanTokens always retains.
// Like the 4x boundary multiplier below, it is empirically tuned policy, not
// an invariant of the matching engine.
const minCleanKeep = 3

// CleanTokens trims well-known shared context off the end of a token
// sequence, keeping the leaf-side tokens that identify the property.
//
// Walking boundaries from the leaf outward, it finds the first position whose
// suffix count meets or exceeds threshold, the point where the remaining
// tail is common context rather than property-specific detail. The boundary
// token itself is kept, unless its support count reaches 4x the threshold
// (so common it adds nothing), in which case it is excluded. At least
// minCleanKeep leaf-side tokens are always retained; when no suffix meets the
// threshold the sequence is returned unchanged.
//
// A threshold of zero (or below) trivially matches at the first boundary and
// disables the 4x exclusion.
func CleanTokens(tokens []string, t *trie.Trie, threshold int) []string {
	n := len(tokens)
	if n == 0 || t.Root() == nil {
		return tokens
	}
	if threshold < 0 {
		threshold = 0
	}

	minKeep := min(minCleanKeep, n)
	keepEnd := n

	tailRev := make([]string, 0, n)
	for start := 0; start < n; start++ {
		tailRev = tailRev[:0]
		for i := n - 1; i >= start; i-- {
			tailRev = append(tailRev, tokens[i])
		}

		cnt := t.CountTail(tailRev)
		if int64(cnt) < int64(threshold) {
			continue
		}

		veryHigh := threshold > 0 && uint64(cnt) >= uint64(threshold)*4
		end := start + 1
		if veryHigh {
			end = start
		}
		keepEnd = max(end, minKeep)
		break
	}

	if keepEnd < minKeep {
		keepEnd = minKeep
	}
	return tokens[:keepEnd]
}
