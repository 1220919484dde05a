package trie

// PeelEndTokens trims low-signal trailing tokens in place and returns the
// shortened slice.
//
// At each of up to steps iterations, for k from min(maxK, len-1) down to 1:
// let anchor be the token immediately preceding the trailing k tokens. When
// the count of the anchor alone is strictly greater than the count of the
// anchor plus the trailing k tokens, the trailing combination is rarer than
// its anchor, which suggests the tail is noise appended past the true address
// end, and the k tokens are dropped. An iteration that drops nothing ends the loop
// early (fixed point), even with steps remaining.
func PeelEndTokens(tokens []string, t *Trie, steps, maxK int) []string {
	if steps < 0 {
		steps = 0
	}
	if maxK < 1 {
		maxK = 1
	}
	if t.Root() == nil || len(tokens) < 2 || steps == 0 {
		return tokens
	}

	tailRev := make([]string, 0, maxK+1)

	for s := 0; s < steps; s++ {
		n := len(tokens)
		if n < 2 {
			break
		}
		tryMaxK := min(maxK, n-1)
		peeled := false

		for k := tryMaxK; k >= 1; k-- {
			anchor := tokens[n-k-1]
			cAnchor := t.CountTail([]string{anchor})

			// Reversed tail: tokens[n-1] .. tokens[n-k], then the anchor.
			tailRev = tailRev[:0]
			for i := 0; i < k; i++ {
				tailRev = append(tailRev, tokens[n-1-i])
			}
			tailRev = append(tailRev, anchor)
			cCombo := t.CountTail(tailRev)

			if cAnchor > cCombo {
				tokens = tokens[:n-k]
				peeled = true
				break
			}
		}

		if !peeled {
			break
		}
	}
	return tokens
}
