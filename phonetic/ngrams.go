package phonetic

// NGrams returns every contiguous window of n tokens, in order. Returns
// nil when n is not positive or exceeds the token count. Windows alias
// the input slice; callers must not mutate them.
func NGrams(tokens []string, n int) [][]string {
	if n <= 0 || n > len(tokens) {
		return nil
	}
	grams := make([][]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, tokens[i:i+n:i+n])
	}
	return grams
}
