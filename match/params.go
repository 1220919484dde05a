package match

import "math"

// Params tunes the fuzzy walk. All values are clamped into valid non-negative
// ranges at the caller-facing boundary and never rejected.
type Params struct {
	// SkipMinLocalCount permits a mid-walk skip only when the landing child's
	// Count exceeds it. This guards against skipping into highly specific,
	// low-branching subtrees such as house numbers.
	SkipMinLocalCount uint32

	// SkipMaxInWalk is the maximum number of lookahead skips within a single
	// walk attempt.
	SkipMaxInWalk uint32

	// MinMatchedTokens is the minimum number of tokens that must be consumed
	// from the attempt's start before any acceptance is considered.
	MinMatchedTokens uint32

	// EntryMinLocalCount and MaxTrieEntryDepth precompute alternate
	// walk-start nodes: every node up to MaxTrieEntryDepth edges below the
	// root whose Count is at least EntryMinLocalCount. Entry nodes tolerate
	// missing tokens at the root (locality) end of the address.
	EntryMinLocalCount uint32
	MaxTrieEntryDepth  uint32

	// MaxTrailingTokensIgnored is the maximum number of trailing input tokens
	// that may be ignored entirely before a walk attempt begins, tolerating
	// noise appended past the true address end.
	MaxTrailingTokensIgnored uint32
}

// DefaultParams returns the empirically tuned defaults.
func DefaultParams() Params {
	return Params{
		SkipMinLocalCount:        10,
		SkipMaxInWalk:            2,
		MinMatchedTokens:         2,
		EntryMinLocalCount:       10,
		MaxTrieEntryDepth:        2,
		MaxTrailingTokensIgnored: 2,
	}
}

// Clamp converts a caller-supplied value into the valid parameter range:
// negatives become 0, overflow saturates. Parameters are never rejected.
func Clamp(v int64) uint32 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
