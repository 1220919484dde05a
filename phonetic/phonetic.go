package phonetic

import (
	"github.com/antzucaro/matchr"
)

// Soundex returns the Soundex code for s. Useful for coarse bucketing
// of street and locality names with unstable spellings.
func Soundex(s string) string {
	return matchr.Soundex(s)
}

// DoubleMetaphone returns the primary and alternate Double Metaphone
// codes for s. The alternate is empty when the word has only one
// plausible pronunciation.
func DoubleMetaphone(s string) (primary, alternate string) {
	return matchr.DoubleMetaphone(s)
}

// CodesMatch reports whether a and b share at least one Double
// Metaphone code, i.e. whether they could plausibly be the same spoken
// token.
func CodesMatch(a, b string) bool {
	ap, as := matchr.DoubleMetaphone(a)
	bp, bs := matchr.DoubleMetaphone(b)

	for _, x := range []string{ap, as} {
		if x == "" {
			continue
		}
		if x == bp || (bs != "" && x == bs) {
			return true
		}
	}
	return false
}

// Similarity returns the Jaro-Winkler similarity of a and b in [0, 1].
// 1 means identical.
func Similarity(a, b string) float64 {
	return matchr.JaroWinkler(a, b, false)
}

// EditDistance returns the Levenshtein distance between a and b.
func EditDistance(a, b string) int {
	return matchr.Levenshtein(a, b)
}
