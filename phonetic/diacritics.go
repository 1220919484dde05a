package phonetic

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics folds accented characters to their base form
// ("CAFÉ" becomes "CAFE"), so tokens from different source encodings
// land on the same trie path. Invalid UTF-8 is returned unchanged.
func StripDiacritics(s string) string {
	// Transformers are stateful, so build a fresh chain per call.
	stripper := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	out, _, err := transform.String(stripper, s)
	if err != nil {
		return s
	}
	return out
}
