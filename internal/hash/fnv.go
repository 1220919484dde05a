package hash

const (
	fnvOffsetBasis = 14695981039346656037
	fnvPrime       = 1099511628211
)

// FNV1a64 computes the 64-bit FNV-1a hash of data.
//
// The hash is order-sensitive over the raw bytes, so identical blobs always
// hash identically. It keys the trie cache: the cache is purely a memoization
// of "parse this exact blob".
func FNV1a64(data []byte) uint64 {
	h := uint64(fnvOffsetBasis)
	for _, b := range data {
		h ^= uint64(b)
		h *= fnvPrime
	}
	return h
}
