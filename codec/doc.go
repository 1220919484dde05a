// Package codec implements the versioned binary wire format for persisted
// address tries.
//
// The canonical format is QCK2. Its byte layout is a compatibility boundary:
// it must be reproduced bit-exact so blobs persisted by earlier producers
// keep decoding, and blobs produced here keep decoding elsewhere. The legacy
// QCK1 predecessor (no terminal counts, no identifiers) is supported for
// backward reads only.
//
// Decoding treats the input as untrusted: every read is bounds checked, the
// whole buffer must be consumed, and malformed input is reported as an
// ordinary error value, never a panic. A corrupted persisted blob degrades to
// "no match" in the consumers rather than aborting the caller.
package codec
