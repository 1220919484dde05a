// Package blobstore abstracts storage of serialized trie blobs.
//
// A built gazetteer trie is a single immutable byte blob. Stores move
// whole blobs: there is no partial read path, because decoding always
// consumes the complete serialization anyway.
//
// Implementations: MemoryStore (tests), LocalStore (filesystem with
// atomic writes), plus S3 and MinIO backends in subpackages. Wrap any
// store with Compressed to transparently compress blobs at rest; the
// trie wire format itself is never altered.
package blobstore
