// Package s3 provides an S3-backed blobstore.Store plus a DynamoDB
// pointer store for atomically publishing which trie blob is current.
//
// Trie blobs are immutable and content-addressed by the producer, so
// S3's eventual overwrite semantics are harmless: a name is written
// once. The mutable piece of state, "which blob is live for this
// gazetteer", lives in DynamoDB where conditional writes give the
// compare-and-swap that S3 lacks.
package s3
