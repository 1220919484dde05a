// Package minio provides a blobstore.Store for MinIO and other
// S3-compatible object stores, for deployments that keep trie blobs
// on-prem rather than in AWS.
package minio
