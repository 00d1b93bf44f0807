// Package reembed regenerates embeddings for expert profiles whose vector
// is missing or was invalidated by a profile edit.
//
// This package supports batch processing on a worker pool, progress
// tracking, retry logic with exponential backoff, and vector normalization
// to ensure compatibility with cosine similarity search.
package reembed
