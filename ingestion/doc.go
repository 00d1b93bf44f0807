// Package ingestion provides pipeline orchestration for expert profile writes.
//
// The Pipeline type manages the write workflow for expert profiles, including:
//   - Committing profile adds and edits to storage
//   - Generating embeddings asynchronously
//
// Embedding generation is performed concurrently using a worker pool so the
// write path never waits on the model. Errors during async processing are
// logged but do not fail the write operation.
package ingestion
