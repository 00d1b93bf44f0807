package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector is L2-normalized so that dot product equals cosine
	// similarity. Empty or whitespace-only text fails with ErrEmptyInput;
	// implementations never substitute a zero vector for a failed embedding.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings aligned by index with the input
	// texts; implementations may parallelize internally but must not reorder.
	// Fails with ErrEmptyInput if any text is empty after normalization.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider owns the embedding model lifecycle: Init warms the
// model up, Embedder exposes the shared instance, and Close releases resources.
type Provider interface {
	// Init loads the embedding model. It is idempotent and safe to call
	// concurrently: N concurrent first-callers trigger exactly one load, all
	// awaiting the same completion. A failed load surfaces
	// ErrModelUnavailable and may be retried by a later call.
	Init(ctx context.Context) error

	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
