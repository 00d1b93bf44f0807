package storage

import (
	"context"
	"time"

	"github.com/deeptechhq/expertmatch/core"
)

// Repository provides common storage operations shared across repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ExpertRepository provides operations for managing expert profiles and
// their derived embeddings.
type ExpertRepository interface {
	Repository

	// AddExpertProfiles adds one or more profiles to storage.
	// Generates new IDs from sequence and sets CreatedAt/UpdatedAt.
	// Returns the profiles with generated IDs and timestamps populated.
	AddExpertProfiles(ctx context.Context, profiles ...*core.ExpertProfile) ([]*core.ExpertProfile, error)

	// UpdateExpertProfiles updates existing profiles and advances UpdatedAt.
	// When the profile's embedding input differs from the stored one,
	// the embedding triple is cleared synchronously:
	// regeneration is deferred to the reembed job or the ingestion pipeline,
	// never blocking the edit. When the text is unchanged, the stored
	// embedding is preserved regardless of what the caller passed and
	// EmbeddedAt is re-stamped, so the profile stays in the embedded set.
	// Returns ErrNotFound if any profile doesn't exist.
	UpdateExpertProfiles(ctx context.Context, profiles ...*core.ExpertProfile) ([]*core.ExpertProfile, error)

	// DeleteExpertProfiles removes profiles by their IDs.
	// Returns ErrNotFound if any profile doesn't exist.
	DeleteExpertProfiles(ctx context.Context, ids ...core.ID) error

	// GetExpertProfile retrieves a single profile by ID.
	// Returns ErrNotFound if the profile doesn't exist.
	GetExpertProfile(ctx context.Context, id core.ID) (*core.ExpertProfile, error)

	// GetExpertProfiles retrieves multiple profiles by their IDs.
	// Returns only the profiles that exist (no error for missing ones).
	GetExpertProfiles(ctx context.Context, ids ...core.ID) ([]*core.ExpertProfile, error)

	// ListExpertProfiles retrieves all profiles, ordered by ID.
	ListExpertProfiles(ctx context.Context) ([]*core.ExpertProfile, error)

	// ListEmbedded retrieves profiles eligible for semantic search: a vector
	// is present and not stale. Stale or missing embeddings are excluded,
	// never returned with a substitute score.
	ListEmbedded(ctx context.Context) ([]*core.ExpertProfile, error)

	// ListNeedingEmbedding retrieves profiles whose vector is absent or
	// stale, i.e. the reembed job's work queue.
	ListNeedingEmbedding(ctx context.Context) ([]*core.ExpertProfile, error)

	// SetEmbedding stores the embedding triple for a profile.
	// The snapshot text must accompany the vector (ErrOrphanedVector
	// otherwise); at is recorded as the generation timestamp.
	// Returns ErrNotFound if the profile doesn't exist.
	SetEmbedding(ctx context.Context, id core.ID, vector []float32, text string, at time.Time) error

	// ClearEmbedding removes the embedding triple from a profile.
	// Returns ErrNotFound if the profile doesn't exist.
	ClearEmbedding(ctx context.Context, id core.ID) error
}
