package ingestion

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/deeptechhq/expertmatch/ai"
	"github.com/deeptechhq/expertmatch/core"
	"github.com/deeptechhq/expertmatch/storage"
	"github.com/panjf2000/ants/v2"
)

// Pipeline orchestrates writes to the expert catalog. Profile edits commit
// synchronously; embedding generation runs asynchronously on a worker pool
// so a slow or unavailable model never blocks the write path.
type Pipeline struct {
	expertRepository storage.ExpertRepository
	embeddingPool    *ants.Pool
	embeddingProc    *embeddingProcessor
	logger           *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.embeddingPool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	expertRepository storage.ExpertRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if expertRepository == nil {
		return nil, ErrExpertRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	logger := slog.Default()

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		expertRepository: expertRepository,
		embeddingPool:    pool,
		logger:           logger,
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	proc, err := newEmbeddingProcessor(expertRepository, provider.Embedder(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.embeddingProc = proc

	return p, nil
}

// Ingest adds profiles to the catalog and schedules embedding generation.
// The profiles are returned with IDs and timestamps populated as soon as
// the write commits; embeddings follow asynchronously. Errors during async
// processing are logged but do not fail the ingestion.
func (p *Pipeline) Ingest(ctx context.Context, profiles ...*core.ExpertProfile) ([]*core.ExpertProfile, error) {
	added, err := p.expertRepository.AddExpertProfiles(ctx, profiles...)
	if err != nil {
		return nil, err
	}

	if len(added) == 0 {
		return added, nil
	}

	ids := make([]core.ID, len(added))
	for i, profile := range added {
		ids[i] = profile.Id
	}
	p.scheduleEmbedding(ids)

	return added, nil
}

// Update applies profile edits and schedules embedding regeneration for
// profiles whose text changed. Unchanged embeddings are left in place.
func (p *Pipeline) Update(ctx context.Context, profiles ...*core.ExpertProfile) ([]*core.ExpertProfile, error) {
	updated, err := p.expertRepository.UpdateExpertProfiles(ctx, profiles...)
	if err != nil {
		return nil, err
	}

	// Only profiles whose embedding was invalidated need regeneration
	ids := make([]core.ID, 0, len(updated))
	for _, profile := range updated {
		if !profile.HasEmbedding() {
			ids = append(ids, profile.Id)
		}
	}
	if len(ids) > 0 {
		p.scheduleEmbedding(ids)
	}

	return updated, nil
}

func (p *Pipeline) scheduleEmbedding(ids []core.ID) {
	err := p.embeddingPool.Submit(func() {
		if err := p.embeddingProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error processing embeddings", "err", err)
		}
	})
	if err != nil {
		p.logger.Error("error scheduling embedding work", "err", err)
	}
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
