package reembed

import (
	"context"
	"log/slog"
	"time"

	"github.com/deeptechhq/expertmatch/ai"
	"github.com/deeptechhq/expertmatch/core"
	"github.com/deeptechhq/expertmatch/similarity"
	"github.com/deeptechhq/expertmatch/storage"
)

// BatchProcessor generates embeddings for batches of expert profiles.
type BatchProcessor struct {
	repo           storage.ExpertRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.ExpertRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration, logger *slog.Logger) *BatchProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
		logger:         logger,
	}
}

// Process regenerates embeddings for a batch of profiles, recording the
// outcome in report. A profile with no text to embed is skipped; embedding
// or storage failures are counted per profile so one bad profile never
// aborts the run. Vectors are normalized before storage to keep cosine
// similarity well defined.
func (bp *BatchProcessor) Process(ctx context.Context, profiles []*core.ExpertProfile, report *Report) error {
	if len(profiles) == 0 {
		return nil
	}

	report.addProcessed(len(profiles))

	// Partition out profiles with nothing to embed
	embeddable := make([]*core.ExpertProfile, 0, len(profiles))
	texts := make([]string, 0, len(profiles))
	for _, profile := range profiles {
		input := profile.EmbedInput()
		if input == "" {
			bp.logger.Warn("skipping profile with no embeddable text", "id", profile.Id, "name", profile.Name)
			report.addSkipped(1)
			continue
		}
		embeddable = append(embeddable, profile)
		texts = append(texts, input)
	}

	if len(embeddable) == 0 {
		return nil
	}

	// Generate embeddings with retry
	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		bp.logger.Error("embedding generation failed for batch", "batchSize", len(embeddable), "err", err)
		report.addErrors(len(embeddable))
		return nil
	}

	if len(embeddings) != len(embeddable) {
		bp.logger.Error("embedding count mismatch", "expected", len(embeddable), "got", len(embeddings))
		report.addErrors(len(embeddable))
		return nil
	}

	now := time.Now().UTC()
	for i, profile := range embeddable {
		vector := similarity.Normalize(embeddings[i])
		if err := bp.repo.SetEmbedding(ctx, profile.Id, vector, texts[i], now); err != nil {
			bp.logger.Error("failed to store embedding", "id", profile.Id, "err", err)
			report.addErrors(1)
			continue
		}
		report.addUpdated(1)
	}

	return nil
}
