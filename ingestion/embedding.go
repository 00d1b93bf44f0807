package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/deeptechhq/expertmatch/ai"
	"github.com/deeptechhq/expertmatch/core"
	"github.com/deeptechhq/expertmatch/similarity"
	"github.com/deeptechhq/expertmatch/storage"
)

// embeddingProcessor generates embeddings for expert profiles.
type embeddingProcessor struct {
	expertRepository storage.ExpertRepository
	embedder         ai.Embedder
	logger           *slog.Logger
}

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(expertRepository storage.ExpertRepository, embedder ai.Embedder, logger *slog.Logger) (*embeddingProcessor, error) {
	if expertRepository == nil {
		return nil, fmt.Errorf("expert repository required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		expertRepository: expertRepository,
		embedder:         embedder,
		logger:           logger.With("processor", "embeddings"),
	}, nil
}

// process generates embeddings for the specified profiles.
func (ep *embeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Info("processing profiles for embeddings", "profiles", len(ids))

	slices.Sort(ids)

	profiles, err := ep.expertRepository.GetExpertProfiles(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving expert profiles", "err", err)
		return err
	}

	// Profiles with no text to embed stay in the regeneration queue
	embeddable := make([]*core.ExpertProfile, 0, len(profiles))
	texts := make([]string, 0, len(profiles))
	for _, profile := range profiles {
		input := profile.EmbedInput()
		if input == "" {
			ep.logger.Warn("profile has no embeddable text", "id", profile.Id)
			continue
		}
		embeddable = append(embeddable, profile)
		texts = append(texts, input)
	}

	if len(embeddable) == 0 {
		return nil
	}

	ep.logger.Debug("generating embeddings for expert profiles", "profiles", len(texts))
	embeddings, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ep.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(embeddable) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(embeddable), len(embeddings))
	}

	now := time.Now().UTC()
	for i, profile := range embeddable {
		vector := similarity.Normalize(embeddings[i])
		if err := ep.expertRepository.SetEmbedding(ctx, profile.Id, vector, texts[i], now); err != nil {
			return err
		}
	}

	return nil
}
