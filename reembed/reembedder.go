// Copyright 2025 DeepTech HQ
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reembed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/deeptechhq/expertmatch/ai"
	"github.com/deeptechhq/expertmatch/core"
	"github.com/deeptechhq/expertmatch/similarity"
	"github.com/deeptechhq/expertmatch/storage"
	"github.com/panjf2000/ants/v2"
)

// Config holds configuration for the regeneration operation.
type Config struct {
	// BatchSize is the number of profiles to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of profiles)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// PoolSize is the number of batches embedded concurrently
	PoolSize int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
		PoolSize:       4,
	}
}

// Reembedder regenerates embeddings for every profile in the regeneration
// queue: profiles whose vector is missing or was invalidated by an edit.
type Reembedder struct {
	repo      storage.ExpertRepository
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	logger    *slog.Logger
	processor *BatchProcessor
	iterator  *ProfileIterator
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(repo storage.ExpertRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}
	if config.PoolSize <= 0 {
		config.PoolSize = 1
	}

	logger := slog.Default()
	processor := NewBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay, logger)
	iterator := NewProfileIterator(repo, config.BatchSize)

	return &Reembedder{
		repo:      repo,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		logger:    logger,
		processor: processor,
		iterator:  iterator,
	}
}

// Run regenerates embeddings for all profiles in the queue. Batches are
// embedded concurrently on a worker pool; per-profile failures are counted
// in the report rather than aborting the run. The returned error covers
// infrastructure failures only (storage, cancellation).
func (r *Reembedder) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	queue, err := r.repo.ListNeedingEmbedding(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query regeneration queue: %w", err)
	}

	total := len(queue)
	if total == 0 {
		fmt.Fprintf(r.progress, "No profiles need embedding (0 profiles)\n")
		return report, nil
	}

	fmt.Fprintf(r.progress, "Starting regeneration of %d profiles (batch size: %d, workers: %d)\n",
		total, r.config.BatchSize, r.config.PoolSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	pool, err := ants.NewPool(r.config.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		batchErr error
	)

	err = r.iterator.ForEach(ctx, func(batch []*core.ExpertProfile) error {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := r.processor.Process(ctx, batch, report); err != nil {
				mu.Lock()
				if batchErr == nil {
					batchErr = err
				}
				mu.Unlock()
				return
			}
			tracker.Increment(len(batch))
		})
		if submitErr != nil {
			wg.Done()
			return submitErr
		}
		return nil
	})

	wg.Wait()

	if err != nil {
		return report, err
	}
	if batchErr != nil {
		return report, batchErr
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Regeneration complete: %s in %v (%.1f profiles/sec)\n",
		report, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return report, nil
}

// RunOne regenerates the embedding for a single profile.
// Returns ErrEmptyEmbedInput if the profile has no text to embed.
func (r *Reembedder) RunOne(ctx context.Context, id core.ID) error {
	profile, err := r.repo.GetExpertProfile(ctx, id)
	if err != nil {
		return err
	}

	input := profile.EmbedInput()
	if input == "" {
		return fmt.Errorf("%w: id %d", ErrEmptyEmbedInput, id)
	}

	var vector []float32
	err = RetryWithBackoff(ctx, func() error {
		var err error
		vector, err = r.embedder.EmbedText(ctx, input)
		return err
	}, r.config.MaxRetries, r.config.RetryDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embedding after %d attempts: %w", r.config.MaxRetries, err)
	}

	return r.repo.SetEmbedding(ctx, id, similarity.Normalize(vector), input, time.Now().UTC())
}
