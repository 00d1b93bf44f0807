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

	"github.com/deeptechhq/expertmatch/core"
	"github.com/deeptechhq/expertmatch/storage"
)

const (
	// DefaultBatchSize is the default number of profiles to fetch in each batch
	DefaultBatchSize = 100
)

// ProfileIterator walks the regeneration queue in batches.
type ProfileIterator struct {
	repo      storage.ExpertRepository
	batchSize int
}

// NewProfileIterator creates a new profile iterator.
// batchSize: number of profiles in each batch (must be > 0)
func NewProfileIterator(repo storage.ExpertRepository, batchSize int) *ProfileIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ProfileIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all profiles needing an embedding, calling fn for
// each batch. Iteration stops on first error from fn or when all profiles
// are processed. Context cancellation is checked between batches.
func (it *ProfileIterator) ForEach(ctx context.Context, fn func([]*core.ExpertProfile) error) error {
	// Check context before starting
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	profiles, err := it.repo.ListNeedingEmbedding(ctx)
	if err != nil {
		return err
	}

	if len(profiles) == 0 {
		return nil
	}

	for i := 0; i < len(profiles); i += it.batchSize {
		end := i + it.batchSize
		if end > len(profiles) {
			end = len(profiles)
		}

		if err := fn(profiles[i:end]); err != nil {
			return err
		}

		// Check context after each batch
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
