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


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/deeptechhq/expertmatch/ai"
	"golang.org/x/sync/singleflight"
)

// warmupText is embedded once during Init to force the backing server to load
// the model weights before real traffic arrives.
const warmupText = "warmup"

// Provider implements ai.Provider using OpenAI-compatible services.
// It owns the embedder instance and the model warm-up lifecycle.
type Provider struct {
	config   *ai.Config
	embedder *Embedder
	loaded   atomic.Bool
	flight   singleflight.Group
	logger   *slog.Logger
}

// NewProvider creates a new provider backed by an OpenAI-compatible embedding
// server. The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:   config,
		embedder: embedder,
		logger:   slog.Default().With("component", "openai-provider"),
	}, nil
}

// Init warms the embedding model up. Concurrent first callers coalesce into a
// single load via singleflight; all of them receive the outcome of that one
// attempt. A failed load is not cached, so a later call can retry after a
// transient outage.
func (p *Provider) Init(ctx context.Context) error {
	if p.loaded.Load() {
		return nil
	}

	_, err, _ := p.flight.Do("model-load", func() (any, error) {
		if p.loaded.Load() {
			return nil, nil
		}

		p.logger.Info("loading embedding model", "host", p.config.EmbeddingHost, "model", p.config.EmbeddingModel)

		vector, err := p.embedder.EmbedText(ctx, warmupText)
		if err != nil {
			p.logger.Error("embedding model load failed", "err", err)
			return nil, fmt.Errorf("%w: %w", ai.ErrModelUnavailable, err)
		}
		if len(vector) != p.config.Dimensions {
			p.logger.Error("embedding model dimension mismatch",
				"expected", p.config.Dimensions, "got", len(vector))
			return nil, fmt.Errorf("%w: model produced %d dimensions, expected %d",
				ai.ErrModelUnavailable, len(vector), p.config.Dimensions)
		}

		p.loaded.Store(true)
		p.logger.Info("embedding model ready", "dimensions", len(vector))
		return nil, nil
	})
	return err
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
