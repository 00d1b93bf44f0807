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


package expertmatch

import (
	"io"
	"log/slog"

	"github.com/deeptechhq/expertmatch/ai"
	"github.com/deeptechhq/expertmatch/ai/openai"
	"github.com/deeptechhq/expertmatch/ingestion"
	"github.com/deeptechhq/expertmatch/reembed"
	"github.com/deeptechhq/expertmatch/search"
	"github.com/deeptechhq/expertmatch/storage"
	"github.com/deeptechhq/expertmatch/storage/badger"
)

// Service aggregates the expert catalog: badger-backed storage, an
// embedding provider, and factories for the search, ingestion, and
// regeneration components built on top of them.
type Service struct {
	backend    *badger.Backend
	expertRepo storage.ExpertRepository
	provider   ai.Provider
	logger     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
}

// WithAIConfig sets the embedding provider configuration.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider substitutes a pre-built embedding provider, bypassing the
// default openai-compatible one. Used for testing with mock providers.
func WithProvider(provider ai.Provider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// NewService opens the catalog at filePath.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	return newService(filePath, false, opts...)
}

// NewInMemoryService opens an ephemeral catalog for tests and tooling.
func NewInMemoryService(opts ...ServiceOption) (*Service, error) {
	return newService("", true, opts...)
}

func newService(filePath string, inMemory bool, opts ...ServiceOption) (*Service, error) {
	// Apply options
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	// Create expert repository
	expertRepo, err := badger.NewExpertRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			expertRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Service{
		backend:    backend,
		expertRepo: expertRepo,
		provider:   provider,
		logger:     slog.Default(),
	}, nil
}

func (s *Service) Close() error {
	// Close AI provider first
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	// Close repository
	if err := s.expertRepo.Close(); err != nil {
		s.logger.Error("error closing expert repository", "err", err)
		return err
	}

	// Close backend
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *Service) ExpertRepository() storage.ExpertRepository {
	return s.expertRepo
}

func (s *Service) Provider() ai.Provider {
	return s.provider
}

func (s *Service) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(s.expertRepo, s.provider, opts...)
}

func (s *Service) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(s.expertRepo, s.provider, opts...)
}

// NewReembedder builds a batch regenerator writing progress to progress.
func (s *Service) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(s.expertRepo, s.provider.Embedder(), config, progress)
}
