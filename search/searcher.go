package search

import (
	"context"
	"log/slog"
	"slices"

	"github.com/deeptechhq/expertmatch/ai"
	"github.com/deeptechhq/expertmatch/core"
	"github.com/deeptechhq/expertmatch/similarity"
	"github.com/deeptechhq/expertmatch/storage"
)

// Config bounds result sizes and relevance.
type Config struct {
	// DefaultLimit is used when the caller passes a limit of zero.
	DefaultLimit int

	// MaxLimit caps the requested limit. Requests above it are rejected.
	MaxLimit int

	// MinScore drops matches scoring below this cosine similarity.
	MinScore float32
}

// DefaultConfig returns the standard search bounds.
func DefaultConfig() Config {
	return Config{
		DefaultLimit: 10,
		MaxLimit:     100,
		MinScore:     0.0,
	}
}

// Searcher ranks expert profiles by semantic similarity to a query.
type Searcher struct {
	expertRepository storage.ExpertRepository
	embedder         ai.Embedder
	config           Config
	logger           *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithConfig overrides the default search bounds.
func WithConfig(config Config) Option {
	return func(s *Searcher) error {
		s.config = config
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	expertRepository storage.ExpertRepository,
	provider ai.Provider,
	opts ...Option,
) (*Searcher, error) {
	if expertRepository == nil {
		return nil, ErrExpertRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		expertRepository: expertRepository,
		embedder:         provider.Embedder(),
		config:           DefaultConfig(),
		logger:           slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search finds experts semantically similar to the query.
// Returns up to limit results ranked by relevance score; a limit of zero
// selects the configured default. Only current embeddings participate:
// profiles whose vector is missing or stale are excluded from the
// candidate set rather than ranked with a substitute score.
func (s *Searcher) Search(ctx context.Context, query string, filters Filters, limit int) ([]*core.Match, error) {
	return s.SearchWithMonitor(ctx, query, filters, limit, nil)
}

// SearchWithMonitor runs Search with monitoring callbacks at each stage.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, filters Filters, limit int, monitor SearchMonitor) ([]*core.Match, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	normalized := core.NormalizeText(query)
	if normalized == "" {
		return nil, ErrEmptyQuery
	}
	if limit < 0 || limit > s.config.MaxLimit {
		return nil, ErrInvalidLimit
	}
	if limit == 0 {
		limit = s.config.DefaultLimit
	}

	monitor.Start(normalized)

	queryVector, err := s.embedder.EmbedText(ctx, normalized)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", normalized, "err", err)
		return nil, err
	}
	monitor.AfterQueryEmbedding(len(queryVector))

	candidates, err := s.expertRepository.ListEmbedded(ctx)
	if err != nil {
		s.logger.Error("error listing embedded profiles", "err", err)
		return nil, err
	}
	// Hooks get their own copy of each intermediate slice so a monitor
	// cannot reorder or shrink the candidate set mid-search.
	monitor.AfterCandidateRetrieval(slices.Clone(candidates))

	// Filter before ranking so similarity is computed only for
	// profiles that can actually appear in the result set.
	filtered := make([]*core.ExpertProfile, 0, len(candidates))
	for _, candidate := range candidates {
		if filters.matches(candidate) {
			filtered = append(filtered, candidate)
		}
	}
	monitor.AfterFiltering(slices.Clone(filtered))

	if len(filtered) == 0 {
		return []*core.Match{}, nil
	}

	byID := make(map[core.ID]*core.ExpertProfile, len(filtered))
	ranked := make([]similarity.Candidate, 0, len(filtered))
	for _, candidate := range filtered {
		byID[candidate.Id] = candidate
		ranked = append(ranked, similarity.Candidate{Id: candidate.Id, Vector: candidate.Vector})
	}

	ordered, err := similarity.Rank(queryVector, ranked)
	if err != nil {
		s.logger.Error("error ranking candidates", "candidateCount", len(ranked), "err", err)
		return nil, err
	}

	matches := make([]*core.Match, 0, limit)
	for _, r := range ordered {
		if r.Score < s.config.MinScore {
			break
		}
		matches = append(matches, &core.Match{
			Profile: byID[r.Id],
			Score:   r.Score,
		})
		if len(matches) == limit {
			break
		}
	}
	monitor.Finish(matches)

	return matches, nil
}
