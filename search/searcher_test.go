package search

import (
	"context"
	"testing"
	"time"

	"github.com/deeptechhq/expertmatch/ai/mock"
	"github.com/deeptechhq/expertmatch/core"
	"github.com/deeptechhq/expertmatch/storage"
	"github.com/deeptechhq/expertmatch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// directionalEmbedder maps known texts to fixed 3-dimensional directions so
// ranking order is predictable in tests.
func directionalEmbedder(vectors map[string][]float32) func(ctx context.Context, text string) ([]float32, error) {
	return func(_ context.Context, text string) ([]float32, error) {
		if v, ok := vectors[text]; ok {
			return v, nil
		}
		return []float32{0, 0, 1}, nil
	}
}

func setupSearcher(t *testing.T) (*Searcher, storage.ExpertRepository, *mock.MockProvider) {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	provider := mock.NewMockProvider().(*mock.MockProvider)
	searcher, err := NewSearcher(repo, provider)
	require.NoError(t, err)
	return searcher, repo, provider
}

func seedExpert(t *testing.T, repo storage.ExpertRepository, p *core.ExpertProfile, vector []float32) core.ID {
	t.Helper()

	ctx := context.Background()
	added, err := repo.AddExpertProfiles(ctx, p)
	require.NoError(t, err)
	id := added[0].Id
	if vector != nil {
		require.NoError(t, repo.SetEmbedding(ctx, id, vector, p.EmbedInput(), time.Now().UTC().Add(time.Second)))
	}
	return id
}

func expertNamed(name string, opts ...func(*core.ExpertProfile)) *core.ExpertProfile {
	p := &core.ExpertProfile{
		Name:      name,
		Bio:       "ten years of experience",
		Skills:    []string{"go"},
		Domains:   []string{"backend"},
		Vetting:   core.VettingApproved,
		Available: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func TestNewSearcher_RequiresDependencies(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	_, err = NewSearcher(nil, mock.NewMockProvider())
	assert.ErrorIs(t, err, ErrExpertRepositoryRequired)

	_, err = NewSearcher(repo, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}

func TestSearch_EmptyQuery(t *testing.T) {
	searcher, _, _ := setupSearcher(t)

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := searcher.Search(context.Background(), query, Filters{}, 5)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
}

func TestSearch_InvalidLimit(t *testing.T) {
	searcher, _, _ := setupSearcher(t)
	ctx := context.Background()

	_, err := searcher.Search(ctx, "golang expert", Filters{}, -1)
	assert.ErrorIs(t, err, ErrInvalidLimit)

	_, err = searcher.Search(ctx, "golang expert", Filters{}, 101)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestSearch_EmptyCandidateSet(t *testing.T) {
	searcher, _, _ := setupSearcher(t)

	matches, err := searcher.Search(context.Background(), "golang expert", Filters{}, 5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearch_RanksByCosineSimilarity(t *testing.T) {
	searcher, repo, provider := setupSearcher(t)
	provider.GetMockEmbedder().EmbedTextFunc = directionalEmbedder(map[string][]float32{
		"robotics expert": {1, 0, 0},
	})

	// closest, partial, and orthogonal candidates
	idClose := seedExpert(t, repo, expertNamed("Close"), []float32{1, 0, 0})
	idMid := seedExpert(t, repo, expertNamed("Mid"), []float32{0.7071, 0.7071, 0})
	idFar := seedExpert(t, repo, expertNamed("Far"), []float32{0, 1, 0})

	matches, err := searcher.Search(context.Background(), "robotics expert", Filters{}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, idClose, matches[0].Profile.Id)
	assert.Equal(t, idMid, matches[1].Profile.Id)
	assert.Equal(t, idFar, matches[2].Profile.Id)
	assert.Greater(t, matches[0].Score, matches[1].Score)
	assert.Greater(t, matches[1].Score, matches[2].Score)
}

func TestSearch_TruncatesToLimit(t *testing.T) {
	searcher, repo, _ := setupSearcher(t)

	for _, name := range []string{"A", "B", "C", "D", "E"} {
		seedExpert(t, repo, expertNamed(name), mock.DeterministicVector(name, mock.Dimensions))
	}

	matches, err := searcher.Search(context.Background(), "golang expert", Filters{}, 3)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestSearch_ZeroLimitUsesDefault(t *testing.T) {
	searcher, repo, _ := setupSearcher(t)

	for i := 0; i < 12; i++ {
		name := string(rune('A' + i))
		seedExpert(t, repo, expertNamed(name), mock.DeterministicVector(name, mock.Dimensions))
	}

	matches, err := searcher.Search(context.Background(), "golang expert", Filters{}, 0)
	require.NoError(t, err)
	assert.Len(t, matches, DefaultConfig().DefaultLimit)
}

func TestSearch_ExcludesMissingAndStaleEmbeddings(t *testing.T) {
	searcher, repo, provider := setupSearcher(t)
	provider.GetMockEmbedder().EmbedTextFunc = directionalEmbedder(nil)
	ctx := context.Background()

	embedded := seedExpert(t, repo, expertNamed("Embedded"), []float32{1, 0, 0})
	seedExpert(t, repo, expertNamed("NoVector"), nil)

	// Stale: embedded, then a text field edit clears the vector
	staleID := seedExpert(t, repo, expertNamed("Edited"), []float32{0, 1, 0})
	edited := expertNamed("Edited")
	edited.Id = staleID
	edited.Bio = "rewrote the biography"
	_, err := repo.UpdateExpertProfiles(ctx, edited)
	require.NoError(t, err)

	matches, err := searcher.Search(ctx, "golang expert", Filters{}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, embedded, matches[0].Profile.Id)
}

func TestSearch_AppliesFilters(t *testing.T) {
	searcher, repo, provider := setupSearcher(t)
	provider.GetMockEmbedder().EmbedTextFunc = directionalEmbedder(nil)
	ctx := context.Background()

	seedExpert(t, repo, expertNamed("Backend", func(p *core.ExpertProfile) {
		p.RateAdvisory = 200
		p.Rating = 4.5
	}), []float32{1, 0, 0})
	seedExpert(t, repo, expertNamed("Robotics", func(p *core.ExpertProfile) {
		p.Domains = []string{"robotics"}
		p.RateAdvisory = 500
		p.Rating = 3.0
	}), []float32{0, 1, 0})
	seedExpert(t, repo, expertNamed("Busy", func(p *core.ExpertProfile) {
		p.Available = false
	}), []float32{0, 0, 1})

	t.Run("by domain", func(t *testing.T) {
		matches, err := searcher.Search(ctx, "expert", Filters{Domain: "Robotics"}, 10)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Robotics", matches[0].Profile.Name)
	})

	t.Run("by rate bounds", func(t *testing.T) {
		matches, err := searcher.Search(ctx, "expert", Filters{MaxRate: 300}, 10)
		require.NoError(t, err)
		for _, m := range matches {
			assert.LessOrEqual(t, m.Profile.RateAdvisory, float64(300))
		}
	})

	t.Run("by rating", func(t *testing.T) {
		matches, err := searcher.Search(ctx, "expert", Filters{MinRating: 4.0}, 10)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Backend", matches[0].Profile.Name)
	})

	t.Run("by availability", func(t *testing.T) {
		matches, err := searcher.Search(ctx, "expert", Filters{RequireAvailable: true}, 10)
		require.NoError(t, err)
		for _, m := range matches {
			assert.True(t, m.Profile.Available)
		}
		assert.Len(t, matches, 2)
	})
}

func TestSearch_MinScoreCutoff(t *testing.T) {
	searcher, repo, provider := setupSearcher(t)
	provider.GetMockEmbedder().EmbedTextFunc = directionalEmbedder(map[string][]float32{
		"robotics expert": {1, 0, 0},
	})
	searcher.config.MinScore = 0.5

	seedExpert(t, repo, expertNamed("Aligned"), []float32{1, 0, 0})
	seedExpert(t, repo, expertNamed("Orthogonal"), []float32{0, 1, 0})

	matches, err := searcher.Search(context.Background(), "robotics expert", Filters{}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Aligned", matches[0].Profile.Name)
}

type recordingMonitor struct {
	started    bool
	dimensions int
	candidates int
	filtered   int
	finished   int
}

func (r *recordingMonitor) Start(_ string)                                  { r.started = true }
func (r *recordingMonitor) AfterQueryEmbedding(d int)                       { r.dimensions = d }
func (r *recordingMonitor) AfterCandidateRetrieval(c []*core.ExpertProfile) { r.candidates = len(c) }
func (r *recordingMonitor) AfterFiltering(c []*core.ExpertProfile)          { r.filtered = len(c) }
func (r *recordingMonitor) Finish(m []*core.Match)                          { r.finished = len(m) }

// vandalMonitor mutates every slice handed to it.
type vandalMonitor struct{}

func (v *vandalMonitor) Start(_ string)            {}
func (v *vandalMonitor) AfterQueryEmbedding(_ int) {}
func (v *vandalMonitor) AfterCandidateRetrieval(c []*core.ExpertProfile) {
	for i := range c {
		c[i] = nil
	}
}
func (v *vandalMonitor) AfterFiltering(c []*core.ExpertProfile) {
	for i := range c {
		c[i] = nil
	}
}
func (v *vandalMonitor) Finish(_ []*core.Match) {}

func TestSearchWithMonitor_HooksCannotMutateCandidates(t *testing.T) {
	searcher, repo, provider := setupSearcher(t)
	provider.GetMockEmbedder().EmbedTextFunc = directionalEmbedder(map[string][]float32{
		"robotics expert": {1, 0, 0},
	})

	idClose := seedExpert(t, repo, expertNamed("Close"), []float32{1, 0, 0})
	idFar := seedExpert(t, repo, expertNamed("Far"), []float32{0, 1, 0})

	matches, err := searcher.SearchWithMonitor(context.Background(), "robotics expert", Filters{}, 10, &vandalMonitor{})
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, idClose, matches[0].Profile.Id)
	assert.Equal(t, idFar, matches[1].Profile.Id)
}

func TestSearchWithMonitor_ReportsStages(t *testing.T) {
	searcher, repo, provider := setupSearcher(t)
	provider.GetMockEmbedder().EmbedTextFunc = directionalEmbedder(nil)

	seedExpert(t, repo, expertNamed("A"), []float32{1, 0, 0})
	seedExpert(t, repo, expertNamed("B", func(p *core.ExpertProfile) {
		p.Available = false
	}), []float32{0, 1, 0})

	monitor := &recordingMonitor{}
	_, err := searcher.SearchWithMonitor(context.Background(), "expert", Filters{RequireAvailable: true}, 10, monitor)
	require.NoError(t, err)

	assert.True(t, monitor.started)
	assert.Equal(t, 3, monitor.dimensions)
	assert.Equal(t, 2, monitor.candidates)
	assert.Equal(t, 1, monitor.filtered)
	assert.Equal(t, 1, monitor.finished)
}
