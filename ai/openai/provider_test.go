package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/deeptechhq/expertmatch/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeEmbeddingResponse answers an OpenAI-compatible embeddings request with
// one vector of the given length per input.
func writeEmbeddingResponse(t *testing.T, w http.ResponseWriter, r *http.Request, dims int) {
	t.Helper()

	var req struct {
		Input any `json:"input"`
	}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

	count := 1
	if list, ok := req.Input.([]any); ok {
		count = len(list)
	}

	type embeddingData struct {
		Object    string    `json:"object"`
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	}
	data := make([]embeddingData, count)
	for i := range data {
		vector := make([]float32, dims)
		vector[0] = 1
		data[i] = embeddingData{Object: "embedding", Index: i, Embedding: vector}
	}

	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
		"object": "list",
		"model":  "all-minilm",
		"data":   data,
		"usage":  map[string]int{"prompt_tokens": 0, "total_tokens": 0},
	}))
}

func newTestProvider(t *testing.T, host string, dims int) ai.Provider {
	t.Helper()

	provider, err := NewProvider(ai.NewConfig(
		ai.WithEmbeddingHost(host),
		ai.WithDimensions(dims),
	))
	require.NoError(t, err)
	return provider
}

func TestProvider_Init_CoalescesConcurrentCallers(t *testing.T) {
	var requests atomic.Int64
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		<-release
		writeEmbeddingResponse(t, w, r, 3)
	}))
	defer srv.Close()

	provider := newTestProvider(t, srv.URL, 3)
	ctx := context.Background()

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = provider.Init(ctx)
		}(i)
	}

	// Let every caller reach Init while the first request is held open,
	// then release the server.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "caller %d", i)
	}
	assert.EqualValues(t, 1, requests.Load(), "concurrent callers must share one model load")

	// The model is loaded now; another Init must not touch the server.
	require.NoError(t, provider.Init(ctx))
	assert.EqualValues(t, 1, requests.Load())
}

func TestProvider_Init_RetryableAfterFailure(t *testing.T) {
	var requests atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			http.Error(w, "model is loading", http.StatusInternalServerError)
			return
		}
		writeEmbeddingResponse(t, w, r, 3)
	}))
	defer srv.Close()

	provider := newTestProvider(t, srv.URL, 3)
	ctx := context.Background()

	err := provider.Init(ctx)
	assert.ErrorIs(t, err, ai.ErrModelUnavailable)

	// The failure must not be cached: the next call reloads and succeeds.
	require.NoError(t, provider.Init(ctx))
	assert.EqualValues(t, 2, requests.Load())

	require.NoError(t, provider.Init(ctx))
	assert.EqualValues(t, 2, requests.Load(), "a successful load must be cached")
}

func TestProvider_Init_DimensionMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEmbeddingResponse(t, w, r, 3)
	}))
	defer srv.Close()

	provider := newTestProvider(t, srv.URL, 384)

	err := provider.Init(context.Background())
	assert.ErrorIs(t, err, ai.ErrModelUnavailable)
}
