package mock

import (
	"context"

	"github.com/deeptechhq/expertmatch/ai"
)

// MockProvider is a test double for ai.Provider.
type MockProvider struct {
	embedder *MockEmbedder

	// InitFunc is called by Init if set. If nil, Init succeeds immediately.
	InitFunc func(ctx context.Context) error

	initCalls int
	closed    bool
}

var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates a provider whose embedder produces deterministic
// vectors. Returns the interface type since it is the primary entry point;
// use GetMockEmbedder for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{embedder: NewMockEmbedder()}
}

// Init records the call and runs InitFunc when injected.
func (p *MockProvider) Init(ctx context.Context) error {
	p.initCalls++
	if p.InitFunc != nil {
		return p.InitFunc(ctx)
	}
	return nil
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// GetMockEmbedder returns the concrete mock embedder for assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// InitCalls returns how many times Init was invoked.
func (p *MockProvider) InitCalls() int {
	return p.initCalls
}
