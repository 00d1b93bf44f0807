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


// Package ai provides abstractions for the embedding services used in
// expertmatch.
//
// This package defines interfaces for generating text embeddings. It follows
// the dependency inversion principle: the search orchestrator and the batch
// reembedding job depend on these abstractions rather than on concrete
// implementations.
//
// # Design Principles
//
// The package is designed around two key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - Provider: Owns the model lifecycle (single-flight load, shared instance)
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//     (a local server hosting the sentence-embedding model)
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Usage Example
//
//	provider, err := openai.NewProvider(ai.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	if err := provider.Init(ctx); err != nil {
//	    log.Fatal(err) // ai.ErrModelUnavailable
//	}
//	vector, err := provider.Embedder().EmbedText(ctx, "robotics expert")
package ai
