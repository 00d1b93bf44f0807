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


// Package search provides semantic expert matching.
//
// The Searcher type implements a multi-stage search pipeline:
//   - Query normalization and embedding
//   - Structured filtering of the candidate set
//   - Cosine similarity ranking with deterministic tie-breaking
//
// Only profiles with a current embedding participate in ranking; stale or
// missing embeddings are excluded until the reembed job regenerates them.
package search
