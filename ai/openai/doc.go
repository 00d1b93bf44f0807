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


// Package openai provides an ai.Provider implementation backed by an
// OpenAI-compatible embedding API, typically a local server (Ollama, LocalAI,
// vLLM) hosting a sentence-embedding model such as all-minilm.
//
// The model is loaded once per process: the first Init call triggers a
// warm-up embedding and every concurrent caller awaits that single load.
// After a successful warm-up no further network setup happens; inference
// calls run concurrently without mutual exclusion because the model is never
// mutated.
package openai
