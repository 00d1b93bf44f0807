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


package search

import "errors"

var (
	// ErrEmptyQuery is returned when the query is empty after normalization.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrInvalidLimit is returned when the requested result limit is
	// negative or exceeds the configured maximum.
	ErrInvalidLimit = errors.New("invalid result limit")

	// ErrExpertRepositoryRequired is returned when an expert repository is not provided.
	ErrExpertRepositoryRequired = errors.New("expert repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")
)
