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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidExpertProfile indicates an ExpertProfile failed validation.
	ErrInvalidExpertProfile = errors.New("invalid expert profile")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidVettingStatus indicates an invalid VettingStatus value.
	ErrInvalidVettingStatus = errors.New("invalid vetting status")

	// ErrNegativeRate indicates a negative hourly rate.
	ErrNegativeRate = errors.New("hourly rate cannot be negative")

	// ErrInvalidRating indicates a rating outside the 0-5 range.
	ErrInvalidRating = errors.New("rating must be between 0 and 5")

	// ErrOrphanedVector indicates an embedding vector stored without its
	// source text snapshot.
	ErrOrphanedVector = errors.New("embedding vector present without source text snapshot")
)
