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

import "fmt"

// ValidateExpertProfile validates an ExpertProfile according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - VettingStatus must be a known value
//   - Hourly rates must not be negative
//   - Rating must be within [0, 5]
//   - A Vector must never be stored without its EmbedText snapshot
//
// NOT validated (populated by processors):
//   - Vector/EmbedText/EmbeddedAt may all be absent until an embedding runs
//   - ID (0 is valid from database sequences)
func ValidateExpertProfile(profile *ExpertProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidExpertProfile)
	}

	if profile.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidExpertProfile, ErrEmptyName)
	}

	if err := ValidateVettingStatus(profile.Vetting); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidExpertProfile, err)
	}

	for _, rate := range []float64{profile.RateAdvisory, profile.RateArchitecture, profile.RateExecution} {
		if rate < 0 {
			return fmt.Errorf("%w: %w", ErrInvalidExpertProfile, ErrNegativeRate)
		}
	}

	if profile.Rating < 0 || profile.Rating > 5 {
		return fmt.Errorf("%w: %w", ErrInvalidExpertProfile, ErrInvalidRating)
	}

	if len(profile.Vector) > 0 && profile.EmbedText == "" {
		return fmt.Errorf("%w: %w", ErrInvalidExpertProfile, ErrOrphanedVector)
	}

	return nil
}

// ValidateVettingStatus validates that a VettingStatus has a valid value.
func ValidateVettingStatus(status VettingStatus) error {
	switch status {
	case VettingPending, VettingApproved, VettingRejected:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidVettingStatus, status)
	}
}
