package core

import (
	"errors"
	"testing"
)

func TestValidateExpertProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile *ExpertProfile
		wantErr error
	}{
		{
			name: "valid profile",
			profile: &ExpertProfile{
				Id:      1,
				Name:    "Ada Lovelace",
				Bio:     "Analytical engines",
				Skills:  []string{"mathematics"},
				Vetting: VettingApproved,
				Rating:  4.5,
			},
			wantErr: nil,
		},
		{
			name: "valid profile without embedding",
			profile: &ExpertProfile{
				Id:      2,
				Name:    "Grace Hopper",
				Vetting: VettingPending,
			},
			wantErr: nil,
		},
		{
			name:    "nil profile",
			profile: nil,
			wantErr: ErrInvalidExpertProfile,
		},
		{
			name: "empty name",
			profile: &ExpertProfile{
				Vetting: VettingPending,
			},
			wantErr: ErrEmptyName,
		},
		{
			name: "unknown vetting status",
			profile: &ExpertProfile{
				Name:    "Someone",
				Vetting: VettingStatus(42),
			},
			wantErr: ErrInvalidVettingStatus,
		},
		{
			name: "negative rate",
			profile: &ExpertProfile{
				Name:         "Someone",
				Vetting:      VettingPending,
				RateAdvisory: -10,
			},
			wantErr: ErrNegativeRate,
		},
		{
			name: "rating out of range",
			profile: &ExpertProfile{
				Name:    "Someone",
				Vetting: VettingPending,
				Rating:  5.5,
			},
			wantErr: ErrInvalidRating,
		},
		{
			name: "vector without snapshot",
			profile: &ExpertProfile{
				Name:    "Someone",
				Vetting: VettingApproved,
				Vector:  []float32{0.1, 0.2},
			},
			wantErr: ErrOrphanedVector,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExpertProfile(tt.profile)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateExpertProfile() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExpertProfile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
