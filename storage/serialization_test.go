package storage

import (
	"testing"
	"time"

	"github.com/deeptechhq/expertmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpertProfile_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	profile := &core.ExpertProfile{
		Id:               42,
		Name:             "Ada Lovelace",
		Bio:              "Analytical engine programming",
		Skills:           []string{"mathematics", "algorithms"},
		Domains:          []string{"computing"},
		RateAdvisory:     150,
		RateArchitecture: 200,
		RateExecution:    250,
		Vetting:          core.VettingApproved,
		Rating:           4.8,
		ReviewCount:      12,
		Available:        true,
		CreatedAt:        now.Add(-time.Hour),
		UpdatedAt:        now,
		Vector:           []float32{0.1, 0.2, 0.3},
		EmbedText:        "Name: Ada Lovelace | Experience: Analytical engine programming",
		EmbeddedAt:       now,
	}

	data := MarshalExpertProfile(profile)
	got, err := UnmarshalExpertProfile(data)
	require.NoError(t, err)

	assert.Equal(t, profile, got)
}

func TestExpertProfile_RoundTrip_NoEmbedding(t *testing.T) {
	profile := &core.ExpertProfile{
		Id:        7,
		Name:      "Grace Hopper",
		Vetting:   core.VettingPending,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	got, err := UnmarshalExpertProfile(MarshalExpertProfile(profile))
	require.NoError(t, err)

	assert.Empty(t, got.Vector)
	assert.Empty(t, got.EmbedText)
	assert.True(t, got.EmbeddedAt.IsZero(), "zero EmbeddedAt must survive the round trip")
}

func TestID_RoundTrip(t *testing.T) {
	id := core.TextFingerprint("some profile text")

	got, err := UnmarshalID(MarshalID(id))
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestUnmarshalExpertProfile_Truncated(t *testing.T) {
	profile := &core.ExpertProfile{Id: 1, Name: "X", Vetting: core.VettingPending}
	data := MarshalExpertProfile(profile)

	_, err := UnmarshalExpertProfile(data[:1])
	assert.Error(t, err)
}
