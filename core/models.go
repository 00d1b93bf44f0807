package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// TextFingerprint generates a deterministic ID from text content using BLAKE2b hashing.
// The update path compares fingerprints of the embedding input to decide whether an
// edit invalidated the stored vector.
func TextFingerprint(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// VettingStatus identifies where an expert stands in the marketplace vetting flow.
type VettingStatus int

const (
	// VettingPending means the expert has applied but has not been reviewed.
	VettingPending VettingStatus = iota + 1
	// VettingApproved means the expert passed review and may appear in results.
	VettingApproved
	// VettingRejected means the expert failed review.
	VettingRejected
)

// String returns the lowercase wire name of the status.
func (v VettingStatus) String() string {
	switch v {
	case VettingPending:
		return "pending"
	case VettingApproved:
		return "approved"
	case VettingRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ParseVettingStatus maps a wire name back to a VettingStatus.
// Returns ErrInvalidVettingStatus for unrecognized names.
func ParseVettingStatus(s string) (VettingStatus, error) {
	switch s {
	case "pending":
		return VettingPending, nil
	case "approved":
		return VettingApproved, nil
	case "rejected":
		return VettingRejected, nil
	default:
		return 0, ErrInvalidVettingStatus
	}
}

// ExpertProfile represents an expert listed on the marketplace.
// The embedding triple (Vector, EmbedText, EmbeddedAt) is derived data: it is
// populated lazily by the reembed job or the ingestion pipeline and cleared
// whenever a text-bearing field changes.
type ExpertProfile struct {
	Id      ID
	Name    string
	Bio     string
	Skills  []string
	Domains []string

	RateAdvisory     float64 // Hourly rate for advisory calls
	RateArchitecture float64 // Hourly rate for architecture review
	RateExecution    float64 // Hourly rate for hands-on execution

	Vetting     VettingStatus
	Rating      float64
	ReviewCount int
	Available   bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Derived embedding state. Vector present implies EmbedText present:
	// the snapshot is the exact normalized text the vector was computed from.
	Vector     []float32
	EmbedText  string
	EmbeddedAt time.Time
}

// HasEmbedding reports whether the profile carries an embedding vector.
func (p *ExpertProfile) HasEmbedding() bool {
	return len(p.Vector) > 0
}

// EmbeddingStale reports whether the stored vector predates the last edit of
// the profile. Profiles without a vector are not considered stale, just empty.
func (p *ExpertProfile) EmbeddingStale() bool {
	if !p.HasEmbedding() {
		return false
	}
	return p.EmbeddedAt.Before(p.UpdatedAt)
}

// Match represents a ranked search result with its similarity score.
type Match struct {
	Profile *ExpertProfile
	Score   float32
}
