package search

import (
	"strings"

	"github.com/deeptechhq/expertmatch/core"
)

// Filters narrows the candidate set before ranking. The zero value
// matches every profile.
type Filters struct {
	// Domain restricts results to experts listing this domain.
	// Matching is case-insensitive.
	Domain string

	// MinRate and MaxRate bound the advisory hourly rate.
	// A zero bound is ignored.
	MinRate float64
	MaxRate float64

	// Vetting restricts results to a vetting status when non-zero.
	Vetting core.VettingStatus

	// MinRating excludes experts rated below this value.
	MinRating float64

	// RequireAvailable excludes experts not currently accepting work.
	RequireAvailable bool
}

// matches reports whether the profile passes every active filter.
func (f Filters) matches(p *core.ExpertProfile) bool {
	if f.Domain != "" && !containsFold(p.Domains, f.Domain) {
		return false
	}
	if f.MinRate > 0 && p.RateAdvisory < f.MinRate {
		return false
	}
	if f.MaxRate > 0 && p.RateAdvisory > f.MaxRate {
		return false
	}
	if f.Vetting != 0 && p.Vetting != f.Vetting {
		return false
	}
	if f.MinRating > 0 && p.Rating < f.MinRating {
		return false
	}
	if f.RequireAvailable && !p.Available {
		return false
	}
	return true
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
