package similarity

import (
	"slices"

	"github.com/deeptechhq/expertmatch/core"
)

// Candidate pairs a candidate id with its stored embedding vector.
type Candidate struct {
	Id     core.ID
	Vector []float32
}

// Ranked is a candidate id with its similarity score against a query vector.
type Ranked struct {
	Id    core.ID
	Score float32
}

// Rank scores every candidate against the query vector and returns them
// ordered by descending score. Ties are broken by ascending candidate id so
// that ranking is deterministic. Pure function: candidates are not mutated.
// Fails with ErrDimensionMismatch on the first candidate whose vector length
// differs from the query's.
func Rank(query []float32, candidates []Candidate) ([]Ranked, error) {
	ranked := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		score, err := Cosine(query, c.Vector)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, Ranked{Id: c.Id, Score: score})
	}

	slices.SortFunc(ranked, func(a, b Ranked) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})

	return ranked, nil
}
