package kernel

import (
	"context"
	"sort"

	semerrors "github.com/corpuskit/semcore/internal/errors"
)

// Match is one ranked candidate from FindSimilar.
type Match struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// FindSimilar scores every candidate against the query and returns the topK
// best, sorted descending by score. Ties keep the original candidate order
// (stable sort). No threshold is applied.
//
// topK is clamped to the candidate count; topK of zero or an empty candidate
// list yields an empty result. A negative topK is an input error.
func (k *Kernel) FindSimilar(ctx context.Context, query string, candidates []string, topK int) ([]Match, error) {
	if topK < 0 {
		return nil, semerrors.Newf(semerrors.ErrCodeInvalidInput,
			"top_k must be non-negative, got %d", topK)
	}
	if topK == 0 || len(candidates) == 0 {
		return []Match{}, nil
	}

	matches := make([]Match, 0, len(candidates))
	for _, candidate := range candidates {
		score, err := k.Similarity(ctx, query, candidate)
		if err != nil {
			return nil, err
		}
		matches = append(matches, Match{Text: candidate, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if topK < len(matches) {
		matches = matches[:topK]
	}
	return matches, nil
}
