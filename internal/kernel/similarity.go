package kernel

import (
	"context"
	"math"

	"github.com/corpuskit/semcore/internal/embed"
	semerrors "github.com/corpuskit/semcore/internal/errors"
)

// MaxSimilarity is the score of a text compared with itself.
const MaxSimilarity = 1.0

// Similarity returns the cosine similarity of two texts, caching the result
// under an order-independent pair key. Symmetry holds by construction:
// (a, b) and (b, a) resolve to the same cache entry and the same score.
// A cache hit never touches the embedder.
//
// This is the single authorized path to a similarity score; the ranker,
// graph builder, and theme discoverer never compute one directly.
func (k *Kernel) Similarity(ctx context.Context, a, b string) (float64, error) {
	keyA, keyB := embed.CacheKey(a), embed.CacheKey(b)
	if keyA == keyB {
		return MaxSimilarity, nil
	}

	if !k.cfg.EnableCaching {
		return k.computeSimilarity(ctx, a, b)
	}

	key := pairKey(keyA, keyB)
	if score, ok := k.simCache.Get(key); ok {
		k.cacheHits.Add(1)
		return score, nil
	}

	v, err, _ := k.simFlight.Do(key, func() (any, error) {
		if score, ok := k.simCache.Get(key); ok {
			k.cacheHits.Add(1)
			return score, nil
		}
		score, err := k.computeSimilarity(ctx, a, b)
		if err != nil {
			return nil, err
		}
		k.simCache.Add(key, score)
		return score, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// computeSimilarity embeds both texts (through the embedding cache) and
// takes their cosine similarity.
func (k *Kernel) computeSimilarity(ctx context.Context, a, b string) (float64, error) {
	va, err := k.Embed(ctx, a)
	if err != nil {
		return 0, err
	}
	vb, err := k.Embed(ctx, b)
	if err != nil {
		return 0, err
	}
	return cosineSimilarity(va, vb)
}

// pairKey builds the order-independent cache key for a pair of text keys.
func pairKey(keyA, keyB string) string {
	if keyB < keyA {
		keyA, keyB = keyB, keyA
	}
	return keyA + "\x00" + keyB
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Range is [-1, 1]; a zero vector on either side scores 0.
func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, semerrors.Newf(semerrors.ErrCodeDimensionMismatch,
			"embedding dimensions differ: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
