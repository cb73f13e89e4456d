package kernel

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	semerrors "github.com/corpuskit/semcore/internal/errors"
)

// Neighbor is one edge of the relationship graph: another text and its
// similarity score to the owning text.
type Neighbor struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Graph maps every input text to its neighbors whose similarity meets the
// threshold, sorted descending by score. Built fresh on every call.
type Graph map[string][]Neighbor

// graphOptions holds per-call overrides for BuildRelationshipGraph.
type graphOptions struct {
	threshold    float64
	hasThreshold bool
}

// GraphOption configures a relationship graph build.
type GraphOption func(*graphOptions)

// WithThreshold overrides the configured similarity threshold for one build.
func WithThreshold(threshold float64) GraphOption {
	return func(o *graphOptions) {
		o.threshold = threshold
		o.hasThreshold = true
	}
}

// BuildRelationshipGraph scores every unordered pair of distinct input texts
// exactly once and returns, for each text, the others whose similarity meets
// the threshold, sorted descending by score with ties in input order.
//
// When the collection exceeds the configured parallel threshold, pair scoring
// fans out across the configured worker count. Scheduling is the only
// difference between the two paths: pairs, scores, and assembly are
// identical, so both paths produce the same graph.
func (k *Kernel) BuildRelationshipGraph(ctx context.Context, texts []string, opts ...GraphOption) (Graph, error) {
	options := graphOptions{threshold: k.cfg.SimilarityThreshold}
	for _, opt := range opts {
		opt(&options)
	}
	if options.hasThreshold && (options.threshold < 0 || options.threshold > 1) {
		return nil, semerrors.Newf(semerrors.ErrCodeInvalidInput,
			"threshold must be between 0 and 1, got %f", options.threshold)
	}

	nodes := dedupeTexts(texts)
	graph := make(Graph, len(nodes))
	for _, node := range nodes {
		graph[node] = []Neighbor{}
	}
	if len(nodes) < 2 {
		return graph, nil
	}

	pairs := enumeratePairs(len(nodes))
	scores := make([]float64, len(pairs))

	if len(nodes) > k.cfg.ParallelThreshold {
		k.parallelOperations.Add(1)
		k.logger.Debug("building relationship graph in parallel",
			"texts", len(nodes), "pairs", len(pairs), "workers", k.cfg.WorkerCount)

		g, gctx := errgroup.WithContext(ctx)
		workers := k.cfg.WorkerCount
		for w := 0; w < workers; w++ {
			w := w
			g.Go(func() error {
				// Strided partition: each worker owns disjoint slice slots,
				// so no locking and no dependence on completion order.
				for idx := w; idx < len(pairs); idx += workers {
					p := pairs[idx]
					score, err := k.Similarity(gctx, nodes[p.a], nodes[p.b])
					if err != nil {
						return err
					}
					scores[idx] = score
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for idx, p := range pairs {
			score, err := k.Similarity(ctx, nodes[p.a], nodes[p.b])
			if err != nil {
				return nil, err
			}
			scores[idx] = score
		}
	}

	// Assembly is shared by both paths. Neighbors append in ascending node
	// index order, so the stable sort below breaks score ties by original
	// input order.
	for idx, p := range pairs {
		if scores[idx] >= options.threshold {
			graph[nodes[p.a]] = append(graph[nodes[p.a]], Neighbor{Text: nodes[p.b], Score: scores[idx]})
			graph[nodes[p.b]] = append(graph[nodes[p.b]], Neighbor{Text: nodes[p.a], Score: scores[idx]})
		}
	}
	for _, node := range nodes {
		neighbors := graph[node]
		sort.SliceStable(neighbors, func(i, j int) bool {
			return neighbors[i].Score > neighbors[j].Score
		})
	}

	return graph, nil
}

// textPair indexes one unordered pair of nodes.
type textPair struct {
	a, b int
}

// enumeratePairs lists every unordered pair (a, b) with a < b, in ascending
// order. The enumeration is the canonical pair ordering for both the
// sequential and parallel paths.
func enumeratePairs(n int) []textPair {
	pairs := make([]textPair, 0, n*(n-1)/2)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			pairs = append(pairs, textPair{a: a, b: b})
		}
	}
	return pairs
}

// dedupeTexts drops repeated texts, keeping first-occurrence order.
func dedupeTexts(texts []string) []string {
	seen := make(map[string]struct{}, len(texts))
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
