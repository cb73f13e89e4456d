package kernel

import (
	"context"

	"github.com/corpuskit/semcore/internal/embed"
	semerrors "github.com/corpuskit/semcore/internal/errors"
)

// DefaultMinClusterSize is the minimum theme size when the caller passes 0.
const DefaultMinClusterSize = 2

// Theme is a cluster of mutually similar texts with a derived label and a
// confidence score. Themes are returned to the caller and not retained by
// the kernel.
type Theme struct {
	Label      string   `json:"label"`
	Members    []string `json:"members"`
	Confidence float64  `json:"confidence"`
}

// labelStopWords are tokens too common to serve as a theme label.
var labelStopWords = map[string]bool{
	"the": true, "and": true, "for": true, "that": true, "this": true,
	"with": true, "from": true, "are": true, "was": true, "were": true,
	"not": true, "but": true, "his": true, "her": true, "they": true,
	"them": true, "has": true, "have": true, "had": true, "will": true,
	"all": true, "you": true, "your": true, "who": true, "which": true,
	"unto": true, "shall": true,
}

// DiscoverThemes clusters texts by mutual similarity. It builds a
// relationship graph at the configured threshold, then collects connected
// components by breadth-first closure in input order (first-found-wins, so
// every text lands in at most one theme). Components smaller than
// minClusterSize are discarded.
//
// Each surviving cluster gets a label, the most frequent significant token
// across its members, and a confidence, the mean pairwise similarity over
// all member pairs.
func (k *Kernel) DiscoverThemes(ctx context.Context, texts []string, minClusterSize int) ([]Theme, error) {
	if minClusterSize < 0 {
		return nil, semerrors.Newf(semerrors.ErrCodeInvalidInput,
			"min_cluster_size must be non-negative, got %d", minClusterSize)
	}
	if minClusterSize == 0 {
		minClusterSize = DefaultMinClusterSize
	}

	graph, err := k.BuildRelationshipGraph(ctx, texts)
	if err != nil {
		return nil, err
	}

	nodes := dedupeTexts(texts)
	visited := make(map[string]bool, len(nodes))
	themes := []Theme{}

	for _, node := range nodes {
		if visited[node] {
			continue
		}
		cluster := collectComponent(graph, node, visited)
		if len(cluster) < minClusterSize {
			continue
		}

		confidence, err := k.meanPairwiseSimilarity(ctx, cluster)
		if err != nil {
			return nil, err
		}
		themes = append(themes, Theme{
			Label:      deriveLabel(cluster),
			Members:    cluster,
			Confidence: confidence,
		})
	}

	return themes, nil
}

// collectComponent gathers the connected component containing start via
// breadth-first traversal over graph edges, marking every member visited.
// Traversal order is deterministic: neighbor lists are already sorted.
func collectComponent(graph Graph, start string, visited map[string]bool) []string {
	component := []string{start}
	visited[start] = true

	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, neighbor := range graph[current] {
			if visited[neighbor.Text] {
				continue
			}
			visited[neighbor.Text] = true
			component = append(component, neighbor.Text)
			queue = append(queue, neighbor.Text)
		}
	}

	return component
}

// deriveLabel picks the most frequent significant token across the cluster
// members. Significant means at least three characters and not a stop word.
// Ties go to the token seen first. Falls back to "theme" when no member has
// a significant token.
func deriveLabel(members []string) string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, member := range members {
		for _, token := range embed.Tokenize(member) {
			if len(token) < 3 || labelStopWords[token] {
				continue
			}
			if _, ok := counts[token]; !ok {
				firstSeen[token] = order
				order++
			}
			counts[token]++
		}
	}

	label := ""
	bestCount := 0
	for token, count := range counts {
		if count > bestCount || (count == bestCount && firstSeen[token] < firstSeen[label]) {
			label = token
			bestCount = count
		}
	}
	if label == "" {
		return "theme"
	}
	return label
}

// meanPairwiseSimilarity averages Similarity over all unordered member
// pairs. Scores come through the similarity cache, which the preceding
// graph build already populated.
func (k *Kernel) meanPairwiseSimilarity(ctx context.Context, members []string) (float64, error) {
	if len(members) < 2 {
		return MaxSimilarity, nil
	}

	var sum float64
	var count int
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			score, err := k.Similarity(ctx, members[i], members[j])
			if err != nil {
				return 0, err
			}
			sum += score
			count++
		}
	}
	return sum / float64(count), nil
}
