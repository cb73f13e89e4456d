package embed

import (
	"context"
	"fmt"
	"hash/fnv"
	"regexp"
	"sync"
)

// LexicalEmbedder generates embeddings using a hash-based approach.
// Works without external dependencies (no network, no model download).
// Deterministic: the same normalized text always yields bit-identical
// vectors, in the same process or any other.
type LexicalEmbedder struct {
	dimensions int

	mu     sync.RWMutex
	closed bool
}

// tokenRegex matches alphanumeric sequences.
var tokenRegex = regexp.MustCompile(`[a-z0-9]+`)

// NewLexicalEmbedder creates a lexical embedder producing vectors of the
// given length. Non-positive dimensions fall back to DefaultDimensions.
func NewLexicalEmbedder(dimensions int) *LexicalEmbedder {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &LexicalEmbedder{dimensions: dimensions}
}

// Embed generates the embedding for a single text.
// Empty or whitespace-only input yields the zero vector, not an error.
func (e *LexicalEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return nil, fmt.Errorf("embedder is closed")
	}
	e.mu.RUnlock()

	normalized := NormalizeText(text)
	if normalized == "" {
		return make([]float32, e.dimensions), nil
	}

	return normalizeVector(e.generateVector(normalized)), nil
}

// generateVector creates a hash-based vector from normalized text.
func (e *LexicalEmbedder) generateVector(text string) []float32 {
	vector := make([]float32, e.dimensions)

	for _, token := range tokenize(text) {
		index := hashToIndex(foldConcept(token), e.dimensions)
		vector[index]++
	}

	return vector
}

// tokenize splits normalized text into lowercase alphanumeric tokens.
func tokenize(text string) []string {
	return tokenRegex.FindAllString(text, -1)
}

// Tokenize normalizes a text and splits it into lowercase alphanumeric
// tokens. Exposed for consumers that derive labels or summaries from the
// same token stream the embedder sees.
func Tokenize(text string) []string {
	return tokenize(NormalizeText(text))
}

// hashToIndex uses FNV-64 to map a string to a vector index.
func hashToIndex(s string, size int) int {
	h := fnv.New64()
	_, _ = h.Write([]byte(s))
	return int(h.Sum64() % uint64(size))
}

// EmbedBatch generates embeddings for multiple texts.
func (e *LexicalEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	results := make([][]float32, len(texts))
	for i, text := range texts {
		emb, err := e.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed text %d: %w", i, err)
		}
		results[i] = emb
	}

	return results, nil
}

// Dimensions returns the embedding dimension.
func (e *LexicalEmbedder) Dimensions() int {
	return e.dimensions
}

// ModelName returns the model identifier.
func (e *LexicalEmbedder) ModelName() string {
	return "lexical"
}

// Close releases resources.
func (e *LexicalEmbedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}
