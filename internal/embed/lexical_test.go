package embed

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vectorMagnitude(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func cosine(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

// ============================================================================
// Basic embedding
// ============================================================================

func TestLexicalEmbedder_Embed_ReturnsConfiguredDimensions(t *testing.T) {
	// Given: lexical embedder with 256 dimensions
	embedder := NewLexicalEmbedder(256)
	defer func() { _ = embedder.Close() }()

	// When: I embed a sentence
	embedding, err := embedder.Embed(context.Background(), "wisdom begins in wonder")

	// Then: a 256-dimension vector is returned
	require.NoError(t, err)
	assert.Len(t, embedding, 256)
}

func TestLexicalEmbedder_Embed_VectorIsNormalized(t *testing.T) {
	// Given: lexical embedder
	embedder := NewLexicalEmbedder(256)
	defer func() { _ = embedder.Close() }()

	// When: I embed text
	embedding, err := embedder.Embed(context.Background(), "the quick brown fox")
	require.NoError(t, err)

	// Then: vector magnitude is ~1.0 (normalized)
	assert.InDelta(t, 1.0, vectorMagnitude(embedding), 0.001, "vector should be normalized to unit length")
}

func TestLexicalEmbedder_NonPositiveDimensionsFallBackToDefault(t *testing.T) {
	embedder := NewLexicalEmbedder(0)
	assert.Equal(t, DefaultDimensions, embedder.Dimensions())
}

// ============================================================================
// Determinism
// ============================================================================

func TestLexicalEmbedder_Embed_IsDeterministic(t *testing.T) {
	// Given: lexical embedder
	embedder := NewLexicalEmbedder(256)
	defer func() { _ = embedder.Close() }()

	text := "hope is the thing with feathers"

	// When: I embed the same text twice
	emb1, err1 := embedder.Embed(context.Background(), text)
	emb2, err2 := embedder.Embed(context.Background(), text)

	// Then: identical vectors are returned
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, emb1, emb2, "same text should produce identical vectors")
}

func TestLexicalEmbedder_Embed_DeterministicAcrossInstances(t *testing.T) {
	// Given: two separate embedder instances
	embedder1 := NewLexicalEmbedder(256)
	embedder2 := NewLexicalEmbedder(256)
	defer func() { _ = embedder1.Close() }()
	defer func() { _ = embedder2.Close() }()

	text := "every valley shall be exalted"

	// When: I embed the same text with different instances
	emb1, _ := embedder1.Embed(context.Background(), text)
	emb2, _ := embedder2.Embed(context.Background(), text)

	// Then: identical vectors are returned
	assert.Equal(t, emb1, emb2, "same text should produce identical vectors across instances")
}

func TestLexicalEmbedder_Embed_NormalizationCollapsesVariants(t *testing.T) {
	// Given: lexical embedder
	embedder := NewLexicalEmbedder(256)
	defer func() { _ = embedder.Close() }()

	// When: I embed casing and whitespace variants of the same text
	emb1, _ := embedder.Embed(context.Background(), "God is Love")
	emb2, _ := embedder.Embed(context.Background(), "  god   IS love ")

	// Then: both variants map to the same vector
	assert.Equal(t, emb1, emb2)
}

// ============================================================================
// Edge cases
// ============================================================================

func TestLexicalEmbedder_Embed_EmptyInputYieldsZeroVector(t *testing.T) {
	embedder := NewLexicalEmbedder(64)
	defer func() { _ = embedder.Close() }()

	for _, input := range []string{"", "   ", "\t\n"} {
		embedding, err := embedder.Embed(context.Background(), input)

		require.NoError(t, err)
		require.Len(t, embedding, 64)
		assert.Zero(t, vectorMagnitude(embedding), "empty input should yield the zero vector")
	}
}

func TestLexicalEmbedder_Embed_ClosedEmbedderErrors(t *testing.T) {
	embedder := NewLexicalEmbedder(64)
	require.NoError(t, embedder.Close())

	_, err := embedder.Embed(context.Background(), "anything")
	assert.Error(t, err)
}

// ============================================================================
// Semantic behavior
// ============================================================================

func TestLexicalEmbedder_SharedVocabularyScoresHigher(t *testing.T) {
	// Given: three texts, two about love and one unrelated
	embedder := NewLexicalEmbedder(256)
	defer func() { _ = embedder.Close() }()

	a, _ := embedder.Embed(context.Background(), "God is love")
	b, _ := embedder.Embed(context.Background(), "Love is patient")
	c, _ := embedder.Embed(context.Background(), "The sky is blue")

	// Then: the love texts align more closely with each other
	assert.Greater(t, cosine(a, b), cosine(a, c))
	assert.Greater(t, cosine(a, b), cosine(b, c))
}

func TestLexicalEmbedder_ConceptFoldingLinksSynonyms(t *testing.T) {
	// Given: texts sharing a concept but no surface vocabulary
	embedder := NewLexicalEmbedder(256)
	defer func() { _ = embedder.Close() }()

	love, _ := embedder.Embed(context.Background(), "divine love")
	charity, _ := embedder.Embed(context.Background(), "charity is kind")
	rock, _ := embedder.Embed(context.Background(), "a rock formation")

	// Then: the synonym text scores well above the unrelated one
	assert.Greater(t, cosine(love, charity), cosine(love, rock))
	assert.Greater(t, cosine(love, charity), 0.5)
}

// ============================================================================
// Batch embedding
// ============================================================================

func TestLexicalEmbedder_EmbedBatch(t *testing.T) {
	embedder := NewLexicalEmbedder(128)
	defer func() { _ = embedder.Close() }()

	texts := []string{"first text", "second text", ""}
	results, err := embedder.EmbedBatch(context.Background(), texts)

	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, vec := range results {
		assert.Len(t, vec, 128)
	}

	single, _ := embedder.Embed(context.Background(), "first text")
	assert.Equal(t, single, results[0], "batch results should match single embedding")
}

func TestLexicalEmbedder_EmbedBatch_EmptyInput(t *testing.T) {
	embedder := NewLexicalEmbedder(128)
	defer func() { _ = embedder.Close() }()

	results, err := embedder.EmbedBatch(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLexicalEmbedder_ModelName(t *testing.T) {
	assert.Equal(t, "lexical", NewLexicalEmbedder(64).ModelName())
}
