package kernel

import (
	"context"
	"log/slog"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/corpuskit/semcore/internal/config"
	"github.com/corpuskit/semcore/internal/embed"
	semerrors "github.com/corpuskit/semcore/internal/errors"
)

// Kernel holds the configuration, both bounded caches, and the statistics
// counters. Safe for concurrent use: each cache is independently
// synchronized, and duplicate concurrent computations collapse through
// singleflight so a lookup-then-insert race never computes twice.
type Kernel struct {
	cfg      *config.Config
	embedder embed.Embedder
	logger   *slog.Logger

	embCache *lru.Cache[string, []float32]
	simCache *lru.Cache[string, float64]

	embFlight singleflight.Group
	simFlight singleflight.Group

	cacheHits          atomic.Int64
	embeddingsComputed atomic.Int64
	parallelOperations atomic.Int64
}

// Stats is a snapshot of the kernel counters and cache occupancy.
type Stats struct {
	// CacheHits counts hits on either cache (embedding or similarity).
	CacheHits int64 `json:"cache_hits"`

	// EmbeddingsComputed counts embeddings computed from scratch.
	EmbeddingsComputed int64 `json:"embeddings_computed"`

	// ParallelOperations counts graph builds that took the parallel path.
	ParallelOperations int64 `json:"parallel_operations"`

	// EmbeddingCacheLen is the current embedding cache occupancy.
	EmbeddingCacheLen int `json:"embedding_cache_len"`

	// SimilarityCacheLen is the current similarity cache occupancy.
	SimilarityCacheLen int `json:"similarity_cache_len"`
}

// Option configures a Kernel.
type Option func(*Kernel)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(k *Kernel) {
		k.logger = logger
	}
}

// WithEmbedder sets the embedder. Defaults to a lexical embedder sized to
// the configured embedding dimension. Custom embedders must be
// deterministic for cache coherence to hold.
func WithEmbedder(e embed.Embedder) Option {
	return func(k *Kernel) {
		k.embedder = e
	}
}

// New constructs a kernel from the given configuration.
// A nil configuration means defaults. Invalid configuration fails fast.
func New(cfg *config.Config, opts ...Option) (*Kernel, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	k := &Kernel{cfg: cfg}
	for _, opt := range opts {
		opt(k)
	}
	if k.logger == nil {
		k.logger = slog.Default()
	}
	if k.embedder == nil {
		k.embedder = embed.NewLexicalEmbedder(cfg.EmbeddingDim)
	}

	// Constructors only fail on non-positive size, which Validate excludes.
	embCache, err := lru.New[string, []float32](cfg.CacheSize)
	if err != nil {
		return nil, semerrors.InternalError("creating embedding cache", err)
	}
	simCache, err := lru.New[string, float64](cfg.CacheSize)
	if err != nil {
		return nil, semerrors.InternalError("creating similarity cache", err)
	}
	k.embCache = embCache
	k.simCache = simCache

	k.logger.Info("kernel constructed",
		"embedding_dim", cfg.EmbeddingDim,
		"cache_size", cfg.CacheSize,
		"caching", cfg.EnableCaching,
		"similarity_threshold", cfg.SimilarityThreshold,
	)

	return k, nil
}

// Config returns a copy of the kernel configuration.
func (k *Kernel) Config() config.Config {
	return *k.cfg
}

// Embed returns the embedding for a text, consulting the embedding cache
// first. Identical normalized texts always share one cached vector; empty
// text yields the zero vector.
func (k *Kernel) Embed(ctx context.Context, text string) ([]float32, error) {
	if !k.cfg.EnableCaching {
		return k.computeEmbedding(ctx, text)
	}

	key := embed.CacheKey(text)
	if vec, ok := k.embCache.Get(key); ok {
		k.cacheHits.Add(1)
		return vec, nil
	}

	// singleflight collapses concurrent misses on the same key to one
	// computation; the re-check covers a flight that completed between the
	// lookup above and Do acquiring the key.
	v, err, _ := k.embFlight.Do(key, func() (any, error) {
		if vec, ok := k.embCache.Get(key); ok {
			k.cacheHits.Add(1)
			return vec, nil
		}
		vec, err := k.computeEmbedding(ctx, text)
		if err != nil {
			return nil, err
		}
		k.embCache.Add(key, vec)
		return vec, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]float32), nil
}

// computeEmbedding runs the embedder and counts the computation.
func (k *Kernel) computeEmbedding(ctx context.Context, text string) ([]float32, error) {
	vec, err := k.embedder.Embed(ctx, text)
	if err != nil {
		return nil, semerrors.Wrap(semerrors.ErrCodeEmbeddingFailed, err)
	}
	k.embeddingsComputed.Add(1)
	return vec, nil
}

// Stats returns a snapshot of the counters and cache occupancy.
func (k *Kernel) Stats() Stats {
	return Stats{
		CacheHits:          k.cacheHits.Load(),
		EmbeddingsComputed: k.embeddingsComputed.Load(),
		ParallelOperations: k.parallelOperations.Load(),
		EmbeddingCacheLen:  k.embCache.Len(),
		SimilarityCacheLen: k.simCache.Len(),
	}
}

// ClearCache empties both caches. Counters are not reset: hits and
// computations remain part of the kernel's lifetime accounting.
func (k *Kernel) ClearCache() {
	k.embCache.Purge()
	k.simCache.Purge()
	k.logger.Debug("caches cleared")
}
