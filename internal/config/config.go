// Package config defines the semcore kernel configuration.
//
// Configuration is a plain value object: constructed once, validated at
// construction, and never mutated while a kernel holds it. Values load from
// defaults, then an optional YAML file, then SEMCORE_* environment variables
// (highest priority).
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	semerrors "github.com/corpuskit/semcore/internal/errors"
)

// Default values for kernel construction.
const (
	// DefaultEmbeddingDim is the default embedding vector length.
	DefaultEmbeddingDim = 256

	// DefaultCacheSize is the default capacity of each bounded cache.
	DefaultCacheSize = 1000

	// DefaultSimilarityThreshold is the default minimum score for a
	// relationship graph edge.
	DefaultSimilarityThreshold = 0.6

	// DefaultParallelThreshold is the collection size above which the graph
	// builder switches to the parallel path.
	DefaultParallelThreshold = 20

	// DefaultWorkerCount is the default number of graph workers.
	DefaultWorkerCount = 4
)

// Config holds the tunable behavior of a semantic kernel.
// Immutable once a kernel is constructed from it.
type Config struct {
	// EmbeddingDim is the length of every embedding vector.
	EmbeddingDim int `yaml:"embedding_dim" json:"embedding_dim"`

	// CacheSize is the capacity of the embedding cache and of the
	// similarity cache (each cache is bounded independently).
	CacheSize int `yaml:"cache_size" json:"cache_size"`

	// EnableCaching controls whether either cache is consulted or populated.
	// When false every operation recomputes from scratch.
	EnableCaching bool `yaml:"enable_caching" json:"enable_caching"`

	// SimilarityThreshold is the default minimum score for a relationship
	// graph edge. Must be in [0, 1].
	SimilarityThreshold float64 `yaml:"similarity_threshold" json:"similarity_threshold"`

	// ParallelThreshold is the text collection size above which pairwise
	// similarity work is distributed across workers.
	ParallelThreshold int `yaml:"parallel_threshold" json:"parallel_threshold"`

	// WorkerCount is the number of workers used by the parallel path.
	WorkerCount int `yaml:"worker_count" json:"worker_count"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		EmbeddingDim:        DefaultEmbeddingDim,
		CacheSize:           DefaultCacheSize,
		EnableCaching:       true,
		SimilarityThreshold: DefaultSimilarityThreshold,
		ParallelThreshold:   DefaultParallelThreshold,
		WorkerCount:         DefaultWorkerCount,
	}
}

// Load reads configuration from a YAML file, applies environment overrides,
// and validates the result. A missing file is not an error: defaults plus
// environment are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, semerrors.ConfigError(fmt.Sprintf("reading config file %s", path), err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, semerrors.ConfigError(fmt.Sprintf("parsing config file %s", path), err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from SEMCORE_* environment variables.
func (c *Config) applyEnv() {
	if v, ok := envInt("SEMCORE_EMBEDDING_DIM"); ok {
		c.EmbeddingDim = v
	}
	if v, ok := envInt("SEMCORE_CACHE_SIZE"); ok {
		c.CacheSize = v
	}
	if v, ok := envBool("SEMCORE_ENABLE_CACHING"); ok {
		c.EnableCaching = v
	}
	if v, ok := envFloat("SEMCORE_SIMILARITY_THRESHOLD"); ok {
		c.SimilarityThreshold = v
	}
	if v, ok := envInt("SEMCORE_PARALLEL_THRESHOLD"); ok {
		c.ParallelThreshold = v
	}
	if v, ok := envInt("SEMCORE_WORKER_COUNT"); ok {
		c.WorkerCount = v
	}
}

// Validate checks the configuration and returns a structured error if invalid.
func (c *Config) Validate() error {
	if c.EmbeddingDim <= 0 {
		return semerrors.Newf(semerrors.ErrCodeConfigInvalid,
			"embedding_dim must be positive, got %d", c.EmbeddingDim)
	}
	if c.CacheSize <= 0 {
		return semerrors.Newf(semerrors.ErrCodeConfigInvalid,
			"cache_size must be positive, got %d", c.CacheSize)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return semerrors.Newf(semerrors.ErrCodeConfigInvalid,
			"similarity_threshold must be between 0 and 1, got %f", c.SimilarityThreshold)
	}
	if c.ParallelThreshold <= 0 {
		return semerrors.Newf(semerrors.ErrCodeConfigInvalid,
			"parallel_threshold must be positive, got %d", c.ParallelThreshold)
	}
	if c.WorkerCount <= 0 {
		return semerrors.Newf(semerrors.ErrCodeConfigInvalid,
			"worker_count must be positive, got %d", c.WorkerCount)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return semerrors.ConfigError("marshaling config", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return semerrors.ConfigError(fmt.Sprintf("writing config file %s", path), err)
	}
	return nil
}

func envInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envFloat(key string) (float64, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envBool(key string) (bool, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
