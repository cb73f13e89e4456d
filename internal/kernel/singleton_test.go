package kernel

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpuskit/semcore/internal/config"
)

func TestGet_ConstructsOnceAndReturnsSameInstance(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	first, err := Get(nil)
	require.NoError(t, err)
	second, err := Get(nil)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestGet_FirstConfigWins(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	cfg := config.Default()
	cfg.EmbeddingDim = 64
	first, err := Get(cfg)
	require.NoError(t, err)

	other := config.Default()
	other.EmbeddingDim = 512
	second, err := Get(other)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 64, second.Config().EmbeddingDim, "a later config is ignored")
}

func TestGet_InvalidConfigLeavesNoInstance(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	bad := config.Default()
	bad.CacheSize = -1
	_, err := Get(bad)
	require.Error(t, err)

	k, err := Get(nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultCacheSize, k.Config().CacheSize,
		"a failed first call must not poison the singleton")
}

func TestReset_DiscardsInstance(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	first, err := Get(nil)
	require.NoError(t, err)
	_, err = first.Embed(context.Background(), "hello world")
	require.NoError(t, err)

	Reset()

	second, err := Get(nil)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, Stats{}, second.Stats(), "a fresh kernel starts with zeroed counters")
}

func TestGet_ConcurrentFirstCallConstructsOnce(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	kernels := make([]*Kernel, 16)
	var wg sync.WaitGroup
	for i := range kernels {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k, err := Get(nil)
			assert.NoError(t, err)
			kernels[i] = k
		}(i)
	}
	wg.Wait()

	for _, k := range kernels[1:] {
		assert.Same(t, kernels[0], k)
	}
}
