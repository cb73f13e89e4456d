package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpuskit/semcore/internal/kernel"
)

// execute runs the CLI with the given arguments against a fresh kernel and
// returns captured stdout/stderr.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	kernel.Reset()
	t.Cleanup(kernel.Reset)
	configPath = ""
	debugMode = false
	showStats = false

	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func TestSimilarityCmd_IdenticalTextsScoreOne(t *testing.T) {
	out, err := execute(t, "similarity", "God is love", "god is LOVE")

	require.NoError(t, err)
	assert.Equal(t, "1.0000\n", out)
}

func TestSimilarityCmd_RequiresTwoArguments(t *testing.T) {
	_, err := execute(t, "similarity", "only one")

	assert.Error(t, err)
}

func TestRankCmd_OrdersResults(t *testing.T) {
	out, err := execute(t, "rank", "divine love",
		"a rock formation", "love endures", "-n", "1")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "love endures")
	assert.NotContains(t, out, "a rock formation")
}

func TestRankCmd_JSONOutput(t *testing.T) {
	out, err := execute(t, "rank", "divine love", "love endures", "--format", "json")

	require.NoError(t, err)
	assert.Contains(t, out, `"text": "love endures"`)
	assert.Contains(t, out, `"score"`)
}

func TestGraphCmd_TextOutput(t *testing.T) {
	out, err := execute(t, "graph",
		"God is love", "Love is patient", "The sky is blue")

	require.NoError(t, err)
	assert.Contains(t, out, "God is love")
	assert.Contains(t, out, "Love is patient")
}

func TestGraphCmd_ReadsTextsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texts.txt")
	content := "God is love\nLove is patient\n\nThe sky is blue\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := execute(t, "graph", "--file", path)

	require.NoError(t, err)
	assert.Contains(t, out, "The sky is blue")
}

func TestThemesCmd_FindsLoveTheme(t *testing.T) {
	out, err := execute(t, "themes",
		"God is love", "Love is patient", "The sky is blue")

	require.NoError(t, err)
	assert.Contains(t, out, "love")
	assert.NotContains(t, out, "The sky is blue")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "semcore")
}

func TestRootCmd_InvalidConfigFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("embedding_dim: -5\n"), 0o644))

	_, err := execute(t, "--config", path, "similarity", "a", "b")

	assert.Error(t, err)
}
