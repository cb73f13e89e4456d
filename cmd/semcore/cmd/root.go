// Package cmd provides the CLI commands for semcore.
//
// The CLI is a thin consumer of the kernel: it reads texts from arguments,
// files, or stdin, invokes kernel operations, and prints results. All
// semantics live in internal/kernel.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/corpuskit/semcore/internal/config"
	"github.com/corpuskit/semcore/internal/kernel"
	"github.com/corpuskit/semcore/internal/logging"
	"github.com/corpuskit/semcore/pkg/version"
)

var (
	configPath string
	debugMode  bool
	showStats  bool
)

// NewRootCmd creates the root command for the semcore CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "semcore",
		Short: "Semantic similarity kernel for text collections",
		Long: `semcore embeds text into deterministic vectors and derives
similarity scores, nearest-neighbor rankings, relationship graphs, and
thematic clusters from them.

Everything runs in-process: no network, no model downloads.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.SetVersionTemplate("semcore version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&showStats, "stats", false, "Print kernel statistics after the command")

	cmd.PersistentPreRunE = setupKernel
	cmd.PersistentPostRun = printStats

	cmd.AddCommand(newSimilarityCmd())
	cmd.AddCommand(newRankCmd())
	cmd.AddCommand(newGraphCmd())
	cmd.AddCommand(newThemesCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setupKernel loads environment, logging, configuration, and constructs the
// process-wide kernel before any subcommand runs.
func setupKernel(_ *cobra.Command, _ []string) error {
	// A missing .env file is fine; explicit env vars still apply.
	_ = godotenv.Load()

	logCfg := logging.DefaultConfig()
	if debugMode {
		logCfg = logging.DebugConfig()
	}
	slog.SetDefault(logging.Setup(logCfg))

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if _, err := kernel.Get(cfg); err != nil {
		return err
	}
	return nil
}

// printStats prints kernel statistics when --stats is set.
func printStats(_ *cobra.Command, _ []string) {
	if !showStats {
		return
	}
	k, err := kernel.Get(nil)
	if err != nil {
		return
	}
	stats := k.Stats()
	fmt.Fprintf(os.Stderr, "cache_hits=%d embeddings_computed=%d parallel_operations=%d embedding_cache=%d similarity_cache=%d\n",
		stats.CacheHits, stats.EmbeddingsComputed, stats.ParallelOperations,
		stats.EmbeddingCacheLen, stats.SimilarityCacheLen)
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
