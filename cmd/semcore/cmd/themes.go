package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corpuskit/semcore/internal/kernel"
)

// themesOptions holds CLI flags for themes.
type themesOptions struct {
	minClusterSize int
	file           string
	format         string
}

func newThemesCmd() *cobra.Command {
	var opts themesOptions

	cmd := &cobra.Command{
		Use:   "themes [text]...",
		Short: "Discover thematic clusters in a text collection",
		Long: `Cluster a text collection by mutual similarity into labeled themes.

Texts come from the command line or, with --file, one per line from a text
file (use "-" for stdin).

Examples:
  semcore themes "God is love" "Love is patient" "The sky is blue"
  semcore themes --file verses.txt --min-cluster-size 3 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			texts, err := gatherTexts(cmd, args, opts.file)
			if err != nil {
				return err
			}

			k, err := kernel.Get(nil)
			if err != nil {
				return err
			}

			themes, err := k.DiscoverThemes(cmd.Context(), texts, opts.minClusterSize)
			if err != nil {
				return err
			}

			if opts.format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(themes)
			}
			for _, theme := range themes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (confidence %.4f)\n  %s\n",
					theme.Label, theme.Confidence, strings.Join(theme.Members, "\n  "))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.minClusterSize, "min-cluster-size", "m", 0, "Smallest cluster to keep (0 = default)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read texts from file, one per line (\"-\" for stdin)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, json")

	return cmd
}
