package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corpuskit/semcore/internal/kernel"
)

// rankOptions holds CLI flags for rank.
type rankOptions struct {
	topK   int
	file   string
	format string
}

func newRankCmd() *cobra.Command {
	var opts rankOptions

	cmd := &cobra.Command{
		Use:   "rank <query> [candidate]...",
		Short: "Rank candidate texts against a query",
		Long: `Rank candidate texts by similarity to a query, best first.

Candidates come from the command line or, with --file, one per line from a
text file (use "-" for stdin).

Examples:
  semcore rank "divine love" "love endures" "a rock formation" -n 2
  semcore rank "divine love" --file verses.txt --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates, err := gatherTexts(cmd, args[1:], opts.file)
			if err != nil {
				return err
			}

			k, err := kernel.Get(nil)
			if err != nil {
				return err
			}

			topK := opts.topK
			if topK == 0 {
				topK = len(candidates)
			}
			matches, err := k.FindSimilar(cmd.Context(), args[0], candidates, topK)
			if err != nil {
				return err
			}

			if opts.format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(matches)
			}
			for _, m := range matches {
				fmt.Fprintf(cmd.OutOrStdout(), "%.4f\t%s\n", m.Score, m.Text)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.topK, "limit", "n", 0, "Maximum number of results (0 = all)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read candidates from file, one per line (\"-\" for stdin)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, json")

	return cmd
}
