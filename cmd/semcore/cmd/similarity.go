package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corpuskit/semcore/internal/kernel"
)

func newSimilarityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "similarity <textA> <textB>",
		Short: "Score the similarity of two texts",
		Long: `Compute the cosine similarity of two texts.

Scores range from -1 to 1; 1 means maximal alignment. The score is symmetric
and cached, so repeating the comparison in either order is free.

Examples:
  semcore similarity "God is love" "Love is patient"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := kernel.Get(nil)
			if err != nil {
				return err
			}

			score, err := k.Similarity(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%.4f\n", score)
			return nil
		},
	}
}
