package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corpuskit/semcore/internal/kernel"
)

// graphOptions holds CLI flags for graph.
type graphOptions struct {
	threshold float64
	file      string
	format    string
}

func newGraphCmd() *cobra.Command {
	var opts graphOptions

	cmd := &cobra.Command{
		Use:   "graph [text]...",
		Short: "Build a relationship graph over a text collection",
		Long: `Build a relationship graph: for every text, the other texts whose
similarity meets the threshold, sorted by score.

Texts come from the command line or, with --file, one per line from a text
file (use "-" for stdin).

Examples:
  semcore graph "God is love" "Love is patient" "The sky is blue"
  semcore graph --file verses.txt --threshold 0.5 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			texts, err := gatherTexts(cmd, args, opts.file)
			if err != nil {
				return err
			}

			k, err := kernel.Get(nil)
			if err != nil {
				return err
			}

			var graphOpts []kernel.GraphOption
			if cmd.Flags().Changed("threshold") {
				graphOpts = append(graphOpts, kernel.WithThreshold(opts.threshold))
			}
			graph, err := k.BuildRelationshipGraph(cmd.Context(), texts, graphOpts...)
			if err != nil {
				return err
			}

			if opts.format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(graph)
			}
			for _, text := range texts {
				neighbors, ok := graph[text]
				if !ok {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", text)
				for _, n := range neighbors {
					fmt.Fprintf(cmd.OutOrStdout(), "  %.4f\t%s\n", n.Score, n.Text)
				}
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&opts.threshold, "threshold", "t", 0, "Minimum similarity for an edge (default: configured threshold)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read texts from file, one per line (\"-\" for stdin)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, json")

	return cmd
}

// gatherTexts merges positional texts with lines read from an optional file.
// Blank lines are skipped.
func gatherTexts(cmd *cobra.Command, args []string, file string) ([]string, error) {
	texts := append([]string{}, args...)
	if file == "" {
		return texts, nil
	}

	var reader io.Reader
	if file == "-" {
		reader = cmd.InOrStdin()
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("opening texts file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	}

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading texts: %w", err)
	}
	return texts, nil
}
