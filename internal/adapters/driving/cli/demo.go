package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the sample search batch",
	Long: `Runs a fixed batch of sample queries against the current index and
prints the top results for each. Combine with "load --build" for a
self-contained demonstration.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, _ []string) error {
	if err := requireEngine(); err != nil {
		return err
	}
	ctx := cmd.Context()

	for _, query := range sampleQueries {
		cmd.Printf("Query: %q\n", query)

		results, err := engine.Search(ctx, query, 3)
		if err != nil {
			return fmt.Errorf("search %q: %w", query, err)
		}

		if len(results) == 0 {
			cmd.Println("  No results found.")
			cmd.Println()
			continue
		}
		for i := range results {
			cmd.Printf("  %d. %s (%.3f)\n", i+1, results[i].Title, results[i].Similarity)
		}
		cmd.Println()
	}
	return nil
}
