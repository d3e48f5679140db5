package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/semsearch-cli/internal/core/domain"
)

var (
	searchTopK int
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents",
	Long: `Embeds the query and returns the most similar chunks, ranked by
cosine similarity and joined with document metadata.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "maximum number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := requireEngine(); err != nil {
		return err
	}

	topK := searchTopK
	if topK <= 0 && appConfig != nil {
		topK = appConfig.DefaultTopK
	}
	if topK <= 0 {
		topK = 5
	}

	results, err := engine.Search(cmd.Context(), args[0], topK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	outputSearchTable(cmd, results)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		title := results[i].Title
		if title == "" {
			title = results[i].DocID
		}

		snippet := results[i].Text
		if len(snippet) > 120 {
			snippet = snippet[:120] + "..."
		}

		cmd.Printf("  [%d] %s (%.3f)\n", i+1, title, results[i].Similarity)
		cmd.Printf("      %s\n", snippet)
		cmd.Println()
	}
}
