package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsRecent int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show document and search analytics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsRecent, "recent", 10, "number of recent queries to show")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if analytics == nil {
		return errors.New("analytics service not configured")
	}
	ctx := cmd.Context()

	docStats, err := analytics.DocumentStats(ctx)
	if err != nil {
		return fmt.Errorf("document stats: %w", err)
	}

	cmd.Println("Documents")
	cmd.Printf("  Total documents: %d\n", docStats.TotalDocuments)
	cmd.Printf("  Total words:     %d\n", docStats.TotalWords)
	if docStats.EmbeddingModel != "" {
		cmd.Printf("  Embedding model: %s\n", docStats.EmbeddingModel)
	}
	if len(docStats.FileTypes) > 0 {
		cmd.Println("  File types:")
		types := make([]string, 0, len(docStats.FileTypes))
		for t := range docStats.FileTypes {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			cmd.Printf("    - %s: %d\n", t, docStats.FileTypes[t])
		}
	}

	searchStats, err := analytics.SearchAnalytics(ctx, statsRecent)
	if err != nil {
		return fmt.Errorf("search analytics: %w", err)
	}

	cmd.Println()
	cmd.Println("Searches")
	cmd.Printf("  Total searches:     %d\n", searchStats.TotalSearches)
	cmd.Printf("  Avg execution time: %.3fs\n", searchStats.AvgExecutionSeconds)
	cmd.Printf("  Avg results:        %.1f\n", searchStats.AvgResults)
	if len(searchStats.RecentQueries) > 0 {
		cmd.Println("  Recent queries:")
		for _, q := range searchStats.RecentQueries {
			cmd.Printf("    - %s\n", q)
		}
	}
	return nil
}
