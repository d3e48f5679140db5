package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/semsearch-cli/internal/adapters/driven/embedding/hashing"
	"github.com/custodia-labs/semsearch-cli/internal/adapters/driven/storage/sqlite"
	vectormem "github.com/custodia-labs/semsearch-cli/internal/adapters/driven/vector/memory"
	"github.com/custodia-labs/semsearch-cli/internal/chunker"
	"github.com/custodia-labs/semsearch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/semsearch-cli/internal/core/ports/driving"
	"github.com/custodia-labs/semsearch-cli/internal/core/services"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Exercise the full pipeline against a throwaway store",
	Long: `Runs add-document, index build, search and stats against a temporary
SQLite database using the offline hashing embedder, then removes the
database. Verifies the installation without touching configured data.`,
	RunE: runSelftest,
}

func init() {
	rootCmd.AddCommand(selftestCmd)
}

func runSelftest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	dir, err := os.MkdirTemp("", "semsearch-selftest-*")
	if err != nil {
		return fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(dir) //nolint:errcheck

	store, err := sqlite.NewStore(filepath.Join(dir, "selftest.db"))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close() //nolint:errcheck

	splitter, err := chunker.New(chunker.DefaultChunkSize, chunker.DefaultChunkOverlap)
	if err != nil {
		return err
	}

	eng, err := services.NewEngine(ctx, store, hashing.New(hashing.DefaultDimensions),
		func() driven.VectorIndex { return vectormem.New() }, splitter)
	if err != nil {
		return err
	}

	cmd.Println("1. Adding document...")
	docID, err := eng.AddDocument(ctx, driving.AddDocumentInput{
		Title:    "Self-Test Document",
		Content:  "This is a test document used to verify the search pipeline end to end.",
		FileType: "test",
	})
	if err != nil {
		return fmt.Errorf("add document: %w", err)
	}
	cmd.Printf("   Added %s\n", docID)

	cmd.Println("2. Building index...")
	if err := eng.BuildIndex(ctx); err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	cmd.Println("3. Searching...")
	results, err := eng.Search(ctx, "test document", 1)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if len(results) == 0 {
		return fmt.Errorf("search returned no results for an indexed document")
	}
	cmd.Printf("   Found %d result(s)\n", len(results))

	cmd.Println("4. Checking stats...")
	stats, err := store.DocumentStats(ctx)
	if err != nil {
		return fmt.Errorf("document stats: %w", err)
	}
	if stats.TotalDocuments == 0 {
		return fmt.Errorf("document stats report an empty store")
	}
	cmd.Printf("   %d document(s) in store\n", stats.TotalDocuments)

	cmd.Println("Self-test passed.")
	return nil
}
