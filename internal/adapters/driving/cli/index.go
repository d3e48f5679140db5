package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the embedding index",
	Long: `Chunks every buffered document, embeds each chunk and swaps in a
fresh vector index. Documents added after a build are absent from the
index until the next build.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if err := requireEngine(); err != nil {
		return err
	}

	if err := engine.BuildIndex(cmd.Context()); err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	cmd.Println("Index built.")
	return nil
}
