package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/semsearch-cli/internal/core/ports/driving"
)

var loadBuild bool

var loadCmd = &cobra.Command{
	Use:   "load [file...]",
	Short: "Add documents to the store",
	Long: `Adds documents and buffers them for the next index build.
With file arguments, each file becomes one document (title from the
file name). Without arguments, loads the built-in sample corpus.`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().BoolVar(&loadBuild, "build", false, "build the index after loading")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	if err := requireEngine(); err != nil {
		return err
	}
	ctx := cmd.Context()

	var inputs []driving.AddDocumentInput
	if len(args) == 0 {
		inputs = sampleDocuments
	} else {
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			name := filepath.Base(path)
			inputs = append(inputs, driving.AddDocumentInput{
				Title:    strings.TrimSuffix(name, filepath.Ext(name)),
				Content:  string(data),
				FilePath: path,
				FileType: strings.TrimPrefix(filepath.Ext(name), "."),
			})
		}
	}

	for _, in := range inputs {
		docID, err := engine.AddDocument(ctx, in)
		if err != nil {
			return fmt.Errorf("adding %q: %w", in.Title, err)
		}
		cmd.Printf("Added %s (%s)\n", in.Title, docID)
	}
	cmd.Printf("%d document(s) loaded.\n", len(inputs))

	if loadBuild {
		if err := engine.BuildIndex(ctx); err != nil {
			return fmt.Errorf("building index: %w", err)
		}
		cmd.Println("Index built.")
	}
	return nil
}
