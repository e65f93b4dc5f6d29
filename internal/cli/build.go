package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wizenheimer/gutensearch"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the inverted index and similarity graph from a corpus directory",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("corpus", "", "path to the corpus directory (required)")
	buildCmd.Flags().String("store", "", "path to the Pebble store directory (required)")
	buildCmd.MarkFlagRequired("corpus")
	buildCmd.MarkFlagRequired("store")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	corpus, _ := cmd.Flags().GetString("corpus")
	storePath, _ := cmd.Flags().GetString("store")
	logger := newLogger(cmd)

	store, err := gutensearch.OpenPebbleStore(storePath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := gutensearch.BuildAll(ctx, store, corpus, logger); err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	fmt.Println("build complete")
	return nil
}
