package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wizenheimer/gutensearch"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a keyword and/or regex query against a built store",
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().String("store", "", "path to the Pebble store directory (required)")
	queryCmd.Flags().String("corpus", "", "path to the corpus directory (required, for book titles)")
	queryCmd.Flags().String("keyword", "", "exact/KMP keyword search")
	queryCmd.Flags().String("regex", "", "regex search over terms")
	queryCmd.Flags().String("rank", "occurrence", `ranking method: "occurrence" or "closeness"`)
	queryCmd.MarkFlagRequired("store")
	queryCmd.MarkFlagRequired("corpus")
}

func runQuery(cmd *cobra.Command, _ []string) error {
	storePath, _ := cmd.Flags().GetString("store")
	corpus, _ := cmd.Flags().GetString("corpus")
	keyword, _ := cmd.Flags().GetString("keyword")
	regex, _ := cmd.Flags().GetString("regex")
	rank, _ := cmd.Flags().GetString("rank")
	logger := newLogger(cmd)

	ranking := gutensearch.RankByOccurrence
	if rank == string(gutensearch.RankByCloseness) {
		ranking = gutensearch.RankByCloseness
	}

	store, err := gutensearch.OpenPebbleStore(storePath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	qc, err := gutensearch.LoadQueryContext(ctx, store, corpus, logger)
	if err != nil {
		return fmt.Errorf("loading query context: %w", err)
	}

	resp := qc.Query(ctx, gutensearch.QueryRequest{Keyword: keyword, Regex: regex, Ranking: ranking})
	printResults("keyword", resp.KeywordResults)
	printResults("regex", resp.RegexResults)
	printSuggestions(resp.Suggestions)
	return nil
}

func printResults(label string, results []gutensearch.Result) {
	fmt.Printf("%s results (%d):\n", label, len(results))
	for _, r := range results {
		if r.Score != 0 {
			fmt.Printf("  %s  %-40s  count=%d  closeness=%.4f\n", r.ID, r.Title, r.Count, r.Score)
		} else {
			fmt.Printf("  %s  %-40s  count=%d\n", r.ID, r.Title, r.Count)
		}
	}
}

func printSuggestions(suggestions []gutensearch.Suggestion) {
	fmt.Printf("suggestions (%d):\n", len(suggestions))
	for _, s := range suggestions {
		fmt.Printf("  %s  %-40s  similarity=%.4f\n", s.ID, s.Title, s.Similarity)
	}
}
