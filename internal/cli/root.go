// Package cli implements the gutensearch command-line tool: a build
// subcommand that indexes a corpus and a query subcommand that answers
// keyword/regex searches against the resulting store.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gutensearch",
	Short: "Full-text search over a corpus of Project Gutenberg books",
	Long: `gutensearch indexes a directory of "<id>_<title>.txt" books into an
inverted index plus a lexical-similarity graph, then answers keyword and
regex queries against them, ranked by raw occurrence or by graph
closeness centrality.`,
}

// Execute is the CLI entrypoint.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	debug, _ := cmd.Root().PersistentFlags().GetBool("debug")
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
