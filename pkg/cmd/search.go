package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stork-search/stork/pkg/search"
)

type searchFlags struct {
	IndexPath string
	Query     string
}

// newSearchCmd creates the "search" subcommand: load an index file, run one
// query against it, and print the SearchOutput JSON schema.
func newSearchCmd(flags *cmdFlags) *cobra.Command {
	sFlags := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Query a built search index",
		Long:  "Parse a serialized index file and run a single query against it, printing the result as JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(flags, sFlags)
		},
	}

	cmd.Flags().StringVar(&sFlags.IndexPath, "index", "", "path to a serialized index file (required)")
	cmd.Flags().StringVar(&sFlags.Query, "query", "", "query string (required)")

	return cmd
}

func runSearch(flags *cmdFlags, sFlags *searchFlags) error {
	if err := initLogger(flags); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	if sFlags.IndexPath == "" || sFlags.Query == "" {
		return fmt.Errorf("--index and --query are required")
	}

	data, err := os.ReadFile(sFlags.IndexPath)
	if err != nil {
		return fmt.Errorf("failed to read index file: %w", err)
	}

	idx, err := search.ParseIndex(data)
	if err != nil {
		return fmt.Errorf("failed to parse index: %w", err)
	}

	output := search.Search(idx, sFlags.Query)

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode search output: %w", err)
	}

	fmt.Println(string(encoded)) //nolint:forbidigo // CLI output is intentional

	return nil
}
