package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stork-search/stork/pkg/previewserver"
)

type testFlags struct {
	IndexPath string
	Listen    string
}

// newTestCmd creates the "test" subcommand: start the optional local HTTP
// preview server against a built index,
// for manual smoke-testing.
func newTestCmd(flags *cmdFlags) *cobra.Command {
	tFlags := &testFlags{}

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Serve a built index for manual smoke-testing",
		Long:  "Start a local HTTP server that serves a built index file and answers /query requests against it.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTest(cmd, flags, tFlags)
		},
	}

	cmd.Flags().StringVar(&tFlags.IndexPath, "index", "", "path to a serialized index file (required)")
	cmd.Flags().StringVar(&tFlags.Listen, "listen", ":8080", "address to listen on")

	return cmd
}

func runTest(cmd *cobra.Command, flags *cmdFlags, tFlags *testFlags) error {
	if err := initLogger(flags); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	if tFlags.IndexPath == "" {
		return fmt.Errorf("--index is required")
	}

	data, err := os.ReadFile(tFlags.IndexPath)
	if err != nil {
		return fmt.Errorf("failed to read index file: %w", err)
	}

	srv, err := previewserver.New(previewserver.Config{Listen: tFlags.Listen, IndexPath: tFlags.IndexPath}, data)
	if err != nil {
		return fmt.Errorf("failed to start preview server: %w", err)
	}

	return srv.Run(cmd.Context())
}
