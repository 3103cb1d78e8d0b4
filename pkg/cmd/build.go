package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/stork-search/stork/pkg/build"
)

type buildFlags struct {
	ConfigPath string
	OutputPath string
}

// newBuildCmd creates the "build" subcommand: read a TOML/JSON config,
// run the build pipeline, write the serialized index, and report warnings.
func newBuildCmd(flags *cmdFlags) *cobra.Command {
	bFlags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a search index from a document corpus",
		Long:  "Read a build configuration file, run the Reader/Parser/Index-assembler pipeline over its documents, and write a serialized index file.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, flags, bFlags)
		},
	}

	cmd.Flags().StringVar(&bFlags.ConfigPath, "input", "", "path to a TOML or JSON build configuration file (required unless --config is set)")
	cmd.Flags().StringVar(&bFlags.OutputPath, "output", "index.st", "path to write the serialized index to")

	return cmd
}

func runBuild(cmd *cobra.Command, flags *cmdFlags, bFlags *buildFlags) error {
	if err := initLogger(flags); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	configPath := bFlags.ConfigPath
	if configPath == "" {
		configPath = flags.ConfigPath
	}

	if configPath == "" {
		return fmt.Errorf("--input or --config is required")
	}

	cfg, err := loadBuildConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load build config: %w", err)
	}

	reporter := build.NewSlogReporter(slog.Default())

	data, stats, warnings, err := build.Build(cmd.Context(), cfg, reporter)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	for _, w := range warnings {
		slog.Warn("document problem", "document", w.Document, "error", w.Err)
	}

	if err := os.WriteFile(bFlags.OutputPath, data, 0o644); err != nil { //nolint:gosec // index files are not secrets
		return fmt.Errorf("failed to write index file: %w", err)
	}

	slog.Info("build complete",
		"documents", stats.DocumentCount,
		"skipped", stats.SkippedDocuments,
		"words", stats.TotalWordCount,
		"index_bytes", stats.IndexSizeBytes,
		"output", bFlags.OutputPath,
	)

	return nil
}
