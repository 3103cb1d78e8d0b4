package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stork-search/stork/pkg/cmd"
)

// version and appName are overridden at build time via -ldflags.
var (
	version = "dev"
	appName = "stork"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd := cmd.InitCommand(cmd.BuildInfo{Version: version, AppName: appName})

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err) //nolint:forbidigo // CLI error output is intentional
		os.Exit(1)
	}
}
