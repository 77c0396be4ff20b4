package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/office-saver/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default settings file",
	Long: `Print the built-in settings file. Save it as ~/.saver/saver.yaml to
customize the game, or pass it with --config.

Examples:
  saver config > ~/.saver/saver.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	if _, err := os.Stdout.Write(config.DefaultYAML()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if path := config.UserPath(config.FileName); path != "" {
		fmt.Fprintf(os.Stderr, "# user settings path: %s\n", path)
	}
}
