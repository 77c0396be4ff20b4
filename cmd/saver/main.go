// saver is a terminal reaction game: switch off office monitors before they
// time out and save the planet one Watt at a time.
//
// Usage:
//
//	saver play               - Play in this terminal
//	saver serve              - Start SSH server for remote play
//	saver levels             - Show the level table
//	saver key set|clear|status - Manage the commentary API key
//	saver lines              - Show cached commentary lines
//	saver config             - Print the default settings file
//
// Global flags:
//
//	--fps <rate>        - Override the tick rate from the settings
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--config <path>     - Use a specific settings file
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/office-saver/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "saver",
	Short: "Office Power Saver - switch off monitors, save the planet",
	Long: `Office Power Saver is a reaction game for the terminal.

Monitors in a 4x3 office grid switch on one by one. Switch each one off
before it times out. Hit 8 of the 10 monitors in a level to move on;
clear three levels to win. Every monitor you catch saves 75 Watts.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  levels   - Show the level table
  key      - Manage the commentary API key
  lines    - Show cached commentary lines
  config   - Print the default settings file

Examples:
  saver play
  saver play --seed 42
  saver serve
  saver key set`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = use settings file)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(linesCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the settings and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.UI.TickRate = flagFPS
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	configSource = source
	return cfg, nil
}

// exitOnError prints err and ends the process. Commands call it only after
// their work function has returned, so deferred cleanups have already run.
func exitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// configSource is where the last loadConfig found the settings.
var configSource string

// newLogger creates a logger at the level given by --log-level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
