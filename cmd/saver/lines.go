package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/office-saver/internal/storage"
)

var (
	flagLinesLimit int
	flagLinesClear bool
)

var linesCmd = &cobra.Command{
	Use:   "lines",
	Short: "Show cached commentary lines",
	Long: `Display the most recent commentary lines kept in the line cache.
Cached lines are reused when the commentary service cannot be reached.

Examples:
  saver lines
  saver lines --limit 5
  saver lines --clear`,
	Args: cobra.NoArgs,
	Run:  runLines,
}

func init() {
	linesCmd.Flags().IntVar(&flagLinesLimit, "limit", 10, "Number of lines to show")
	linesCmd.Flags().BoolVar(&flagLinesClear, "clear", false, "Remove every cached line")
}

func runLines(_ *cobra.Command, _ []string) {
	exitOnError(showLines(os.Stdout))
}

// showLines prints the cache summary and recent lines, or clears the cache.
func showLines(w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Commentary.CachePath == "" {
		fmt.Fprintln(w, "The line cache is disabled (commentary.cache_path is empty).")
		return nil
	}

	store, err := storage.Open(cfg.Commentary.CachePath)
	if err != nil {
		return fmt.Errorf("opening line cache: %w", err)
	}
	defer store.Close()

	if flagLinesClear {
		if err := store.ClearLines(); err != nil {
			return fmt.Errorf("clearing lines: %w", err)
		}
		fmt.Fprintln(w, "Line cache cleared.")
		return nil
	}

	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}
	lines, err := store.RecentLines(flagLinesLimit)
	if err != nil {
		return fmt.Errorf("retrieving lines: %w", err)
	}

	fmt.Fprintf(w, "Cached lines: %d (%d won, %d lost)\n", stats.Total, stats.Survived, stats.Failed)
	fmt.Fprintln(w)

	if len(lines) == 0 {
		fmt.Fprintln(w, "No lines cached yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-16s  %-4s  %-6s  %s\n", "Date", "Won", "Watts", "Line")
	fmt.Fprintf(w, "  %-16s  %-4s  %-6s  %s\n", "----", "---", "-----", "----")
	for _, l := range lines {
		won := "no"
		if l.Survived {
			won = "yes"
		}
		fmt.Fprintf(w, "  %-16s  %-4s  %-6d  %s\n", l.CreatedAt.Format("2006-01-02 15:04"), won, l.Watts, l.Text)
	}
	return nil
}
