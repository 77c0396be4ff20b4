package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/office-saver/internal/audio"
	"github.com/vovakirdan/office-saver/internal/commentary"
	"github.com/vovakirdan/office-saver/internal/config"
	"github.com/vovakirdan/office-saver/internal/core"
	"github.com/vovakirdan/office-saver/internal/games/saver"
	"github.com/vovakirdan/office-saver/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  1-9, 0, -, =  - Switch off a monitor (row by row)
  Mouse click   - Switch off the clicked monitor
  Enter/Space   - Start, next level, play again
  P/Esc         - Pause
  R             - Restart after the game ended
  ?             - More help
  Q/Ctrl+C      - Quit

Logs go to ~/.saver/saver.log.

Examples:
  saver play
  saver play --seed 42 --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	exitOnError(play())
}

// play runs one local game. Every cleanup is deferred here so it runs before
// the caller decides whether to exit.
func play() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logOut, closeLog := openLogFile()
	defer closeLog()
	logger := newLogger(logOut, "saver")
	logger.Info("settings loaded", "source", configSource)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	svc, closeCache := commentary.FromConfig(cfg.Commentary, commentary.NewKeyringStore(""), logger)
	defer closeCache()

	game := saver.NewGame(saver.Options{
		Notifier:   notifierFor(cfg.Audio, os.Stdout, logger),
		Commentary: svc,
		Logger:     logger,
	})

	runCfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.UI.TickRate,
		Seed:     flagSeed,
	}
	opts := tui.Options{
		ShowHelp:      cfg.UI.ShowHelp,
		Mouse:         cfg.UI.Mouse,
		ScreenshotDir: config.UserPath("screenshots"),
	}

	if err := tui.Run(game, runCfg, opts); err != nil {
		logger.Error("game stopped", "error", err)
		return fmt.Errorf("running game: %w", err)
	}
	logger.Info("bye", "watts", game.Session().Score())
	return nil
}

// notifierFor builds the cue listeners for a terminal writing to out.
func notifierFor(cfg config.AudioConfig, out io.Writer, logger *log.Logger) saver.Notifier {
	notifiers := audio.Multi{audio.LogNotifier{Logger: logger}}
	if cfg.Enabled {
		notifiers = append(audio.Multi{audio.NewSynth(out, cfg)}, notifiers...)
	}
	return notifiers
}

// openLogFile opens ~/.saver/saver.log for appending, or discards logs when
// that is not possible.
func openLogFile() (io.Writer, func()) {
	path := config.UserPath("saver.log")
	if path == "" {
		return io.Discard, func() {}
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(filepath.Dir(path), 0o755)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return io.Discard, func() {}
	}
	return f, func() {
		//nolint:errcheck // Best-effort close on exit
		f.Close()
	}
}
