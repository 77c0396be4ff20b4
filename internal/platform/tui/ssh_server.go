package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"

	"github.com/vovakirdan/office-saver/internal/audio"
	"github.com/vovakirdan/office-saver/internal/config"
	"github.com/vovakirdan/office-saver/internal/core"
	"github.com/vovakirdan/office-saver/internal/games/saver"
	"github.com/vovakirdan/office-saver/internal/storage"
)

// SSHServer serves the game over SSH. Every connection gets its own game,
// clock and synth; the commentary service is shared.
type SSHServer struct {
	config     config.Config
	server     *ssh.Server
	commentary saver.Commentary
	logger     *log.Logger

	// games holds the running game of each connection until it ends.
	games sync.Map // ssh.Session -> Game
}

// NewSSHServer creates a new SSH server. commentary may be nil, in which case
// every game ends with the fixed line.
func NewSSHServer(cfg config.Config, commentary saver.Commentary, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "saver-ssh",
		})
	}

	srv := &SSHServer{
		config:     cfg,
		commentary: commentary,
		logger:     logger,
	}

	hostKeyPath, err := resolveHostKey(cfg.SSH.HostKey)
	if err != nil {
		return nil, err
	}

	// Ensure host key directory exists
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middlewares run last to first: log, require a terminal, close the game
	// once the program is gone, then play.
	opts := []ssh.Option{
		wish.WithAddress(cfg.SSH.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.SSH.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.closeGameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// resolveHostKey returns the configured path, or ~/.saver/host_key.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		path = config.UserPath("host_key")
		if path == "" {
			return "", fmt.Errorf("cannot get home directory for the host key")
		}
		return path, nil
	}
	return storage.ExpandHome(path)
}

// teaHandler creates a game and a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	id := uuid.NewString()
	logger := s.logger.With("session", id, "user", sess.User())

	game := saver.NewGame(s.sessionOptions(sess, logger))
	s.games.Store(sess, game)

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.UI.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	model := NewModel(game, cfg, Options{
		ShowHelp: s.config.UI.ShowHelp,
		Mouse:    s.config.UI.Mouse,
	})
	logger.Info("game started", "width", cfg.ScreenW, "height", cfg.ScreenH)

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if s.config.UI.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	return model, progOpts
}

// closeGameMiddleware closes the connection's game after the Bubble Tea
// program has returned, whether the player quit or the connection dropped.
// The program's update loop is finished by then, so nothing else touches the
// game.
func (s *SSHServer) closeGameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		next(sess)
		if g, ok := s.games.LoadAndDelete(sess); ok {
			if c, ok := g.(Closer); ok {
				c.Close()
			}
			s.logger.Debug("game closed", "user", sess.User())
		}
	}
}

// sessionOptions wires the collaborators of one connection.
func (s *SSHServer) sessionOptions(sess ssh.Session, logger *log.Logger) saver.Options {
	notifier := audio.Multi{audio.LogNotifier{Logger: logger}}
	if s.config.Audio.Enabled {
		notifier = append(audio.Multi{audio.NewSynth(sess, s.config.Audio)}, notifier...)
	}

	var commentary saver.Commentary = saver.StaticCommentary(saver.FallbackFeedback)
	if s.commentary != nil {
		commentary = boundCommentary{ctx: sess.Context(), next: s.commentary}
	}

	return saver.Options{
		Notifier:   notifier,
		Commentary: commentary,
		Logger:     logger,
	}
}

// boundCommentary cancels requests when the SSH connection goes away, so a
// dropped player does not keep a request running.
type boundCommentary struct {
	ctx  context.Context
	next saver.Commentary
}

// RequestFeedback forwards the request with a context that also ends with the
// connection.
func (b boundCommentary) RequestFeedback(ctx context.Context, wattsSaved int, survived bool) <-chan string {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(b.ctx, cancel)

	in := b.next.RequestFeedback(ctx, wattsSaved, survived)
	if in == nil {
		stop()
		cancel()
		return nil
	}
	out := make(chan string, 1)
	go func() {
		line := <-in
		stop()
		cancel()
		out <- line
	}()
	return out
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.SSH.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.SSH.Address
}
