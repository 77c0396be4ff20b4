package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/office-saver/internal/core"
)

// Options controls the platform around the game.
type Options struct {
	// ShowHelp reserves the last row for the key help footer.
	ShowHelp bool

	// Mouse enables click input.
	Mouse bool

	// ScreenshotDir is where ctrl+s writes the screen. Empty disables it.
	ScreenshotDir string
}

var (
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	keys       *KeyMapper
	help       help.Model
	spinner    spinner.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	width      int
	height     int
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game. cfg holds the
// full terminal size; the footer row is taken from it when help is shown.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := Model{
		game:       game,
		config:     cfg,
		opts:       opts,
		keys:       NewKeyMapper(),
		help:       help.New(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		inputFrame: core.NewInputFrame(),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
	}
	m.config.ScreenW, m.config.ScreenH = m.gameSize(cfg.ScreenW, cfg.ScreenH)
	m.screen = core.NewScreen(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = cfg.ScreenW

	// Reset here rather than in Init: Init has a value receiver, so the
	// state it sets would be lost.
	game.Reset(m.config)
	m.gameState = game.State()
	return m
}

// gameSize returns the area left to the game for a terminal of w x h.
func (m Model) gameSize(w, h int) (int, int) {
	if m.opts.ShowHelp && h > 1 {
		h--
	}
	return w, h
}

// Init starts the tick loop and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), m.spinner.Tick)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.opts.Mouse {
			m.keys.MapMouseToFrame(msg, &m.inputFrame)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		// Tear down on the update goroutine, the only one touching the game.
		if c, ok := m.game.(Closer); ok {
			c.Close()
		}
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.help.Width = msg.Width

	w, h := m.gameSize(msg.Width, msg.Height)
	m.config.ScreenW = w
	m.config.ScreenH = h
	m.screen.Resize(w, h)

	if r, ok := m.game.(Resizer); ok {
		r.Resize(w, h)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}
	m.game.Render(m.screen)

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.opts.ScreenshotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(m.opts.ScreenshotDir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)

	if footer := m.footer(); footer != "" {
		out += "\n" + footer
	}
	return out
}

// footer is the help line, led by a spinner while the game waits on
// background work.
func (m Model) footer() string {
	if !m.opts.ShowHelp {
		return ""
	}
	var sb strings.Builder
	if m.gameState.Busy {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
	}
	sb.WriteString(m.help.View(m.keys.Keys()))
	return footerStyle.MaxWidth(m.width).Render(sb.String())
}

// GameState returns the state seen at the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given game and blocks until the
// player quits.
func Run(game Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(model, progOpts...)
	_, err := p.Run()

	if c, ok := game.(Closer); ok {
		c.Close()
	}
	return err
}
