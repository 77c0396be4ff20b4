package saver

import (
	"time"

	"github.com/vovakirdan/office-saver/internal/clock"
	"github.com/vovakirdan/office-saver/internal/core"
)

// Game identity used by the platform and the CLI.
const (
	ID    = "saver"
	Title = "Office Power Saver"
)

// Game runs a Session on a virtual clock driven by platform ticks. Each Step
// advances the clock by one tick, so pausing the platform freezes every timer.
type Game struct {
	opts    Options
	clock   *clock.Virtual
	session *Session
	cfg     core.RuntimeConfig
	layout  Layout
	paused  bool
	frames  int
}

// NewGame creates a game. opts.Clock and opts.Seed are ignored: each Reset
// builds a fresh virtual clock and takes the seed from the runtime config.
func NewGame(opts Options) *Game {
	g := &Game{opts: opts}
	g.Reset(core.DefaultConfig())
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return Title }

// Reset drops the current session and returns to the menu.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.session != nil {
		g.session.Close()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	g.cfg = cfg
	g.clock = clock.NewVirtual()

	opts := g.opts
	opts.Clock = g.clock
	opts.Seed = cfg.Seed
	g.session = New(opts)

	g.layout = NewLayout(cfg.ScreenW, cfg.ScreenH)
	g.paused = false
	g.frames = 0
}

// Resize recomputes the layout without touching the session.
func (g *Game) Resize(w, h int) {
	g.cfg.ScreenW = w
	g.cfg.ScreenH = h
	g.layout = NewLayout(w, h)
}

// Step applies one frame of input and advances time by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.frames++

	if in.Has(core.ActionPause) {
		g.togglePause()
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionConfirm) {
		g.session.Confirm()
	}
	if in.Has(core.ActionRestart) {
		g.session.Restart()
	}
	for _, p := range in.Clicks {
		g.click(p)
	}
	for _, id := range in.Picks {
		g.session.Click(id)
	}

	g.clock.Advance(g.tick())
	g.session.PollFeedback()

	return core.StepResult{State: g.State()}
}

// State returns the platform summary of the game.
func (g *Game) State() core.GameState {
	status, _ := g.session.Feedback()
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.State().Terminal(),
		Paused:   g.paused,
		Busy:     status == FeedbackPending,
	}
}

// Session exposes the underlying state machine.
func (g *Game) Session() *Session { return g.session }

// Close releases the session's timers and any pending request.
func (g *Game) Close() {
	g.session.Close()
}

func (g *Game) click(p core.Point) {
	if g.session.State() != StatePlaying {
		if g.button().Contains(p) {
			g.session.Confirm()
		}
		return
	}
	if id, ok := g.layout.HitTest(p); ok {
		g.session.Click(id)
	}
}

// button is the clickable row of the panel on screen, sized like Render
// sizes it.
func (g *Game) button() core.Rect {
	ov, ok := g.overlayFor(g.session.Snapshot())
	if !ok {
		return core.Rect{}
	}
	return ButtonIn(g.panelRect(ov))
}

// togglePause only pauses a running round; overlays are already still.
func (g *Game) togglePause() {
	if !g.paused && g.session.State() != StatePlaying {
		return
	}
	g.paused = !g.paused
	if n := g.opts.Notifier; n != nil {
		if g.paused {
			n.MusicStop()
		} else {
			n.MusicStart(g.session.Level())
		}
	}
}

func (g *Game) tick() time.Duration {
	return time.Second / time.Duration(g.cfg.TickRate)
}

func (g *Game) bpm() int {
	if t, ok := g.opts.Notifier.(Tempo); ok {
		return t.BPM()
	}
	return 0
}
