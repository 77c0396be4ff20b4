package tui

import "github.com/vovakirdan/office-saver/internal/core"

// Game is what the platform runs. Games contain pure logic with no Bubble Tea
// dependency; the platform handles input mapping, timing and rendering.
type Game interface {
	// ID returns a short identifier used in logs and file names.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes the game for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the platform summary (score, game over, paused, busy).
	State() core.GameState
}

// Resizer is implemented by games that can adapt to a new screen size
// without losing their state. Other games are Reset on resize.
type Resizer interface {
	Resize(w, h int)
}

// Closer is implemented by games holding timers or background work. Close
// must be safe to call more than once.
type Closer interface {
	Close()
}
