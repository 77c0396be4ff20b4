package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/office-saver/internal/core"
	"github.com/vovakirdan/office-saver/internal/games/saver"
)

// KeyMap defines the game's key bindings. It implements help.KeyMap for the
// footer.
type KeyMap struct {
	Monitor key.Binding
	Confirm key.Binding
	Pause   key.Binding
	Restart key.Binding
	Quit    key.Binding
}

// ShortHelp returns bindings for the one-line footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Monitor, k.Confirm, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Monitor},
		{k.Confirm, k.Pause},
		{k.Restart, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	monitors := make([]string, saver.GridSize)
	for i := range monitors {
		monitors[i] = saver.PickKey(i)
	}
	return KeyMap{
		Monitor: key.NewBinding(
			key.WithKeys(monitors...),
			key.WithHelp("1-0,-,=", "switch off"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start/next"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea messages to input frames.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return true
	case key.Matches(msg, km.keys.Monitor):
		if id, ok := saver.PickForKey(msg.String()); ok {
			frame.Pick(id)
		}
	case key.Matches(msg, km.keys.Confirm):
		frame.Set(core.ActionConfirm)
	case key.Matches(msg, km.keys.Pause):
		frame.Set(core.ActionPause)
	case key.Matches(msg, km.keys.Restart):
		frame.Set(core.ActionRestart)
	}
	return false
}

// MapMouseToFrame records left button presses as clicks.
// Returns true if the message was a click.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) bool {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	frame.Click(core.Point{X: msg.X, Y: msg.Y})
	return true
}
