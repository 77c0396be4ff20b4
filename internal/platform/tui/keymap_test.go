package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/office-saver/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKeyToFrameActions(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
	}{
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionConfirm},
		{"p", runeKey('p'), core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"r", runeKey('r'), core.ActionRestart},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			if km.MapKeyToFrame(tt.msg, &frame) {
				t.Fatal("key should not quit")
			}
			if !frame.Has(tt.action) {
				t.Errorf("frame missing %v after %q", tt.action, tt.msg.String())
			}
		})
	}
}

func TestMapKeyToFramePicks(t *testing.T) {
	tests := []struct {
		key rune
		id  int
	}{
		{'1', 0},
		{'9', 8},
		{'0', 9},
		{'-', 10},
		{'=', 11},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		frame := core.NewInputFrame()
		km.MapKeyToFrame(runeKey(tt.key), &frame)
		if len(frame.Picks) != 1 || frame.Picks[0] != tt.id {
			t.Errorf("key %q picks = %v, expected [%d]", tt.key, frame.Picks, tt.id)
		}
	}
}

func TestMapKeyToFrameQuit(t *testing.T) {
	km := NewKeyMapper()
	for _, msg := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}} {
		frame := core.NewInputFrame()
		if !km.MapKeyToFrame(msg, &frame) {
			t.Errorf("%q should quit", msg.String())
		}
		if !frame.Empty() {
			t.Errorf("quit key should not touch the frame")
		}
	}
}

func TestMapKeyToFrameIgnoresOthers(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()
	km.MapKeyToFrame(runeKey('x'), &frame)
	if !frame.Empty() {
		t.Errorf("unbound key changed the frame: %+v", frame)
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()

	frame := core.NewInputFrame()
	press := tea.MouseMsg{X: 7, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if !km.MapMouseToFrame(press, &frame) {
		t.Fatal("left press should be a click")
	}
	if len(frame.Clicks) != 1 || frame.Clicks[0] != (core.Point{X: 7, Y: 4}) {
		t.Errorf("clicks = %v", frame.Clicks)
	}

	others := []tea.MouseMsg{
		{X: 1, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
		{X: 1, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone},
		{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight},
	}
	for _, msg := range others {
		frame.Clear()
		if km.MapMouseToFrame(msg, &frame) || !frame.Empty() {
			t.Errorf("%v should be ignored", msg)
		}
	}
}

func TestKeyMapHelp(t *testing.T) {
	k := DefaultKeyMap()
	if len(k.ShortHelp()) != 5 {
		t.Errorf("ShortHelp() = %d bindings, expected 5", len(k.ShortHelp()))
	}
	n := 0
	for _, col := range k.FullHelp() {
		n += len(col)
	}
	if n != 5 {
		t.Errorf("FullHelp() = %d bindings, expected 5", n)
	}
}
