package saver

import "github.com/vovakirdan/office-saver/internal/core"

// Grid geometry on screen.
const (
	gridCols = 4
	gridRows = 3

	hudHeight    = 3
	footerHeight = 1

	minMonitorW = 9
	minMonitorH = 4

	panelW = 48
	panelH = 11

	// Rows of a panel that are not text: two borders, a blank row on
	// top, a blank row above the button and the button itself.
	panelChrome = 5
)

// Layout places the HUD, the monitor grid and the overlay panel on a screen of
// a given size. Monitor rects are the bezels; the row under each bezel holds
// its key label.
type Layout struct {
	Bounds   core.Rect
	HUD      core.Rect
	Grid     core.Rect
	Footer   core.Rect
	Monitors [GridSize]core.Rect
	Panel    core.Rect
}

// NewLayout computes a layout for a w x h screen.
func NewLayout(w, h int) Layout {
	l := Layout{Bounds: core.NewRect(0, 0, w, h)}
	l.HUD = core.NewRect(0, 0, w, hudHeight)
	l.Footer = core.NewRect(0, core.Max(h-footerHeight, 0), w, footerHeight)
	l.Grid = core.NewRect(0, hudHeight, w, core.Max(h-hudHeight-footerHeight, 0))

	slotW := l.Grid.W / gridCols
	slotH := l.Grid.H / gridRows
	offX := l.Grid.X + (l.Grid.W-slotW*gridCols)/2
	for i := range l.Monitors {
		col, row := i%gridCols, i/gridCols
		x := offX + col*slotW
		y := l.Grid.Y + row*slotH
		// One column of gap on each side, one row below for the label.
		l.Monitors[i] = core.NewRect(x+1, y, core.Max(slotW-2, 0), core.Max(slotH-1, 0))
	}

	l.Panel = l.FitPanel(0)
	return l
}

// FitPanel returns an overlay panel tall enough for rows lines of text,
// never smaller than the default panel and never taller than the screen.
func (l Layout) FitPanel(rows int) core.Rect {
	w, h := l.Bounds.W, l.Bounds.H
	pw := core.Min(panelW, w-2)
	ph := core.Min(core.Max(panelH, rows+panelChrome), h-2)
	return core.NewRect((w-pw)/2, (h-ph)/2, core.Max(pw, 0), core.Max(ph, 0))
}

// Fits reports whether every monitor is large enough to draw.
func (l Layout) Fits() bool {
	m := l.Monitors[0]
	return m.W >= minMonitorW && m.H >= minMonitorH
}

// HitTest returns the monitor under p. Clicks on a monitor's label row count
// as clicks on that monitor.
func (l Layout) HitTest(p core.Point) (int, bool) {
	for i, m := range l.Monitors {
		withLabel := core.NewRect(m.X, m.Y, m.W, m.H+1)
		if withLabel.Contains(p) {
			return i, true
		}
	}
	return 0, false
}

// Button is the clickable row at the bottom of the default overlay panel.
func (l Layout) Button() core.Rect {
	return ButtonIn(l.Panel)
}

// ButtonIn is the clickable row at the bottom of panel.
func ButtonIn(panel core.Rect) core.Rect {
	inner := panel.Inset(1)
	return core.NewRect(inner.X, inner.Bottom()-1, inner.W, 1)
}

// pickKeys are the keyboard labels of the monitors, in id order.
var pickKeys = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "-", "="}

// PickKey returns the key that selects monitor id.
func PickKey(id int) string {
	if id < 0 || id >= len(pickKeys) {
		return ""
	}
	return pickKeys[id]
}

// PickForKey maps a key to the monitor it selects.
func PickForKey(key string) (int, bool) {
	for i, k := range pickKeys {
		if k == key {
			return i, true
		}
	}
	return 0, false
}
