package saver

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/vovakirdan/office-saver/internal/core"
)

// faces are the office workers shown on an active monitor.
var faces = []string{
	"(o_o)", "(^_^)", "(-_-)", "(O.O)", "(>_<)",
	"(*_*)", "(@_@)", "(=_=)", "(~_~)", "(^o^)",
	"(._.)", "(0_0)",
}

// faceFor picks a worker for a spawn. The same token always shows the same
// face.
func faceFor(token string) string {
	if token == "" {
		return faces[0]
	}
	h := fnv.New32a()
	h.Write([]byte(token)) //nolint:errcheck // hash.Hash never fails
	return faces[h.Sum32()%uint32(len(faces))]
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if !g.layout.Fits() {
		mid := dst.Height() / 2
		dst.DrawTextCentered(dst.Bounds(), mid-1, "Window too small", core.ColorBrightYellow)
		dst.DrawTextCentered(dst.Bounds(), mid, "Resize to continue", core.ColorGray)
		return
	}

	snap := g.session.Snapshot()
	g.renderHUD(dst, snap)

	flash := snap.State == StateLost && g.flashOn()
	for _, c := range snap.Cells {
		g.renderMonitor(dst, c, snap, flash)
	}
	g.renderFooter(dst, snap)

	if ov, ok := g.overlayFor(snap); ok {
		g.renderPanel(dst, ov)
	}
}

// overlay is the content of a boxed panel drawn over the grid.
type overlay struct {
	border core.Color
	lines  []panelLine
	button string
}

type panelLine struct {
	text  string
	color core.Color
}

// overlayFor returns the panel shown in the current state, if any.
func (g *Game) overlayFor(snap Snapshot) (overlay, bool) {
	switch {
	case snap.State == StateMenu:
		return menuOverlay(), true
	case snap.State == StateLevelComplete:
		return levelCompleteOverlay(snap), true
	case snap.State == StateWon:
		return g.wonOverlay(snap), true
	case snap.State == StateLost:
		return g.lostOverlay(snap), true
	case g.paused:
		return overlay{core.ColorBrightYellow, []panelLine{
			{"PAUSED", core.ColorBrightYellow},
			{"", core.ColorDefault},
			{"The monitors are waiting.", core.ColorWhite},
		}, "[P] Resume"}, true
	}
	return overlay{}, false
}

// panelRect is where an overlay with the given content is drawn.
func (g *Game) panelRect(ov overlay) core.Rect {
	return g.layout.FitPanel(len(ov.lines))
}

// renderHUD draws the status bar: title and score, then round progress.
func (g *Game) renderHUD(dst *core.Screen, snap Snapshot) {
	hud := g.layout.HUD
	dst.DrawText(1, hud.Y, "OFFICE POWER SAVER", core.ColorBrightYellow)
	watts := fmt.Sprintf("%dW saved", snap.Score)
	dst.DrawText(hud.Right()-len(watts)-1, hud.Y, watts, core.ColorBrightGreen)

	c := snap.Counters
	x := 1
	x = drawSeg(dst, x, hud.Y+1, fmt.Sprintf("Level %d/%d", snap.Level, MaxLevels), core.ColorYellow)
	x = drawSeg(dst, x+3, hud.Y+1, "Wave ", core.ColorGray)
	x = drawSeg(dst, x, hud.Y+1, progressBar(c.Spawned, TotalSpawns), core.ColorCyan)
	x = drawSeg(dst, x+1, hud.Y+1, fmt.Sprintf("%d/%d", c.Spawned, TotalSpawns), core.ColorWhite)
	x = drawSeg(dst, x+3, hud.Y+1, "Targets ", core.ColorGray)
	x = drawSeg(dst, x, hud.Y+1, fmt.Sprintf("%d/%d", c.Hits, RequiredHits), targetColor(snap))
	drawSeg(dst, x+3, hud.Y+1, fmt.Sprintf("Misses %d", c.Misses), core.ColorGray)

	if bpm := g.bpm(); bpm > 0 && snap.State == StatePlaying && !g.paused {
		beat := fmt.Sprintf("♪ %d BPM", bpm)
		color := core.ColorDim
		if onBeat(snap.Now, bpm) {
			color = core.ColorBrightCyan
		}
		dst.DrawText(hud.Right()-len([]rune(beat))-1, hud.Y+1, beat, color)
	}

	dst.DrawHLine(0, hud.Y+2, hud.W, '─', core.ColorGray)
}

// targetColor is green once the round is won and red once it can no longer
// be.
func targetColor(snap Snapshot) core.Color {
	switch {
	case snap.Counters.Hits >= RequiredHits:
		return core.ColorBrightGreen
	case !snap.Reachable:
		return core.ColorBrightRed
	default:
		return core.ColorWhite
	}
}

func (g *Game) renderMonitor(dst *core.Screen, v CellView, snap Snapshot, flash bool) {
	r := g.layout.Monitors[v.ID]
	lost := snap.State == StateLost

	bezel := core.ColorGray
	switch {
	case lost && flash:
		bezel = core.ColorBrightRed
	case lost:
		bezel = core.ColorRed
	case v.On:
		bezel = core.ColorBrightCyan
	}
	dst.DrawBox(r, bezel)

	inner := r.Inset(1)
	switch {
	case lost:
		fill, color := '▒', core.ColorRed
		if flash {
			fill, color = '▓', core.ColorBrightRed
		}
		dst.DrawRect(inner, fill, color)
	case v.On:
		if d := snap.Config.ActiveDuration; d > 0 {
			n := int(int64(inner.W) * int64(v.Remaining) / int64(d))
			dst.DrawHLine(inner.X, inner.Y, n, '▀', core.ColorBrightRed)
		}
		dst.DrawTextCentered(inner, inner.Y+core.Max(inner.H/2, 1), faceFor(v.Token), core.ColorBrightWhite)
	}

	led := core.ColorRed
	if v.On || lost {
		led = core.ColorBrightGreen
	}
	dst.SetColor(r.Right()-2, r.Bottom()-1, '•', led)

	label := "[" + PickKey(v.ID) + "]"
	dst.DrawTextCentered(r, r.Bottom(), label, core.ColorGray)
}

func (g *Game) renderFooter(dst *core.Screen, snap Snapshot) {
	text := fmt.Sprintf("Level %d. Target: %d/%d. Speed: %dms.",
		snap.Level, RequiredHits, TotalSpawns, snap.Config.SpawnInterval.Milliseconds())
	dst.DrawTextCentered(g.layout.Footer, g.layout.Footer.Y, text, core.ColorGray)
}

func menuOverlay() overlay {
	return overlay{core.ColorBrightYellow, []panelLine{
		{"OFFICE POWER SAVER", core.ColorBrightYellow},
		{"", core.ColorDefault},
		{"The office left its monitors on!", core.ColorWhite},
		{"Switch them off before they time out.", core.ColorWhite},
		{fmt.Sprintf("Hit %d of %d screens to clear a level.", RequiredHits, TotalSpawns), core.ColorWhite},
		{fmt.Sprintf("%d levels, each one faster.", MaxLevels), core.ColorGray},
	}, "[Enter] Start Shift"}
}

func levelCompleteOverlay(snap Snapshot) overlay {
	next := ConfigFor(snap.Level + 1)
	return overlay{core.ColorBrightGreen, []panelLine{
		{fmt.Sprintf("LEVEL %d CLEARED", snap.Level), core.ColorBrightGreen},
		{"", core.ColorDefault},
		{fmt.Sprintf("Score: %d/%d. System stabilized.", snap.Counters.Hits, TotalSpawns), core.ColorWhite},
		{fmt.Sprintf("%dW saved so far.", snap.Score), core.ColorBrightGreen},
		{fmt.Sprintf("Next: a screen every %dms.", next.SpawnInterval.Milliseconds()), core.ColorGray},
	}, "[Enter] Next Level"}
}

func (g *Game) wonOverlay(snap Snapshot) overlay {
	lines := []panelLine{
		{"PLANET SAVED! MWAH!", core.ColorBrightGreen},
		{"", core.ColorDefault},
		{fmt.Sprintf("You saved %d Watts", snap.Score), core.ColorWhite},
		{"", core.ColorDefault},
	}
	lines = append(lines, g.feedbackLines(snap)...)
	return overlay{core.ColorBrightGreen, lines, "[Enter] Play Again"}
}

func (g *Game) lostOverlay(snap Snapshot) overlay {
	lines := []panelLine{
		{"SYSTEM MELTDOWN...", core.ColorBrightRed},
		{"", core.ColorDefault},
		{fmt.Sprintf("You only hit %d/%d. Need %d to pass.", snap.Counters.Hits, TotalSpawns, RequiredHits), core.ColorWhite},
		{"", core.ColorDefault},
	}
	lines = append(lines, g.feedbackLines(snap)...)
	return overlay{core.ColorBrightRed, lines, "[Enter] Try Again"}
}

func (g *Game) feedbackLines(snap Snapshot) []panelLine {
	switch snap.FeedbackStatus {
	case FeedbackPending:
		dots := strings.Repeat(".", 1+(g.frames/15)%3)
		return []panelLine{{"Transmitting to HQ" + dots, core.ColorCyan}}
	case FeedbackReady:
		width := core.Max(g.layout.Panel.W-6, 10)
		var out []panelLine
		for _, l := range wrap("\""+snap.Feedback+"\"", width) {
			out = append(out, panelLine{l, core.ColorBrightCyan})
		}
		return out
	default:
		return nil
	}
}

// renderPanel draws a boxed overlay with centered lines and a button row.
// The panel grows with its content; when the screen is too short for all of
// it, the last visible line ends with an ellipsis.
func (g *Game) renderPanel(dst *core.Screen, ov overlay) {
	p := g.panelRect(ov)
	dst.DrawRect(p, ' ', core.ColorDefault)
	dst.DrawBox(p, ov.border)

	inner := p.Inset(1)
	btn := ButtonIn(p)
	top := inner.Y + 1
	room := core.Max(btn.Y-1-top, 0)

	lines := ov.lines
	if len(lines) > room {
		lines = append([]panelLine(nil), lines[:room]...)
		if room > 0 {
			last := &lines[room-1]
			last.text = ellipsize(last.text, inner.W)
		}
	}
	for i, l := range lines {
		dst.DrawTextCentered(inner, top+i, l.text, l.color)
	}
	dst.DrawTextCentered(btn, btn.Y, ov.button, core.ColorBrightGreen)
}

// ellipsize marks text as cut short, staying within width runes.
func ellipsize(text string, width int) string {
	r := []rune(text)
	if len(r)+1 > width {
		r = r[:core.Max(width-1, 0)]
	}
	return string(r) + "…"
}

func (g *Game) flashOn() bool {
	period := core.Max(g.cfg.TickRate/4, 1)
	return (g.frames/period)%2 == 0
}

// onBeat reports whether now falls in the first quarter of a beat.
func onBeat(now time.Duration, bpm int) bool {
	phase := (int64(now) * int64(bpm)) % int64(time.Minute)
	return phase < int64(time.Minute)/4
}

func progressBar(n, total int) string {
	n = core.Clamp(n, 0, total)
	return strings.Repeat("■", n) + strings.Repeat("·", total-n)
}

func drawSeg(dst *core.Screen, x, y int, text string, c core.Color) int {
	dst.DrawText(x, y, text, c)
	return x + len([]rune(text))
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	n := 0
	for _, word := range strings.Fields(text) {
		wl := len([]rune(word))
		if n > 0 && n+1+wl > width {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(word)
		n += wl
	}
	if n > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
