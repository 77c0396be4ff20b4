// Package audio turns game cues into terminal sound: the bell for the cues a
// player asked for, and a tempo the HUD pulses to while a level runs.
package audio

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/office-saver/internal/config"
	"github.com/vovakirdan/office-saver/internal/games/saver"
)

const bel = "\a"

// Synth is a saver.Notifier that rings the terminal bell and keeps the
// current music tempo. It is driven from the game loop and is not safe for
// concurrent use.
type Synth struct {
	out     io.Writer
	bell    map[saver.Cue]bool
	baseBPM int
	bpmStep int
	bpm     int
	rings   int
}

// NewSynth creates a synth writing bells to out.
func NewSynth(out io.Writer, cfg config.AudioConfig) *Synth {
	s := &Synth{
		out:     out,
		bell:    make(map[saver.Cue]bool),
		baseBPM: cfg.BaseBPM,
		bpmStep: cfg.BPMStep,
	}
	for _, name := range cfg.Bell {
		if c, ok := saver.ParseCue(name); ok {
			s.bell[c] = true
		}
	}
	return s
}

// Cue rings the bell if the cue is configured to.
func (s *Synth) Cue(c saver.Cue) {
	if !s.bell[c] || s.out == nil {
		return
	}
	//nolint:errcheck // Best-effort, a lost bell is not worth a failure
	io.WriteString(s.out, bel)
	s.rings++
}

// MusicStart sets the tempo for the given level.
func (s *Synth) MusicStart(intensity int) {
	s.bpm = Tempo(s.baseBPM, s.bpmStep, intensity)
}

// MusicStop silences the music.
func (s *Synth) MusicStop() {
	s.bpm = 0
}

// BPM returns the current tempo, or zero while silent.
func (s *Synth) BPM() int {
	return s.bpm
}

// Rings returns how many times the bell rang.
func (s *Synth) Rings() int {
	return s.rings
}

// Tempo returns the BPM for a level: base plus one step per level after the first.
func Tempo(base, step, level int) int {
	if level < 1 {
		level = 1
	}
	return base + (level-1)*step
}

// LogNotifier writes every cue to a logger at debug level.
type LogNotifier struct {
	Logger *log.Logger
}

// Cue logs the cue.
func (n LogNotifier) Cue(c saver.Cue) {
	n.Logger.Debug("cue", "name", c)
}

// MusicStart logs the music change.
func (n LogNotifier) MusicStart(intensity int) {
	n.Logger.Debug("music start", "intensity", intensity)
}

// MusicStop logs the music change.
func (n LogNotifier) MusicStop() {
	n.Logger.Debug("music stop")
}

// Multi fans cues out to several notifiers. It reports the tempo of the
// first one that keeps a beat.
type Multi []saver.Notifier

// Cue forwards to every notifier.
func (m Multi) Cue(c saver.Cue) {
	for _, n := range m {
		n.Cue(c)
	}
}

// MusicStart forwards to every notifier.
func (m Multi) MusicStart(intensity int) {
	for _, n := range m {
		n.MusicStart(intensity)
	}
}

// MusicStop forwards to every notifier.
func (m Multi) MusicStop() {
	for _, n := range m {
		n.MusicStop()
	}
}

// BPM returns the tempo of the first notifier that has one.
func (m Multi) BPM() int {
	for _, n := range m {
		if t, ok := n.(saver.Tempo); ok {
			return t.BPM()
		}
	}
	return 0
}
