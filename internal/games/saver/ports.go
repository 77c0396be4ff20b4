package saver

import "context"

// Cue names a cosmetic event for the audio collaborator.
type Cue int

const (
	CueSpawn Cue = iota
	CueHit
	CueMiss
	CueLevelComplete
	CueGameWon
	CueGameLost
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueSpawn:
		return "spawn"
	case CueHit:
		return "hit"
	case CueMiss:
		return "miss"
	case CueLevelComplete:
		return "levelComplete"
	case CueGameWon:
		return "gameWon"
	case CueGameLost:
		return "gameLost"
	default:
		return "unknown"
	}
}

// ParseCue maps a cue name, as written in the settings file, to its value.
func ParseCue(name string) (Cue, bool) {
	for c := CueSpawn; c <= CueGameLost; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}

// Notifier receives fire-and-forget cosmetic events. Implementations must not
// block and must not call back into the session.
type Notifier interface {
	Cue(c Cue)
	MusicStart(intensity int)
	MusicStop()
}

// Tempo is implemented by notifiers that keep a beat the HUD can show.
// BPM returns zero while no music plays.
type Tempo interface {
	BPM() int
}

// Commentary produces flavor text for the end screen.
//
// RequestFeedback must return immediately. The returned channel receives
// exactly one string (generated text or a fallback) within a bounded time,
// and must be buffered so the sender never blocks if nobody reads it. The
// context is cancelled when the result is no longer wanted.
type Commentary interface {
	RequestFeedback(ctx context.Context, wattsSaved int, survived bool) <-chan string
}

// RenderFeed receives a snapshot after every state change.
type RenderFeed interface {
	Render(s Snapshot)
}

// RenderFunc adapts a function to RenderFeed.
type RenderFunc func(Snapshot)

// Render calls f(s).
func (f RenderFunc) Render(s Snapshot) { f(s) }

type nopNotifier struct{}

func (nopNotifier) Cue(Cue)        {}
func (nopNotifier) MusicStart(int) {}
func (nopNotifier) MusicStop()     {}

// FallbackFeedback is shown when no commentary service is configured.
const FallbackFeedback = "Thank you for saving energy! Keep up the good work."

// StaticCommentary always answers with a fixed line.
type StaticCommentary string

// RequestFeedback returns a channel that already holds the line.
func (s StaticCommentary) RequestFeedback(context.Context, int, bool) <-chan string {
	ch := make(chan string, 1)
	ch <- string(s)
	return ch
}
