package saver

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/office-saver/internal/clock"
)

// State is the phase of a game session.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateLevelComplete
	StateWon
	StateLost
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StateLevelComplete:
		return "LevelComplete"
	case StateWon:
		return "Won"
	case StateLost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the game has ended.
func (s State) Terminal() bool {
	return s == StateWon || s == StateLost
}

// FeedbackStatus tracks the end-screen flavor text.
type FeedbackStatus int

const (
	FeedbackNone FeedbackStatus = iota
	FeedbackPending
	FeedbackReady
)

// Options configures a Session. Clock is required; everything else has a
// usable default.
type Options struct {
	Clock      clock.Clock
	Seed       int64         // RNG seed for cell selection
	NewToken   func() string // Spawn token source, defaults to random UUIDs
	Notifier   Notifier
	Commentary Commentary
	Feed       RenderFeed
	Logger     *log.Logger
}

// Session is the level and game state machine. It owns the grid, the
// counters and the scheduler, and is not safe for concurrent use: every
// method and every clock advance must happen on the same goroutine.
type Session struct {
	state State
	level int

	grid  *Grid
	acc   Accumulator
	sched *Scheduler
	clock clock.Clock

	notifier   Notifier
	commentary Commentary
	feed       RenderFeed
	logger     *log.Logger

	feedbackCh     <-chan string
	feedbackCancel context.CancelFunc
	feedbackStatus FeedbackStatus
	feedback       string
}

// New creates a session in the Menu state.
func New(opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = clock.NewVirtual()
	}
	if opts.NewToken == nil {
		opts.NewToken = uuid.NewString
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Commentary == nil {
		opts.Commentary = StaticCommentary(FallbackFeedback)
	}
	if opts.Feed == nil {
		opts.Feed = RenderFunc(func(Snapshot) {})
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := &Session{
		state:      StateMenu,
		level:      1,
		grid:       NewGrid(),
		clock:      opts.Clock,
		notifier:   opts.Notifier,
		commentary: opts.Commentary,
		feed:       opts.Feed,
		logger:     opts.Logger,
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	s.sched = NewScheduler(opts.Clock, rng, opts.NewToken, s.grid, &s.acc)
	s.sched.onSpawn = s.handleSpawn
	s.sched.onTimeout = s.handleTimeout
	return s
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Level returns the current 1-based level.
func (s *Session) Level() int { return s.level }

// Score returns the Watts saved so far.
func (s *Session) Score() int { return s.acc.Score() }

// Counters returns the current round counters.
func (s *Session) Counters() RoundCounters { return s.acc.Counters() }

// Cells returns a copy of the grid.
func (s *Session) Cells() []Cell { return s.grid.Cells() }

// PendingTimers returns the number of scheduler timers still armed.
func (s *Session) PendingTimers() int { return s.sched.Pending() }

// Start begins a new game from the menu.
func (s *Session) Start() bool {
	if s.state != StateMenu {
		return false
	}
	s.newGame()
	return true
}

// Advance moves from a cleared level to the next one.
func (s *Session) Advance() bool {
	if s.state != StateLevelComplete {
		return false
	}
	s.acc.ResetRound()
	s.beginLevel(s.level + 1)
	return true
}

// Restart begins a new game after a win or loss.
func (s *Session) Restart() bool {
	if !s.state.Terminal() {
		return false
	}
	s.newGame()
	return true
}

// Confirm triggers whatever the primary button does in the current state.
func (s *Session) Confirm() bool {
	switch s.state {
	case StateMenu:
		return s.Start()
	case StateLevelComplete:
		return s.Advance()
	case StateWon, StateLost:
		return s.Restart()
	default:
		return false
	}
}

// Click records a hit on the given monitor. Clicks outside Playing or on a
// monitor that is off are ignored.
func (s *Session) Click(cellID int) bool {
	if s.state != StatePlaying {
		return false
	}
	if !s.acc.RecordHit(s.grid.Cell(cellID)) {
		return false
	}
	s.sched.Disarm(cellID)
	s.notifier.Cue(CueHit)
	s.evaluate()
	s.emit()
	return true
}

// PollFeedback picks up the flavor text if it arrived. It never blocks.
func (s *Session) PollFeedback() bool {
	if !s.pollFeedback() {
		return false
	}
	s.emit()
	return true
}

func (s *Session) pollFeedback() bool {
	if s.feedbackStatus != FeedbackPending {
		return false
	}
	select {
	case text, ok := <-s.feedbackCh:
		if !ok || text == "" {
			text = FallbackFeedback
		}
		s.finishFeedback(text)
		return true
	default:
		return false
	}
}

// Feedback returns the flavor text status and, once ready, the text.
func (s *Session) Feedback() (FeedbackStatus, string) {
	return s.feedbackStatus, s.feedback
}

// Close stops every timer and cancels an outstanding feedback request.
func (s *Session) Close() {
	if s.sched.Running() {
		s.sched.Stop()
		s.notifier.MusicStop()
	}
	s.cancelFeedback()
}

func (s *Session) newGame() {
	s.cancelFeedback()
	s.feedbackStatus = FeedbackNone
	s.feedback = ""
	s.acc.ResetGame()
	s.beginLevel(1)
}

func (s *Session) beginLevel(level int) {
	s.level = level
	s.grid.Reset()
	s.state = StatePlaying
	s.sched.Start(ConfigFor(level))
	s.logger.Debug("level started", "level", level, "interval", ConfigFor(level).SpawnInterval)
	s.notifier.Cue(CueSpawn)
	s.notifier.MusicStart(level)
	s.emit()
}

func (s *Session) handleSpawn(int) {
	s.notifier.Cue(CueSpawn)
	s.emit()
}

func (s *Session) handleTimeout(cellID int) {
	if s.state != StatePlaying {
		return
	}
	if !s.acc.RecordMiss(s.grid.Cell(cellID)) {
		return
	}
	s.notifier.Cue(CueMiss)
	s.evaluate()
	s.emit()
}

// evaluate ends the round once every spawn is resolved.
func (s *Session) evaluate() {
	if !s.acc.Done() {
		return
	}
	s.sched.Stop()
	s.notifier.MusicStop()

	counters := s.acc.Counters()
	switch {
	case !s.acc.Passed():
		s.state = StateLost
		s.notifier.Cue(CueGameLost)
		s.requestFeedback(false)
	case s.level < MaxLevels:
		s.state = StateLevelComplete
		s.notifier.Cue(CueLevelComplete)
	default:
		s.state = StateWon
		s.notifier.Cue(CueGameWon)
		s.requestFeedback(true)
	}
	s.logger.Debug("round over",
		"level", s.level,
		"hits", counters.Hits,
		"misses", counters.Misses,
		"state", s.state,
	)
}

func (s *Session) requestFeedback(survived bool) {
	s.cancelFeedback()
	ctx, cancel := context.WithCancel(context.Background())
	s.feedbackCancel = cancel
	s.feedbackStatus = FeedbackPending
	s.feedback = ""
	s.feedbackCh = s.commentary.RequestFeedback(ctx, s.acc.Score(), survived)
	if s.feedbackCh == nil {
		s.finishFeedback(FallbackFeedback)
		return
	}
	s.pollFeedback()
}

func (s *Session) finishFeedback(text string) {
	s.feedback = text
	s.feedbackStatus = FeedbackReady
	s.feedbackCh = nil
	if s.feedbackCancel != nil {
		s.feedbackCancel()
		s.feedbackCancel = nil
	}
}

func (s *Session) cancelFeedback() {
	if s.feedbackCancel != nil {
		s.feedbackCancel()
		s.feedbackCancel = nil
	}
	s.feedbackCh = nil
	if s.feedbackStatus == FeedbackPending {
		s.feedbackStatus = FeedbackNone
	}
}

func (s *Session) emit() {
	s.feed.Render(s.Snapshot())
}

// CellView is a cell plus the time it has left before timing out.
type CellView struct {
	Cell
	Remaining time.Duration
}

// Snapshot is a read-only copy of everything presentation needs.
type Snapshot struct {
	State          State
	Level          int
	Score          int
	Counters       RoundCounters
	Config         LevelConfig
	Cells          []CellView
	Reachable      bool // Threshold can still be met this round
	FeedbackStatus FeedbackStatus
	Feedback       string
	Now            time.Duration
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	cells := s.grid.Cells()
	views := make([]CellView, len(cells))
	for i, c := range cells {
		views[i] = CellView{Cell: c}
		if c.On {
			views[i].Remaining = s.sched.Remaining(c.ID)
		}
	}
	return Snapshot{
		State:          s.state,
		Level:          s.level,
		Score:          s.acc.Score(),
		Counters:       s.acc.Counters(),
		Config:         ConfigFor(s.level),
		Cells:          views,
		Reachable:      s.acc.Reachable(),
		FeedbackStatus: s.feedbackStatus,
		Feedback:       s.feedback,
		Now:            s.clock.Now(),
	}
}
