package saver

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/office-saver/internal/clock"
)

// Scheduler switches monitors on at a fixed interval and arms a timeout for
// each one. Every timer it creates is tagged with the epoch of the round that
// armed it; Stop bumps the epoch, so a late callback from an earlier round is
// dropped instead of touching the current one.
type Scheduler struct {
	clock    clock.Clock
	rng      *rand.Rand
	newToken func() string
	grid     *Grid
	acc      *Accumulator

	// onSpawn runs after a cell was switched on.
	onSpawn func(cellID int)
	// onTimeout runs when a cell's active time ran out while it was still on
	// with the token it was spawned with.
	onTimeout func(cellID int)

	epoch     uint64
	running   bool
	cfg       LevelConfig
	interval  clock.Timer
	timeouts  map[int]clock.Timer
	deadlines map[int]time.Duration
}

// NewScheduler creates a stopped scheduler over the given grid and counters.
func NewScheduler(c clock.Clock, rng *rand.Rand, newToken func() string, grid *Grid, acc *Accumulator) *Scheduler {
	return &Scheduler{
		clock:     c,
		rng:       rng,
		newToken:  newToken,
		grid:      grid,
		acc:       acc,
		onSpawn:   func(int) {},
		onTimeout: func(int) {},
		timeouts:  make(map[int]clock.Timer),
		deadlines: make(map[int]time.Duration),
	}
}

// Start begins spawning with the given level timing. A running scheduler is
// stopped first.
func (s *Scheduler) Start(cfg LevelConfig) {
	s.Stop()
	s.running = true
	s.cfg = cfg
	epoch := s.epoch
	s.interval = s.clock.Every(cfg.SpawnInterval, func() { s.tick(epoch) })
}

// Stop cancels the spawn interval and every pending timeout.
func (s *Scheduler) Stop() {
	s.epoch++
	s.running = false
	if s.interval != nil {
		s.interval.Stop()
		s.interval = nil
	}
	for id, t := range s.timeouts {
		t.Stop()
		delete(s.timeouts, id)
	}
	clear(s.deadlines)
}

// Running reports whether the scheduler is between Start and Stop.
func (s *Scheduler) Running() bool {
	return s.running
}

// Spawning reports whether the spawn interval is still armed.
func (s *Scheduler) Spawning() bool {
	return s.interval != nil
}

// Pending returns the number of timers this scheduler currently holds.
func (s *Scheduler) Pending() int {
	n := len(s.timeouts)
	if s.interval != nil {
		n++
	}
	return n
}

// Disarm cancels the timeout of a cell that was resolved by a hit.
func (s *Scheduler) Disarm(cellID int) {
	if t, ok := s.timeouts[cellID]; ok {
		t.Stop()
		delete(s.timeouts, cellID)
	}
	delete(s.deadlines, cellID)
}

// Remaining returns how long the cell stays on, or zero if no timeout is armed.
func (s *Scheduler) Remaining(cellID int) time.Duration {
	due, ok := s.deadlines[cellID]
	if !ok {
		return 0
	}
	if left := due - s.clock.Now(); left > 0 {
		return left
	}
	return 0
}

// Config returns the timing of the current or last started round.
func (s *Scheduler) Config() LevelConfig {
	return s.cfg
}

func (s *Scheduler) tick(epoch uint64) {
	if epoch != s.epoch || !s.running {
		return
	}
	if s.acc.Counters().Spawned >= TotalSpawns {
		s.stopInterval()
		return
	}

	free := s.grid.Inactive()
	if len(free) == 0 {
		// Every monitor is already on; try again next tick.
		return
	}
	if !s.acc.RecordSpawn() {
		s.stopInterval()
		return
	}

	cell := s.grid.Cell(free[s.rng.Intn(len(free))])
	token := s.newToken()
	cell.activate(token)
	s.arm(cell.ID, token, epoch)

	if s.acc.Counters().Spawned >= TotalSpawns {
		s.stopInterval()
	}
	s.onSpawn(cell.ID)
}

func (s *Scheduler) arm(cellID int, token string, epoch uint64) {
	s.deadlines[cellID] = s.clock.Now() + s.cfg.ActiveDuration
	s.timeouts[cellID] = s.clock.AfterFunc(s.cfg.ActiveDuration, func() {
		s.expire(cellID, token, epoch)
	})
}

func (s *Scheduler) expire(cellID int, token string, epoch uint64) {
	if epoch != s.epoch {
		return
	}
	cell := s.grid.Cell(cellID)
	if cell == nil || !cell.On || cell.Token != token {
		return
	}
	delete(s.timeouts, cellID)
	delete(s.deadlines, cellID)
	s.onTimeout(cellID)
}

func (s *Scheduler) stopInterval() {
	if s.interval != nil {
		s.interval.Stop()
		s.interval = nil
	}
}
