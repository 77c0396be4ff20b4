package saver

// RoundCounters tracks the outcome of the current level.
// Invariant: Hits+Misses <= Spawned <= TotalSpawns.
type RoundCounters struct {
	Spawned int
	Hits    int
	Misses  int
}

// Resolved returns the number of spawns already decided.
func (c RoundCounters) Resolved() int {
	return c.Hits + c.Misses
}

// Accumulator is the only place counters and score change.
type Accumulator struct {
	counters RoundCounters
	score    int
}

// Counters returns the current round counters.
func (a *Accumulator) Counters() RoundCounters {
	return a.counters
}

// Score returns the total score for the game.
func (a *Accumulator) Score() int {
	return a.score
}

// ResetRound clears the round counters. Score is kept.
func (a *Accumulator) ResetRound() {
	a.counters = RoundCounters{}
}

// ResetGame clears counters and score.
func (a *Accumulator) ResetGame() {
	a.counters = RoundCounters{}
	a.score = 0
}

// RecordSpawn consumes one unit of the spawn budget.
// Returns false once the budget is spent.
func (a *Accumulator) RecordSpawn() bool {
	if a.counters.Spawned >= TotalSpawns {
		return false
	}
	a.counters.Spawned++
	return true
}

// RecordHit switches the cell off and scores it. Cells that are already off
// are ignored.
func (a *Accumulator) RecordHit(c *Cell) bool {
	if c == nil || !c.On {
		return false
	}
	c.deactivate()
	a.counters.Hits++
	a.score += WattsPerClick
	return true
}

// RecordMiss switches the cell off and counts a miss. Cells that are already
// off are ignored.
func (a *Accumulator) RecordMiss(c *Cell) bool {
	if c == nil || !c.On {
		return false
	}
	c.deactivate()
	a.counters.Misses++
	return true
}

// Done reports whether every spawn of the level was issued and resolved.
func (a *Accumulator) Done() bool {
	return a.counters.Spawned == TotalSpawns && a.counters.Resolved() == TotalSpawns
}

// Passed reports whether the round reached the hit threshold.
func (a *Accumulator) Passed() bool {
	return a.counters.Hits >= RequiredHits
}

// Reachable reports whether the threshold can still be met with the spawns
// that are not yet resolved.
func (a *Accumulator) Reachable() bool {
	return a.counters.Hits+(TotalSpawns-a.counters.Resolved()) >= RequiredHits
}
