package saver

import "testing"

func TestRecordSpawnBudget(t *testing.T) {
	var a Accumulator
	for i := 0; i < TotalSpawns; i++ {
		if !a.RecordSpawn() {
			t.Fatalf("RecordSpawn() #%d = false, expected true", i+1)
		}
	}
	if a.RecordSpawn() {
		t.Error("RecordSpawn() past the budget should fail")
	}
	if a.Counters().Spawned != TotalSpawns {
		t.Errorf("Spawned = %d, expected %d", a.Counters().Spawned, TotalSpawns)
	}
}

func TestRecordHitAndMiss(t *testing.T) {
	var a Accumulator
	g := NewGrid()

	tests := []struct {
		name      string
		on        bool
		hit       bool
		expectOK  bool
		expectHit int
		expectMis int
	}{
		{"hit on active", true, true, true, 1, 0},
		{"hit on inactive", false, true, false, 1, 0},
		{"miss on active", true, false, true, 1, 1},
		{"miss on inactive", false, false, false, 1, 1},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := g.Cell(i)
			if tt.on {
				a.RecordSpawn()
				c.activate("tok")
			}
			var ok bool
			if tt.hit {
				ok = a.RecordHit(c)
			} else {
				ok = a.RecordMiss(c)
			}
			if ok != tt.expectOK {
				t.Errorf("ok = %v, expected %v", ok, tt.expectOK)
			}
			if c.On || c.Token != "" {
				t.Errorf("cell = %+v, expected off", *c)
			}
			got := a.Counters()
			if got.Hits != tt.expectHit || got.Misses != tt.expectMis {
				t.Errorf("counters = %+v, expected hits=%d misses=%d", got, tt.expectHit, tt.expectMis)
			}
		})
	}

	if a.Score() != WattsPerClick {
		t.Errorf("Score() = %d, expected %d", a.Score(), WattsPerClick)
	}
	if a.RecordHit(nil) || a.RecordMiss(nil) {
		t.Error("nil cell should be ignored")
	}
}

func TestOutcomeRules(t *testing.T) {
	tests := []struct {
		name      string
		c         RoundCounters
		done      bool
		passed    bool
		reachable bool
	}{
		{"fresh", RoundCounters{}, false, false, true},
		{"exact threshold", RoundCounters{Spawned: 10, Hits: 8, Misses: 2}, true, true, true},
		{"one short", RoundCounters{Spawned: 10, Hits: 7, Misses: 3}, true, false, false},
		{"perfect", RoundCounters{Spawned: 10, Hits: 10}, true, true, true},
		{"spawned but unresolved", RoundCounters{Spawned: 10, Hits: 5, Misses: 2}, false, false, true},
		{"doomed early", RoundCounters{Spawned: 4, Hits: 1, Misses: 3}, false, false, false},
		{"two misses still fine", RoundCounters{Spawned: 2, Misses: 2}, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Accumulator{counters: tt.c}
			if a.Done() != tt.done {
				t.Errorf("Done() = %v, expected %v", a.Done(), tt.done)
			}
			if a.Passed() != tt.passed {
				t.Errorf("Passed() = %v, expected %v", a.Passed(), tt.passed)
			}
			if a.Reachable() != tt.reachable {
				t.Errorf("Reachable() = %v, expected %v", a.Reachable(), tt.reachable)
			}
		})
	}
}

func TestResets(t *testing.T) {
	a := Accumulator{counters: RoundCounters{Spawned: 3, Hits: 2, Misses: 1}, score: 150}

	a.ResetRound()
	if a.Counters() != (RoundCounters{}) || a.Score() != 150 {
		t.Errorf("after ResetRound: %+v score=%d", a.Counters(), a.Score())
	}

	a.ResetGame()
	if a.Score() != 0 {
		t.Errorf("after ResetGame: score=%d", a.Score())
	}
}

func TestConfigFor(t *testing.T) {
	tests := []struct {
		level    int
		expected LevelConfig
	}{
		{0, Levels[0]},
		{1, Levels[0]},
		{2, Levels[1]},
		{3, Levels[2]},
		{9, Levels[2]},
	}
	for _, tt := range tests {
		if got := ConfigFor(tt.level); got != tt.expected {
			t.Errorf("ConfigFor(%d) = %+v, expected %+v", tt.level, got, tt.expected)
		}
	}
	for i := 1; i < len(Levels); i++ {
		if Levels[i].SpawnInterval >= Levels[i-1].SpawnInterval {
			t.Errorf("level %d is not faster than level %d", i+1, i)
		}
	}
}

func TestGrid(t *testing.T) {
	g := NewGrid()
	if len(g.Inactive()) != GridSize {
		t.Fatalf("Inactive() = %d cells, expected %d", len(g.Inactive()), GridSize)
	}
	g.Cell(3).activate("a")
	g.Cell(7).activate("b")
	if g.ActiveCount() != 2 {
		t.Errorf("ActiveCount() = %d, expected 2", g.ActiveCount())
	}
	for _, id := range g.Inactive() {
		if id == 3 || id == 7 {
			t.Errorf("Inactive() contains active cell %d", id)
		}
	}
	if g.Cell(-1) != nil || g.Cell(GridSize) != nil {
		t.Error("out-of-range Cell() should be nil")
	}

	cells := g.Cells()
	cells[3].On = false
	if !g.Cell(3).On {
		t.Error("Cells() should return a copy")
	}

	g.Reset()
	if g.ActiveCount() != 0 || g.Cell(3).Token != "" {
		t.Error("Reset() should switch every cell off")
	}
}
