// Package saver implements Office Power Saver: monitors switch on at random
// and the player has to switch them off before they time out.
package saver

import "time"

// Game rules.
const (
	GridSize      = 12 // Monitors on the office floor
	MaxLevels     = 3  // Levels to clear for a win
	TotalSpawns   = 10 // Monitors switched on per level
	RequiredHits  = 8  // Hits needed to pass a level
	WattsPerClick = 75 // Score awarded per hit
)

// LevelConfig holds the timing for one level.
type LevelConfig struct {
	ActiveDuration time.Duration // How long a monitor stays on
	SpawnInterval  time.Duration // Time between spawns
}

// Levels lists the built-in difficulty ladder, fastest last.
var Levels = []LevelConfig{
	{ActiveDuration: 1300 * time.Millisecond, SpawnInterval: 900 * time.Millisecond},
	{ActiveDuration: 1000 * time.Millisecond, SpawnInterval: 700 * time.Millisecond},
	{ActiveDuration: 700 * time.Millisecond, SpawnInterval: 500 * time.Millisecond},
}

// ConfigFor returns the config for a 1-based level. Levels past the end of
// the table reuse the last entry.
func ConfigFor(level int) LevelConfig {
	idx := level - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(Levels) {
		idx = len(Levels) - 1
	}
	return Levels[idx]
}
