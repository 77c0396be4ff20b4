package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/office-saver/internal/audio"
	"github.com/vovakirdan/office-saver/internal/games/saver"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the level table",
	Long:  `Shows how long monitors stay on and how fast they appear in each level.`,
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	exitOnError(err)

	fmt.Printf("%s - %d monitors, %d per level, %d hits to pass, %dW per hit\n",
		saver.Title, saver.GridSize, saver.TotalSpawns, saver.RequiredHits, saver.WattsPerClick)
	fmt.Println()

	fmt.Printf("  %-5s  %-8s  %-8s  %s\n", "Level", "Active", "Interval", "Tempo")
	fmt.Printf("  %-5s  %-8s  %-8s  %s\n", "-----", "------", "--------", "-----")
	for i, lc := range saver.Levels {
		level := i + 1
		fmt.Printf("  %-5d  %-8s  %-8s  %d BPM\n",
			level, lc.ActiveDuration, lc.SpawnInterval,
			audio.Tempo(cfg.Audio.BaseBPM, cfg.Audio.BPMStep, level))
	}

	fmt.Println()
	fmt.Printf("Best possible score: %dW\n", saver.MaxLevels*saver.TotalSpawns*saver.WattsPerClick)
}
