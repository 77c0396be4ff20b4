package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/saver.yaml
var defaultYAML []byte

// Default returns the built-in settings. It matches defaults/saver.yaml.
func Default() Config {
	return Config{
		UI: UIConfig{
			TickRate: 60,
			ShowHelp: true,
			Mouse:    true,
		},
		Audio: AudioConfig{
			Enabled: true,
			Bell:    []string{"levelComplete", "gameWon", "gameLost"},
			BaseBPM: 110,
			BPMStep: 20,
		},
		Commentary: CommentaryConfig{
			Enabled:    true,
			Model:      "gemini-2.5-flash",
			Endpoint:   "https://generativelanguage.googleapis.com/v1beta",
			Timeout:    8 * time.Second,
			MaxRetries: 2,
			CachePath:  "~/.saver/lines.db",
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default file, comments included.
func DefaultYAML() []byte {
	return defaultYAML
}
