// Package config provides YAML-based settings loading for the game, its
// collaborators and the SSH server.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/office-saver/internal/games/saver"
)

// Config contains all settings.
type Config struct {
	UI         UIConfig         `yaml:"ui"`
	Audio      AudioConfig      `yaml:"audio"`
	Commentary CommentaryConfig `yaml:"commentary"`
	SSH        SSHConfig        `yaml:"ssh"`
}

// UIConfig defines terminal presentation parameters.
type UIConfig struct {
	TickRate int  `yaml:"tick_rate"`
	ShowHelp bool `yaml:"show_help"`
	Mouse    bool `yaml:"mouse"`
}

// AudioConfig defines the terminal synth.
type AudioConfig struct {
	Enabled bool     `yaml:"enabled"`
	Bell    []string `yaml:"bell"`     // Cue names that ring the terminal bell
	BaseBPM int      `yaml:"base_bpm"` // Tempo of level 1
	BPMStep int      `yaml:"bpm_step"` // Added per level
}

// CommentaryConfig defines the flavor text service.
type CommentaryConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Model      string        `yaml:"model"`
	Endpoint   string        `yaml:"endpoint"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	CachePath  string        `yaml:"cache_path"`
}

// SSHConfig defines the remote play server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if c.UI.TickRate < 1 || c.UI.TickRate > 240 {
		return fmt.Errorf("config: ui.tick_rate must be between 1 and 240, got %d", c.UI.TickRate)
	}
	if c.Audio.BaseBPM <= 0 {
		return fmt.Errorf("config: audio.base_bpm must be positive, got %d", c.Audio.BaseBPM)
	}
	if c.Audio.BPMStep < 0 {
		return fmt.Errorf("config: audio.bpm_step must not be negative, got %d", c.Audio.BPMStep)
	}
	for _, name := range c.Audio.Bell {
		if _, ok := saver.ParseCue(name); !ok {
			return fmt.Errorf("config: audio.bell: unknown cue %q", name)
		}
	}
	if c.Commentary.Enabled {
		if c.Commentary.Model == "" || c.Commentary.Endpoint == "" {
			return fmt.Errorf("config: commentary.model and commentary.endpoint are required when enabled")
		}
		if c.Commentary.Timeout <= 0 {
			return fmt.Errorf("config: commentary.timeout must be positive, got %s", c.Commentary.Timeout)
		}
		if c.Commentary.MaxRetries < 0 {
			return fmt.Errorf("config: commentary.max_retries must not be negative, got %d", c.Commentary.MaxRetries)
		}
	}
	if c.SSH.Address == "" {
		return fmt.Errorf("config: ssh.address is required")
	}
	return nil
}
