package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/office-saver/internal/games/saver"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded config = %+v\nexpected %+v", cfg, Default())
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, source, err := LoadWithSource("")
	if err != nil {
		t.Fatalf("LoadWithSource() failed: %v", err)
	}
	if source != "embedded" {
		t.Errorf("source = %q, expected embedded", source)
	}
	if cfg.UI.TickRate != 60 {
		t.Errorf("TickRate = %d, expected 60", cfg.UI.TickRate)
	}
}

func TestLoadUserFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".saver")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("ui:\n  tick_rate: 30\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := LoadWithSource("")
	if err != nil {
		t.Fatalf("LoadWithSource() failed: %v", err)
	}
	if !strings.HasSuffix(source, filepath.Join(".saver", FileName)) {
		t.Errorf("source = %q, expected the user file", source)
	}
	if cfg.UI.TickRate != 30 {
		t.Errorf("TickRate = %d, expected 30", cfg.UI.TickRate)
	}
}

func TestLoadCustomPartial(t *testing.T) {
	path := writeConfig(t, `
audio:
  bell: [hit]
  base_bpm: 90
commentary:
  timeout: 3s
ssh:
  idle_timeout: 5m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(cfg.Audio.Bell) != 1 || cfg.Audio.Bell[0] != "hit" {
		t.Errorf("Bell = %v, expected [hit]", cfg.Audio.Bell)
	}
	if cfg.Audio.BaseBPM != 90 {
		t.Errorf("BaseBPM = %d, expected 90", cfg.Audio.BaseBPM)
	}
	if cfg.Audio.BPMStep != 20 {
		t.Errorf("BPMStep = %d, expected default 20", cfg.Audio.BPMStep)
	}
	if cfg.Commentary.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, expected 3s", cfg.Commentary.Timeout)
	}
	if cfg.Commentary.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q, expected default", cfg.Commentary.Model)
	}
	if cfg.SSH.IdleTimeout != 5*time.Minute {
		t.Errorf("IdleTimeout = %v, expected 5m", cfg.SSH.IdleTimeout)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "ui: [unclosed"},
		{"tick rate", "ui:\n  tick_rate: 0\n"},
		{"unknown cue", "audio:\n  bell: [explosion]\n"},
		{"negative step", "audio:\n  bpm_step: -5\n"},
		{"zero timeout", "commentary:\n  timeout: 0s\n"},
		{"empty address", "ssh:\n  address: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestLoadMissingCustomFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestDisabledCommentarySkipsChecks(t *testing.T) {
	cfg := Default()
	cfg.Commentary.Enabled = false
	cfg.Commentary.Model = ""
	cfg.Commentary.Timeout = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, expected nil when commentary is off", err)
	}
}

func TestEveryCueNameIsValid(t *testing.T) {
	for c := saver.CueSpawn; c <= saver.CueGameLost; c++ {
		cfg := Default()
		cfg.Audio.Bell = []string{c.String()}
		if err := cfg.Validate(); err != nil {
			t.Errorf("bell cue %q rejected: %v", c.String(), err)
		}
	}
}
