package commentary

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zalando/go-keyring"

	"github.com/vovakirdan/office-saver/internal/config"
	"github.com/vovakirdan/office-saver/internal/storage"
)

type fakeGenerator struct {
	text    string
	err     error
	block   bool
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.text, f.err
}

func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(5 * time.Second):
		t.Fatal("no line delivered")
		return ""
	}
}

func TestRequestFeedbackWithoutGenerator(t *testing.T) {
	s := NewService(ServiceOptions{})
	ch := s.RequestFeedback(context.Background(), 600, true)

	select {
	case line := <-ch:
		if line != NoClientLine {
			t.Errorf("line = %q, expected %q", line, NoClientLine)
		}
	default:
		t.Fatal("line should be ready immediately")
	}
}

func TestFeedbackOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		gen      *fakeGenerator
		watts    int
		survived bool
		expected string
	}{
		{"generated", &fakeGenerator{text: "  You rock.  "}, 2250, true, "You rock."},
		{"empty", &fakeGenerator{text: " "}, 2250, true, EmptyLine},
		{"error survived", &fakeGenerator{err: errors.New("boom")}, 2250, true, "Amazing reflex! You saved 2250 Watts of pure energy."},
		{"error lost", &fakeGenerator{err: errors.New("boom")}, 375, false, LostLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(ServiceOptions{Generator: tt.gen})
			got := receive(t, s.RequestFeedback(context.Background(), tt.watts, tt.survived))
			if got != tt.expected {
				t.Errorf("line = %q, expected %q", got, tt.expected)
			}
			if len(tt.gen.prompts) != 1 || tt.gen.prompts[0] != Prompt(tt.watts, tt.survived) {
				t.Errorf("prompts = %q", tt.gen.prompts)
			}
		})
	}
}

func TestFeedbackTimeout(t *testing.T) {
	s := NewService(ServiceOptions{
		Generator: &fakeGenerator{block: true},
		Timeout:   20 * time.Millisecond,
	})
	got := receive(t, s.RequestFeedback(context.Background(), 150, false))
	if got != LostLine {
		t.Errorf("line = %q, expected %q", got, LostLine)
	}
}

func TestFeedbackCancelledStillDelivers(t *testing.T) {
	s := NewService(ServiceOptions{Generator: &fakeGenerator{block: true}})
	ctx, cancel := context.WithCancel(context.Background())
	ch := s.RequestFeedback(ctx, 300, false)
	cancel()

	if got := receive(t, ch); got != LostLine {
		t.Errorf("line = %q, expected %q", got, LostLine)
	}
}

func TestFeedbackUsesCache(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "lines.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	gen := &fakeGenerator{text: "Saved the day."}
	s := NewService(ServiceOptions{Generator: gen, Cache: store, Model: "m"})

	if got := s.Feedback(context.Background(), 1500, true); got != "Saved the day." {
		t.Fatalf("line = %q", got)
	}
	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Total != 1 {
		t.Fatalf("cached lines = %d, expected 1", stats.Total)
	}

	// The service goes down: the cached line for the same result comes back.
	gen.text, gen.err = "", errors.New("offline")
	if got := s.Feedback(context.Background(), 1500, true); got != "Saved the day." {
		t.Errorf("line = %q, expected the cached one", got)
	}
	// A different score has nothing cached.
	if got := s.Feedback(context.Background(), 75, true); got != ErrorLine(75, true) {
		t.Errorf("line = %q, expected the error line", got)
	}
}

func TestPrompt(t *testing.T) {
	won := Prompt(2250, true)
	lost := Prompt(300, false)
	if won == lost {
		t.Fatal("prompts should differ by outcome")
	}
	for _, tc := range []struct {
		prompt, want string
	}{
		{won, "I saved 2250 Watts"},
		{lost, "I only saved 300 Watts"},
	} {
		if !strings.Contains(tc.prompt, tc.want) {
			t.Errorf("prompt %q missing %q", tc.prompt, tc.want)
		}
	}
}

func TestResolveAPIKey(t *testing.T) {
	keyring.MockInit()
	store := NewKeyringStore("office-saver-test")

	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvAPIKeyAlt, "")
	if _, _, err := ResolveAPIKey(store); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("ResolveAPIKey() error = %v, expected ErrNoAPIKey", err)
	}

	if err := store.SetAPIKey("from-keyring"); err != nil {
		t.Fatalf("SetAPIKey() failed: %v", err)
	}
	key, source, err := ResolveAPIKey(store)
	if err != nil || key != "from-keyring" || source != "keyring" {
		t.Errorf("ResolveAPIKey() = %q, %q, %v", key, source, err)
	}

	t.Setenv(EnvAPIKeyAlt, "from-alt")
	key, source, _ = ResolveAPIKey(store)
	if key != "from-alt" || source != EnvAPIKeyAlt {
		t.Errorf("ResolveAPIKey() = %q, %q; expected %s to win over keyring", key, source, EnvAPIKeyAlt)
	}

	t.Setenv(EnvAPIKey, "from-env")
	key, source, _ = ResolveAPIKey(store)
	if key != "from-env" || source != EnvAPIKey {
		t.Errorf("ResolveAPIKey() = %q, %q; expected %s first", key, source, EnvAPIKey)
	}

	if err := store.DeleteAPIKey(); err != nil {
		t.Fatalf("DeleteAPIKey() failed: %v", err)
	}
	if err := store.DeleteAPIKey(); err != nil {
		t.Errorf("second DeleteAPIKey() = %v, expected nil", err)
	}
	if _, err := store.GetAPIKey(); !errors.Is(err, keyring.ErrNotFound) {
		t.Errorf("GetAPIKey() after delete = %v, expected ErrNotFound", err)
	}
}

func TestSetEmptyAPIKey(t *testing.T) {
	keyring.MockInit()
	if err := NewKeyringStore("").SetAPIKey("  "); err == nil {
		t.Error("SetAPIKey() with a blank key should fail")
	}
}

func TestFromConfig(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvAPIKeyAlt, "")

	cfg := config.Default().Commentary
	cfg.CachePath = filepath.Join(t.TempDir(), "lines.db")

	s, cleanup := FromConfig(cfg, NewKeyringStore("office-saver-test"), nil)
	defer cleanup()
	if s.gen != nil {
		t.Error("without a key the service should have no generator")
	}

	t.Setenv(EnvAPIKey, "k")
	s, cleanup2 := FromConfig(cfg, nil, nil)
	defer cleanup2()
	if s.gen == nil || s.cache == nil {
		t.Error("with a key the service should have a generator and a cache")
	}

	cfg.Enabled = false
	s, cleanup3 := FromConfig(cfg, nil, nil)
	defer cleanup3()
	if s.gen != nil {
		t.Error("disabled commentary should have no generator")
	}
}
