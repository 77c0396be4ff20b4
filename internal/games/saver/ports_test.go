package saver

import (
	"context"
	"testing"
)

func TestParseCue(t *testing.T) {
	for c := CueSpawn; c <= CueGameLost; c++ {
		got, ok := ParseCue(c.String())
		if !ok || got != c {
			t.Errorf("ParseCue(%q) = %v,%v", c.String(), got, ok)
		}
	}
	for _, name := range []string{"boom", "", "unknown", "LevelComplete"} {
		if _, ok := ParseCue(name); ok {
			t.Errorf("ParseCue(%q) should fail", name)
		}
	}
}

func TestStaticCommentary(t *testing.T) {
	ch := StaticCommentary("hello").RequestFeedback(context.Background(), 0, false)
	select {
	case s := <-ch:
		if s != "hello" {
			t.Errorf("line = %q, expected hello", s)
		}
	default:
		t.Fatal("line should be ready at once")
	}
}
