package commentary

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/office-saver/internal/storage"
)

// LineCache remembers generated lines so a failed request can reuse one.
type LineCache interface {
	SaveLine(l storage.Line) (int64, error)
	RandomLine(survived bool, watts int) (*storage.Line, error)
}

// ServiceOptions configures a Service.
type ServiceOptions struct {
	// Generator produces the text. Nil means no service is configured and
	// every request is answered with NoClientLine.
	Generator Generator

	// Model is recorded with cached lines.
	Model string

	// Timeout bounds a single request including retries.
	// Defaults to 8 seconds if zero.
	Timeout time.Duration

	// Cache is optional.
	Cache LineCache

	Logger *log.Logger
}

// Service answers the game's flavor text requests in the background.
type Service struct {
	gen     Generator
	model   string
	timeout time.Duration
	cache   LineCache
	logger  *log.Logger
}

// NewService creates a commentary service.
func NewService(opts ServiceOptions) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = 8 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Service{
		gen:     opts.Generator,
		model:   opts.Model,
		timeout: opts.Timeout,
		cache:   opts.Cache,
		logger:  opts.Logger,
	}
}

// RequestFeedback returns at once. The channel receives exactly one line
// within the configured timeout and is buffered, so the sender never blocks.
func (s *Service) RequestFeedback(ctx context.Context, wattsSaved int, survived bool) <-chan string {
	ch := make(chan string, 1)
	if s.gen == nil {
		ch <- NoClientLine
		return ch
	}
	go func() {
		ch <- s.Feedback(ctx, wattsSaved, survived)
	}()
	return ch
}

// Feedback blocks until a line is available.
func (s *Service) Feedback(ctx context.Context, wattsSaved int, survived bool) string {
	if s.gen == nil {
		return NoClientLine
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.gen.Generate(ctx, Prompt(wattsSaved, survived))
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			s.logger.Debug("commentary request cancelled")
		} else {
			s.logger.Warn("commentary request failed", "error", err)
		}
		if line := s.cached(survived, wattsSaved); line != "" {
			return line
		}
		return ErrorLine(wattsSaved, survived)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return EmptyLine
	}
	s.remember(text, wattsSaved, survived)
	return text
}

func (s *Service) cached(survived bool, watts int) string {
	if s.cache == nil {
		return ""
	}
	l, err := s.cache.RandomLine(survived, watts)
	if err != nil {
		s.logger.Warn("line cache lookup failed", "error", err)
		return ""
	}
	if l == nil {
		return ""
	}
	return l.Text
}

func (s *Service) remember(text string, watts int, survived bool) {
	if s.cache == nil {
		return
	}
	line := storage.Line{Survived: survived, Watts: watts, Text: text, Model: s.model}
	if _, err := s.cache.SaveLine(line); err != nil {
		s.logger.Warn("line cache save failed", "error", err)
	}
}
