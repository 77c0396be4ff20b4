package commentary

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/office-saver/internal/config"
	"github.com/vovakirdan/office-saver/internal/storage"
)

// FromConfig builds the service described by the settings. A missing API key
// leaves the service without a generator; a cache that cannot be opened is
// skipped. The returned function closes the cache.
func FromConfig(cfg config.CommentaryConfig, keys *KeyringStore, logger *log.Logger) (*Service, func()) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	opts := ServiceOptions{
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
		Logger:  logger,
	}
	cleanup := func() {}

	if !cfg.Enabled {
		return NewService(opts), cleanup
	}

	key, source, err := ResolveAPIKey(keys)
	switch {
	case errors.Is(err, ErrNoAPIKey):
		logger.Warn("no API key found, using fixed commentary",
			"env", EnvAPIKey,
			"hint", "saver key set",
		)
		return NewService(opts), cleanup
	case err != nil:
		logger.Warn("cannot read API key, using fixed commentary", "error", err)
		return NewService(opts), cleanup
	}
	logger.Debug("API key loaded", "source", source)

	opts.Generator = NewClient(ClientConfig{
		Endpoint:   cfg.Endpoint,
		Model:      cfg.Model,
		APIKey:     key,
		MaxRetries: cfg.MaxRetries,
	})

	if cfg.CachePath != "" {
		store, err := storage.Open(cfg.CachePath)
		if err != nil {
			logger.Warn("could not open line cache", "error", err)
		} else {
			opts.Cache = store
			cleanup = func() {
				//nolint:errcheck // Best-effort close on shutdown
				store.Close()
			}
		}
	}

	return NewService(opts), cleanup
}
