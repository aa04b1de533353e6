package api

import (
	"context"
	"fmt"
	"log/slog"

	"ecoacustica/internal/config"
	"ecoacustica/internal/history"
	"ecoacustica/internal/logging"
	"ecoacustica/internal/session"
	"ecoacustica/internal/storage"
)

// environment bundles the stores a workflow needs for one invocation. The
// backing store holds the process lock for the environment's lifetime.
type environment struct {
	store    *storage.Store
	sessions *session.Store
	history  *history.Store
}

func openEnvironment(cfg *config.Config, logger *slog.Logger) (*environment, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	store, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	sessions := session.NewStore(store, session.NewStaticVerifier(), logger)
	return &environment{
		store:    store,
		sessions: sessions,
		history:  history.NewStore(store, sessions, logger),
	}, nil
}

func (e *environment) Close() error {
	return e.store.Close()
}

func (e *environment) restore(ctx context.Context) error {
	if _, _, err := e.sessions.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	return nil
}
