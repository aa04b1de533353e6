package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"ecoacustica/internal/logging"
	"ecoacustica/internal/storage"
)

// persistedSession is the stored shape of an active session. Field names match
// the history storage format so existing data restores cleanly.
type persistedSession struct {
	User Identity `json:"user"`
}

// Store tracks the active identity and its durable session entry. At most one
// identity is active at a time.
type Store struct {
	storage  *storage.Store
	verifier Verifier
	logger   *slog.Logger

	mu     sync.RWMutex
	active *Identity
}

// NewStore constructs a session store over the given storage and verifier.
func NewStore(store *storage.Store, verifier Verifier, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{
		storage:  store,
		verifier: verifier,
		logger:   logging.WithComponent(logger, "session"),
	}
}

// Restore re-establishes a persisted session from durable storage, if one
// exists. Call once at startup before any record operation.
func (s *Store) Restore(ctx context.Context) (Identity, bool, error) {
	var persisted persistedSession
	ok, err := s.storage.GetJSON(ctx, storage.AuthKey, &persisted)
	if err != nil {
		return Identity{}, false, fmt.Errorf("restore session: %w", err)
	}
	if !ok || persisted.User.ID == "" {
		return Identity{}, false, nil
	}

	s.mu.Lock()
	identity := persisted.User
	s.active = &identity
	s.mu.Unlock()

	s.logger.Debug("session restored", logging.String("user", identity.ID))
	return identity, true, nil
}

// Login verifies the credential, establishes the active identity, and persists
// the session. A failed verification leaves any existing session untouched.
func (s *Store) Login(ctx context.Context, email, credential string) (Identity, error) {
	identity, err := s.verifier.Verify(email, credential)
	if err != nil {
		return Identity{}, err
	}

	if err := s.storage.PutJSON(ctx, storage.AuthKey, persistedSession{User: identity}); err != nil {
		return Identity{}, fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	active := identity
	s.active = &active
	s.mu.Unlock()

	s.logger.Info("logged in", logging.String("user", identity.ID), logging.String("role", identity.Role))
	return identity, nil
}

// Logout clears the active identity and removes the durable session entry.
// Stored collections are untouched. Logging out with no session is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	hadSession := s.active != nil
	var userID string
	if hadSession {
		userID = s.active.ID
	}
	s.active = nil
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, storage.AuthKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if hadSession {
		s.logger.Info("logged out", logging.String("user", userID))
	}
	return nil
}

// Active returns the current identity, if any.
func (s *Store) Active() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return Identity{}, false
	}
	return *s.active, true
}
