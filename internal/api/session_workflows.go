package api

import (
	"context"
	"log/slog"

	"ecoacustica/internal/config"
	"ecoacustica/internal/session"
)

type LoginRequest struct {
	Config     *config.Config
	Logger     *slog.Logger
	Email      string
	Credential string
}

type LoginResult struct {
	User session.Identity
}

// Login verifies the credentials and persists the resulting session so later
// invocations restore it.
func Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	env, err := openEnvironment(req.Config, req.Logger)
	if err != nil {
		return LoginResult{}, err
	}
	defer env.Close()

	identity, err := env.sessions.Login(ctx, req.Email, req.Credential)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: identity}, nil
}

type LogoutRequest struct {
	Config *config.Config
	Logger *slog.Logger
}

type LogoutResult struct {
	WasActive bool
	User      session.Identity
}

// Logout clears the persisted session. Logging out with no active session is
// not an error.
func Logout(ctx context.Context, req LogoutRequest) (LogoutResult, error) {
	env, err := openEnvironment(req.Config, req.Logger)
	if err != nil {
		return LogoutResult{}, err
	}
	defer env.Close()

	if err := env.restore(ctx); err != nil {
		return LogoutResult{}, err
	}
	identity, active := env.sessions.Active()
	if err := env.sessions.Logout(ctx); err != nil {
		return LogoutResult{}, err
	}
	return LogoutResult{WasActive: active, User: identity}, nil
}

type SessionStatusRequest struct {
	Config *config.Config
	Logger *slog.Logger
}

type SessionStatus struct {
	Active bool
	User   session.Identity
}

// DescribeSession reports the persisted session, if any.
func DescribeSession(ctx context.Context, req SessionStatusRequest) (SessionStatus, error) {
	env, err := openEnvironment(req.Config, req.Logger)
	if err != nil {
		return SessionStatus{}, err
	}
	defer env.Close()

	identity, active, err := env.sessions.Restore(ctx)
	if err != nil {
		return SessionStatus{}, err
	}
	return SessionStatus{Active: active, User: identity}, nil
}
