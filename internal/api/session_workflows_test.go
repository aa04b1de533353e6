package api

import (
	"context"
	"errors"
	"testing"

	"ecoacustica/internal/services"
	"ecoacustica/internal/testsupport"
)

func TestLoginPersistsSessionAcrossInvocations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	result, err := Login(ctx, LoginRequest{Config: cfg, Email: "admin@ecoacustica.com", Credential: "password123"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.User.Name != "Dr. María González" {
		t.Fatalf("unexpected identity: %+v", result.User)
	}

	status, err := DescribeSession(ctx, SessionStatusRequest{Config: cfg})
	if err != nil {
		t.Fatalf("DescribeSession returned error: %v", err)
	}
	if !status.Active {
		t.Fatal("expected session to survive store reopen")
	}
	if status.User.Email != "admin@ecoacustica.com" {
		t.Fatalf("restored identity = %+v", status.User)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	_, err := Login(context.Background(), LoginRequest{Config: cfg, Email: "admin@ecoacustica.com", Credential: "wrong"})
	if !errors.Is(err, services.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	if _, err := Login(ctx, LoginRequest{Config: cfg, Email: "researcher@ecoacustica.com", Credential: "research123"}); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	result, err := Logout(ctx, LogoutRequest{Config: cfg})
	if err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if !result.WasActive {
		t.Fatal("expected WasActive after login")
	}

	status, err := DescribeSession(ctx, SessionStatusRequest{Config: cfg})
	if err != nil {
		t.Fatalf("DescribeSession returned error: %v", err)
	}
	if status.Active {
		t.Fatal("expected no active session after logout")
	}
}

func TestLogoutWithoutSessionIsHarmless(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	result, err := Logout(context.Background(), LogoutRequest{Config: cfg})
	if err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if result.WasActive {
		t.Fatal("expected WasActive false with no prior login")
	}
}
