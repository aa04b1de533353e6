package services_test

import (
	"errors"
	"fmt"
	"testing"

	"ecoacustica/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	err := services.Wrap(services.ErrFileTooLarge, "pipeline", "submit", "payload exceeds ceiling", nil)
	if !errors.Is(err, services.ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge marker, got %v", err)
	}
	want := "file too large: pipeline: submit: payload exceeds ceiling"
	if err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("stat: permission denied")
	err := services.Wrap(services.ErrValidation, "storage", "open", "", cause)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to survive, got %v", err)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("nil marker should default to validation, got %v", err)
	}
}

func TestIsRecoverable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"unsupported media", services.ErrUnsupportedMediaType, true},
		{"too large", services.ErrFileTooLarge, true},
		{"auth failed", services.ErrAuthenticationFailed, true},
		{"not found", services.ErrRecordNotFound, true},
		{"no session", services.ErrNoActiveSession, false},
		{"wrapped no session", services.Wrap(services.ErrNoActiveSession, "history", "add", "", nil), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.IsRecoverable(tc.err); got != tc.want {
				t.Fatalf("IsRecoverable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
