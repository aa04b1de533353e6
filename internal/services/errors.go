package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedMediaType marks submissions whose declared media type is
	// not accepted by the pipeline mode.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	// ErrFileTooLarge marks submissions exceeding the upload size ceiling.
	ErrFileTooLarge = errors.New("file too large")
	// ErrAuthenticationFailed marks login attempts with no matching credential.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrRecordNotFound marks lookups for record IDs absent from the collection.
	ErrRecordNotFound = errors.New("record not found")
	// ErrNoActiveSession marks record operations attempted without a logged-in
	// identity. This indicates an integration error, not normal user input.
	ErrNoActiveSession = errors.New("no active session")
	// ErrValidation marks malformed caller input outside the dedicated kinds above.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsRecoverable reports whether an error represents a normal, user-recoverable
// failure rather than an integration bug. Everything except ErrNoActiveSession
// is recoverable by the caller.
func IsRecoverable(err error) bool {
	return err != nil && !errors.Is(err, ErrNoActiveSession)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
