package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed backend interaction.
type Kind string

const (
	// KindAuthentication covers rejected credentials or registration input.
	KindAuthentication Kind = "authentication"
	// KindAuthorization covers 403 responses.
	KindAuthorization Kind = "authorization"
	// KindSessionExpired covers 401 responses to requests that carried a
	// bearer token. Handled once, globally, by the session-expiry observer.
	KindSessionExpired Kind = "session_expired"
	// KindOperation covers any other 4xx/5xx on a specific action.
	KindOperation Kind = "operation_failed"
	// KindNetwork covers transport failures where no response was received.
	KindNetwork Kind = "network"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrSessionExpired     = errors.New("session expired")
	ErrOperationFailed    = errors.New("operation failed")
	ErrNetwork            = errors.New("no response from server")
)

// Error is the single typed error returned by the client. It carries enough
// for callers to branch on kind with errors.Is against the sentinels above.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, zero when no response was received
	Message string // server-provided message when available
	err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.err)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidCredentials:
		return e.Kind == KindAuthentication
	case ErrPermissionDenied:
		return e.Kind == KindAuthorization
	case ErrSessionExpired:
		return e.Kind == KindSessionExpired
	case ErrOperationFailed:
		return e.Kind == KindOperation
	case ErrNetwork:
		return e.Kind == KindNetwork
	}
	return false
}
