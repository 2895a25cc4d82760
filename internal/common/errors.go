// Package common defines shared constants and sentinel errors used across
// TaskMaster layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Auth errors. ErrorInvalidCredentials carries the single uniform
	// message shown for a missing account and for a wrong password alike.
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorEmailTaken         = errors.New("an account with this email already exists")
	ErrorNotAuthenticated   = errors.New("not authenticated")
	ErrorSessionExpired     = errors.New("session expired")
	ErrInvalidToken         = errors.New("invalid token")

	// Input validation. Field-level messages wrap this sentinel so the
	// boundary can map them to a 400 with errors.Is.
	ErrorValidation = errors.New("validation error")

	// Suggestion collaborator failures degrade gracefully; task state is
	// never affected.
	ErrorSuggestionUnavailable = errors.New("suggestion service unavailable")
)
