package control

import "errors"

// Precondition errors
var (
	// ErrNoActiveControl is returned by SetValue, Keydown and Cut when no
	// control is active.
	ErrNoActiveControl = errors.New("no active control")

	// ErrInvalidPayload wraps validation failures of API payloads.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrUnknownControl indicates a control id that is not in any zone.
	ErrUnknownControl = errors.New("unknown control")
)
