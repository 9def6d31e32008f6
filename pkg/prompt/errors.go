package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNotReady is returned when the widget could not bind the library.
	ErrNotReady = errors.New("prompt: widget did not become ready")
)
