// Package service implements the reservation state machine, the event and
// admin aggregate rules, and authentication. All operations validate
// synchronously against the freshest loaded state and perform at most one
// persistence write; validation failures never touch the store.
package service

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by service operations. Handlers map each kind to a
// distinct HTTP status and human-readable message with errors.Is.
var (
	// ErrPermissionDenied means a capability check failed (not the owner,
	// not the main admin).
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidCredential means a password mismatch on a guest or admin
	// action. Guest actions also return this kind when the table is not in
	// the expected state, so a caller cannot probe whether a password guess
	// was close.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrInvalidState means the transition guard rejected the current
	// table state, e.g. reserving an already-reserved table.
	ErrInvalidState = errors.New("invalid state")
	// ErrMalformedInput means a required field was empty or the serial
	// count was wrong.
	ErrMalformedInput = errors.New("malformed input")
	// ErrOutOfRange means a ticket serial fell outside the event's
	// configured bounds. Always wrapped in a RangeError naming the bounds.
	ErrOutOfRange = errors.New("serial out of range")
	// ErrNotFound means a referenced event, table or admin id is absent.
	ErrNotFound = errors.New("not found")
)

// RangeError reports a serial outside the configured range. Its message
// names the bounds so guests can correct their input.
type RangeError struct {
	Serial int
	Min    int
	Max    int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("serial %d outside configured range %d-%d", e.Serial, e.Min, e.Max)
}

// Unwrap makes errors.Is(err, ErrOutOfRange) hold for RangeError values.
func (e *RangeError) Unwrap() error { return ErrOutOfRange }
