// Package repository defines typed access to the "events" and "admins"
// document collections along with sentinel error values reused across
// repositories. These sentinels allow higher layers such as services and
// handlers to distinguish between failure scenarios with errors.Is.
package repository

import "errors"

// ErrEventNotFound is returned when no event document has the given id.
var ErrEventNotFound = errors.New("event not found")

// ErrAdminNotFound is returned when no admin document has the given id.
var ErrAdminNotFound = errors.New("admin not found")

// ErrConflict is returned when a write cannot proceed because of existing
// state, such as creating an admin account with a username that is already
// taken. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
