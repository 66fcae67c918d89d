// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// engine to distinguish between different failure scenarios without
// depending on driver-specific error codes. For example, ErrDuplicate
// signals a violated uniqueness constraint (an event id or a
// reservation that already exists), while ErrConflict signals a
// conditional update whose status guard did not match.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist. The
// engine translates this into its own not-found errors so the
// boundary layer can respond with HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint, such as creating an event with an id that is already
// taken or reserving a seat that already has a reservation row.
var ErrDuplicate = errors.New("duplicate")

// ErrConflict is returned when a conditional update affects no rows
// because the seat was not in the expected status. This is how the
// storage layer reports a lost race to the engine.
var ErrConflict = errors.New("conflict")
