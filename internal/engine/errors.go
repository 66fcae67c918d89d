// Package engine implements the seat lifecycle engine: the state machine
// governing each seat, per-seat mutual exclusion for hold attempts, lazy
// reconciliation of expired holds and per-holder quota accounting.
package engine

import "errors"

// Business-rule errors. All of these are expected, recoverable-by-caller
// conditions; the handler layer maps them to HTTP status codes and none
// of them should be logged as unexpected failures.
var (
	// ErrEventNotFound is returned when the referenced event does not exist.
	ErrEventNotFound = errors.New("event not found")

	// ErrSeatNotFound is returned when the referenced seat does not exist,
	// either because the event is unknown or the seat number is outside
	// the event's range.
	ErrSeatNotFound = errors.New("seat not found")

	// ErrEventExists is returned when creating an event whose id is taken.
	ErrEventExists = errors.New("event already exists")

	// ErrInvalidSeatCount is returned when an event's total seat count is
	// outside the configured bounds.
	ErrInvalidSeatCount = errors.New("invalid seat count")

	// ErrSeatUnavailable is returned when a hold attempt finds the seat
	// held by someone else or already reserved.
	ErrSeatUnavailable = errors.New("seat unavailable")

	// ErrNotHeld is returned when reserve or refresh is called on a seat
	// that is not currently held.
	ErrNotHeld = errors.New("seat not held")

	// ErrHeldByOther is returned when the live hold on a seat belongs to
	// a different holder than the caller.
	ErrHeldByOther = errors.New("seat held by another holder")

	// ErrHoldExpired is returned when the durable status still says HELD
	// but the backing lease has expired; the seat is released as part of
	// discovering this.
	ErrHoldExpired = errors.New("hold expired")

	// ErrHoldQuotaExceeded is returned when a holder already holds the
	// configured maximum number of seats for an event.
	ErrHoldQuotaExceeded = errors.New("hold quota exceeded")

	// ErrLockContention is returned when the per-seat gate could not be
	// acquired. The engine never queues or retries; callers may retry
	// with their own backoff.
	ErrLockContention = errors.New("seat lock contention")
)

// ErrStoreUnavailable wraps infrastructure faults: the durable store or the
// lease cache is unreachable even after bounded retries. Callers should
// treat it as retryable; it is the only error kind worth alerting on.
var ErrStoreUnavailable = errors.New("store unavailable")
