package model

import "time"

// Event lifecycle statuses.  Seats can only be held or reserved while the
// event is ACTIVE; status changes are administrative and happen outside
// the seat engine.
const (
	EventStatusActive    = "ACTIVE"
	EventStatusInactive  = "INACTIVE"
	EventStatusCancelled = "CANCELLED"
)

// Event represents a row in the `events` table.  The identifier is an
// opaque token supplied by the caller (typically a UUID generated at the
// HTTP boundary); the engine never generates identifiers itself.  The
// seat count is fixed at creation time and all seats are created in bulk
// alongside the event.
//
// Fields:
//  ID          – events.id, opaque unique token.
//  Name        – events.name, display name.
//  Description – events.description.
//  TotalSeats  – events.total_seats, immutable after creation.
//  Status      – events.status (ACTIVE, INACTIVE, CANCELLED).
//  CreatedAt   – events.created_at.
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TotalSeats  uint32    `json:"total_seats"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
