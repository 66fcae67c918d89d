package model

import "time"

// Seat statuses.  The lifecycle is forward-only: AVAILABLE -> HELD ->
// RESERVED, with HELD falling back to AVAILABLE on release or hold expiry.
// RESERVED is terminal.
const (
	SeatStatusAvailable = "AVAILABLE"
	SeatStatusHeld      = "HELD"
	SeatStatusReserved  = "RESERVED"
)

// Seat represents a row in the `seats` table, keyed by (event_id,
// seat_number).  Exactly one of HeldAt/ReservedAt is set depending on the
// status; HolderID is present only while the seat is HELD or RESERVED.
// Seats are created in bulk when their event is created and are mutated
// exclusively through the engine's transition operations.
//
// Fields:
//  EventID    – seats.event_id.
//  SeatNumber – seats.seat_number, in [1, event.TotalSeats].
//  Status     – seats.status (AVAILABLE, HELD, RESERVED).
//  HolderID   – seats.holder_id (nullable).
//  HeldAt     – seats.held_at (nullable, set iff HELD).
//  ReservedAt – seats.reserved_at (nullable, set iff RESERVED).
type Seat struct {
	EventID    string     `json:"event_id"`
	SeatNumber uint32     `json:"seat_number"`
	Status     string     `json:"status"`
	HolderID   *string    `json:"holder_id,omitempty"`
	HeldAt     *time.Time `json:"held_at,omitempty"`
	ReservedAt *time.Time `json:"reserved_at,omitempty"`
}
