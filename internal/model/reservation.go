package model

import "time"

// Reservation is the durable record of a permanent seat assignment.  One
// row exists per reserved seat, enforced by a uniqueness constraint on
// (event_id, seat_number).  Reservations are created exactly once when a
// live hold is converted and are never mutated afterwards.
//
// Fields:
//  ID         – reservations.id, surrogate key.
//  EventID    – reservations.event_id.
//  SeatNumber – reservations.seat_number.
//  HolderID   – reservations.holder_id.
//  ReservedAt – reservations.reserved_at.
type Reservation struct {
	ID         uint64    `json:"id"`
	EventID    string    `json:"event_id"`
	SeatNumber uint32    `json:"seat_number"`
	HolderID   string    `json:"holder_id"`
	ReservedAt time.Time `json:"reserved_at"`
}
