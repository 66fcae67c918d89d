// Package queue defines message payloads exchanged over the message broker.
package queue

// Seat change kinds. Each successful engine transition publishes exactly
// one of these; the set is closed so consumers can switch exhaustively.
const (
	KindSeatHeld     = "seat.held"
	KindSeatReserved = "seat.reserved"
	KindSeatReleased = "seat.released"
)

// SeatEvent is published after each committed seat transition. It contains
// enough information for downstream consumers to log, notify, or trigger
// analytics without querying the primary database. HolderID is nil for
// releases triggered by expiry reconciliation, where no caller identity is
// involved.
type SeatEvent struct {
	Kind       string  `json:"kind"`
	EventID    string  `json:"event_id"`
	SeatNumber uint32  `json:"seat_number"`
	NewStatus  string  `json:"new_status"`
	HolderID   *string `json:"holder_id,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}
