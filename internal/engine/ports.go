package engine

import (
	"context"
	"time"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/queue"
)

// EventStore provides durable access to events. Implemented by
// repository.EventRepo.
type EventStore interface {
	// Create inserts the event and its full block of AVAILABLE seats as
	// one transaction. Returns repository.ErrDuplicate when the id is taken.
	Create(ctx context.Context, ev *model.Event) error
	// GetByID returns repository.ErrNotFound when the event is unknown.
	GetByID(ctx context.Context, eventID string) (*model.Event, error)
}

// SeatStore provides durable access to seat rows. All status transitions
// are conditional updates guarded by the expected current status, which is
// what makes release/reconcile safe without the gate. Implemented by
// repository.SeatRepo.
type SeatStore interface {
	// GetSeat returns repository.ErrNotFound when no such seat exists.
	GetSeat(ctx context.Context, eventID string, seatNumber uint32) (*model.Seat, error)
	// ListSeats returns every seat of the event ordered by seat number.
	ListSeats(ctx context.Context, eventID string) ([]model.Seat, error)
	// MarkHeld transitions AVAILABLE -> HELD. The boolean reports whether
	// a row was actually updated; false means the guard did not match.
	MarkHeld(ctx context.Context, eventID string, seatNumber uint32, holderID string, heldAt time.Time) (bool, error)
	// MarkAvailable transitions HELD -> AVAILABLE, clearing holder and
	// held-at. Idempotent: false with nil error when the seat was not HELD.
	MarkAvailable(ctx context.Context, eventID string, seatNumber uint32) (bool, error)
}

// ReservationStore finalizes holds into permanent reservations.
// Implemented by repository.ReservationRepo.
type ReservationStore interface {
	// CreateFromHold transitions the seat HELD -> RESERVED and inserts the
	// reservation row in a single transaction. Returns
	// repository.ErrConflict when the seat was no longer HELD by the
	// holder, repository.ErrDuplicate when a reservation already exists.
	CreateFromHold(ctx context.Context, eventID string, seatNumber uint32, holderID string, reservedAt time.Time) (*model.Reservation, error)
}

// LeaseStore is the ephemeral side of a hold: the lease entry that carries
// the TTL countdown and the per-holder seat sets backing the quota.
// Implemented by lease.Store.
type LeaseStore interface {
	// PutHold stores the lease under a key whose native TTL matches the
	// hold duration.
	PutHold(ctx context.Context, hold model.Hold, ttl time.Duration) error
	// GetHold returns (nil, nil) when no lease exists, which every caller
	// interprets as expiry.
	GetHold(ctx context.Context, eventID string, seatNumber uint32) (*model.Hold, error)
	DeleteHold(ctx context.Context, eventID string, seatNumber uint32) error
	// RefreshHold rewrites an existing lease with a new expiry and TTL.
	// Returns false when the lease vanished in the meantime.
	RefreshHold(ctx context.Context, hold model.Hold, ttl time.Duration) (bool, error)

	AddHolderSeat(ctx context.Context, eventID, holderID string, seatNumber uint32) error
	RemoveHolderSeat(ctx context.Context, eventID, holderID string, seatNumber uint32) error
	// HolderSeatCount is the cardinality of the holder's seat set for the
	// event; it is the enforced quota value.
	HolderSeatCount(ctx context.Context, eventID, holderID string) (int64, error)
}

// SeatGate serializes hold attempts on a single seat. Acquire must be a
// single atomic set-if-absent with a short TTL; it reports busy via the
// boolean rather than blocking or retrying. Implemented by lease.Gate.
type SeatGate interface {
	Acquire(ctx context.Context, eventID string, seatNumber uint32) (token string, acquired bool, err error)
	// Release deletes the gate key only when the token matches the acquirer.
	Release(ctx context.Context, eventID string, seatNumber uint32, token string) error
}

// Notifier receives post-commit seat change events. The engine calls it
// fire-and-forget and never fails an operation on notifier errors.
// Implemented by the RabbitMQ publisher in internal/service.
type Notifier interface {
	PublishSeatChange(ctx context.Context, ev queue.SeatEvent) error
}
