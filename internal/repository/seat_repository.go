package repository // repository defines data access for seats

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"
	"time"

	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// SeatRepo provides methods to work with seat rows.  Every status
// transition is a conditional UPDATE guarded by the expected current
// status; the affected-row count tells the engine whether it won or lost
// a race.  The repository never deletes seats — they live as long as
// their event.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// GetSeat fetches a single seat by its composite key.  Returns
// ErrNotFound when the event or seat number is unknown.
func (r *SeatRepo) GetSeat(ctx context.Context, eventID string, seatNumber uint32) (*model.Seat, error) {
	const q = `SELECT event_id, seat_number, status, holder_id, held_at, reserved_at
	           FROM seats WHERE event_id = ? AND seat_number = ? LIMIT 1`
	seat, err := scanSeat(r.db.QueryRowContext(ctx, q, eventID, seatNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return seat, nil
}

// ListSeats retrieves all seats of an event ordered by seat number
// ascending.  Ordering in SQL keeps the availability listing
// deterministic without re-sorting in the engine.
func (r *SeatRepo) ListSeats(ctx context.Context, eventID string) ([]model.Seat, error) {
	const q = `SELECT event_id, seat_number, status, holder_id, held_at, reserved_at
	           FROM seats WHERE event_id = ? ORDER BY seat_number`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var seats []model.Seat
	for rows.Next() {
		seat, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		seats = append(seats, *seat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// MarkHeld transitions a seat AVAILABLE -> HELD, recording the holder and
// the held-at timestamp.  The status guard makes the update atomic at the
// storage layer: the boolean is false when the seat was no longer
// AVAILABLE and nothing changed.
func (r *SeatRepo) MarkHeld(ctx context.Context, eventID string, seatNumber uint32, holderID string, heldAt time.Time) (bool, error) {
	const q = `UPDATE seats
	           SET status = ?, holder_id = ?, held_at = ?, reserved_at = NULL
	           WHERE event_id = ? AND seat_number = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q,
		model.SeatStatusHeld, holderID, heldAt.UTC().Format("2006-01-02 15:04:05"),
		eventID, seatNumber, model.SeatStatusAvailable,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkAvailable transitions a seat HELD -> AVAILABLE, clearing the holder
// and held-at fields.  Used by explicit release and by lazy expiry
// reconciliation; the guard keeps both idempotent.
func (r *SeatRepo) MarkAvailable(ctx context.Context, eventID string, seatNumber uint32) (bool, error) {
	const q = `UPDATE seats
	           SET status = ?, holder_id = NULL, held_at = NULL
	           WHERE event_id = ? AND seat_number = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q,
		model.SeatStatusAvailable, eventID, seatNumber, model.SeatStatusHeld,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSeat(row rowScanner) (*model.Seat, error) {
	var seat model.Seat
	var holder sql.NullString
	var heldAt, reservedAt sql.NullTime
	if err := row.Scan(&seat.EventID, &seat.SeatNumber, &seat.Status, &holder, &heldAt, &reservedAt); err != nil {
		return nil, err
	}
	if holder.Valid {
		h := holder.String
		seat.HolderID = &h
	}
	if heldAt.Valid {
		t := heldAt.Time.UTC()
		seat.HeldAt = &t
	}
	if reservedAt.Valid {
		t := reservedAt.Time.UTC()
		seat.ReservedAt = &t
	}
	return &seat, nil
}
