package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// ReservationRepo finalizes holds into permanent reservations.  A
// reservation row is created exactly once per seat, enforced by a unique
// key on (event_id, seat_number); it is never mutated afterwards.  All
// timestamps are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// CreateFromHold performs the reserve commit as one transaction: the seat
// is conditionally moved HELD -> RESERVED for the given holder, then the
// reservation row is inserted.  The status-and-holder guard on the UPDATE
// is what prevents double application without any advisory lock: if the
// seat is no longer HELD by this holder, zero rows change and the call
// fails with ErrConflict.  A violated uniqueness constraint on the insert
// surfaces as ErrDuplicate.
func (r *ReservationRepo) CreateFromHold(ctx context.Context, eventID string, seatNumber uint32, holderID string, reservedAt time.Time) (*model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	ts := reservedAt.UTC().Format("2006-01-02 15:04:05")
	const upd = `UPDATE seats
	             SET status = ?, reserved_at = ?, held_at = NULL
	             WHERE event_id = ? AND seat_number = ? AND status = ? AND holder_id = ?`
	res, err := tx.ExecContext(ctx, upd,
		model.SeatStatusReserved, ts,
		eventID, seatNumber, model.SeatStatusHeld, holderID,
	)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrConflict
	}
	const ins = `INSERT INTO reservations (event_id, seat_number, holder_id, reserved_at)
	             VALUES (?, ?, ?, ?)`
	insRes, err := tx.ExecContext(ctx, ins, eventID, seatNumber, holderID, ts)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	id, err := insRes.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &model.Reservation{
		ID:         uint64(id),
		EventID:    eventID,
		SeatNumber: seatNumber,
		HolderID:   holderID,
		ReservedAt: reservedAt.UTC(),
	}, nil
}

// GetBySeat returns the reservation for a seat, or ErrNotFound when the
// seat has never been reserved.
func (r *ReservationRepo) GetBySeat(ctx context.Context, eventID string, seatNumber uint32) (*model.Reservation, error) {
	const q = `SELECT id, event_id, seat_number, holder_id, reserved_at
	           FROM reservations WHERE event_id = ? AND seat_number = ? LIMIT 1`
	var res model.Reservation
	err := r.db.QueryRowContext(ctx, q, eventID, seatNumber).Scan(
		&res.ID, &res.EventID, &res.SeatNumber, &res.HolderID, &res.ReservedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

// ListByHolder returns all reservations a holder owns for an event,
// ordered by seat number.  Used by the listing endpoint; never by the
// engine's transition paths.
func (r *ReservationRepo) ListByHolder(ctx context.Context, eventID, holderID string) ([]model.Reservation, error) {
	const q = `SELECT id, event_id, seat_number, holder_id, reserved_at
	           FROM reservations WHERE event_id = ? AND holder_id = ?
	           ORDER BY seat_number`
	rows, err := r.db.QueryContext(ctx, q, eventID, holderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.EventID, &res.SeatNumber, &res.HolderID, &res.ReservedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
