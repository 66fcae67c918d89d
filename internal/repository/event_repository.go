package repository // repository defines data access for events and their seats

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"
	"strings"

	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// EventRepo provides methods to work with events in the database.  Event
// creation also creates the event's entire block of seats, because the
// seat count is immutable and seats must exist before any hold can be
// attempted.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

// Create inserts the event row and bulk-inserts one AVAILABLE seat per
// seat number in [1, TotalSeats], all within a single transaction so a
// half-created event can never be observed.  Returns ErrDuplicate when
// the event id is already taken.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	const insEvent = `INSERT INTO events (id, name, description, total_seats, status, created_at)
	                  VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insEvent,
		ev.ID, ev.Name, ev.Description, ev.TotalSeats, ev.Status,
		ev.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	); err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	// Build the bulk INSERT for the seats.  Each row needs three values;
	// held_at/reserved_at stay NULL until a transition sets them.
	query := `INSERT INTO seats (event_id, seat_number, status) VALUES `
	args := make([]interface{}, 0, int(ev.TotalSeats)*3)
	for n := uint32(1); n <= ev.TotalSeats; n++ {
		if n > 1 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, ev.ID, n, model.SeatStatusAvailable)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID fetches a single event.  Returns ErrNotFound when no event with
// the id exists.
func (r *EventRepo) GetByID(ctx context.Context, eventID string) (*model.Event, error) {
	const q = `SELECT id, name, description, total_seats, status, created_at
	           FROM events WHERE id = ? LIMIT 1`
	var ev model.Event
	err := r.db.QueryRowContext(ctx, q, eventID).Scan(
		&ev.ID, &ev.Name, &ev.Description, &ev.TotalSeats, &ev.Status, &ev.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ev, nil
}

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (code 1062).  Matching on the code in the message avoids importing the
// driver package here.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
