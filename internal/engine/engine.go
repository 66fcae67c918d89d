package engine

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/iliyamo/event-seat-reservation/internal/model"
	"github.com/iliyamo/event-seat-reservation/internal/queue"
	"github.com/iliyamo/event-seat-reservation/internal/repository"
)

// Options configures the engine's limits. Zero values are replaced with
// the defaults below at construction time.
type Options struct {
	MinSeats          uint32        // lowest total_seats accepted for a new event
	MaxSeats          uint32        // highest total_seats accepted for a new event
	MaxHoldsPerHolder int           // per-(holder,event) concurrent hold quota
	DefaultHoldTTL    time.Duration // applied when a request omits the duration
	MaxHoldTTL        time.Duration // requested durations are clamped to this
}

const (
	defaultMinSeats       = 10
	defaultMaxSeats       = 1000
	defaultMaxHolds       = 6
	defaultHoldTTL        = 5 * time.Minute
	defaultMaxHoldTTL     = 15 * time.Minute
	storeRetryAttempts    = 3
	storeRetryDelay       = 50 * time.Millisecond
	notifyPublishDeadline = 5 * time.Second
)

// Engine orchestrates the durable seat store and the lease cache as one
// logical unit. The durable store is authoritative for whether a seat is
// available, held or reserved; the lease cache is authoritative only for
// whether a specific hold is still alive. Every mutating operation writes
// the durable store first; a lease write that fails afterwards leaves the
// seat looking held with no lease, which is indistinguishable from an
// ordinary expiry and heals through the lazy reconciliation performed on
// every read or write path that observes a HELD seat.
//
// All dependencies are injected at construction time; the engine keeps no
// in-process seat state between calls.
type Engine struct {
	events       EventStore
	seats        SeatStore
	reservations ReservationStore
	leases       LeaseStore
	gate         SeatGate
	notifier     Notifier
	opts         Options
	now          func() time.Time
}

// New constructs an Engine. events, seats, reservations, leases and gate
// must be non-nil; notifier may be nil, in which case change events are
// silently dropped.
func New(events EventStore, seats SeatStore, reservations ReservationStore, leases LeaseStore, gate SeatGate, notifier Notifier, opts Options) *Engine {
	if events == nil || seats == nil || reservations == nil || leases == nil || gate == nil {
		panic("nil dependency passed to engine.New")
	}
	if opts.MinSeats == 0 {
		opts.MinSeats = defaultMinSeats
	}
	if opts.MaxSeats == 0 {
		opts.MaxSeats = defaultMaxSeats
	}
	if opts.MaxHoldsPerHolder <= 0 {
		opts.MaxHoldsPerHolder = defaultMaxHolds
	}
	if opts.DefaultHoldTTL <= 0 {
		opts.DefaultHoldTTL = defaultHoldTTL
	}
	if opts.MaxHoldTTL <= 0 {
		opts.MaxHoldTTL = defaultMaxHoldTTL
	}
	return &Engine{
		events:       events,
		seats:        seats,
		reservations: reservations,
		leases:       leases,
		gate:         gate,
		notifier:     notifier,
		opts:         opts,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateEvent validates the seat count, inserts the event and bulk-creates
// one AVAILABLE seat per number in [1, totalSeats]. The identifier is
// accepted pre-generated from the caller; the engine does not mint ids.
func (e *Engine) CreateEvent(ctx context.Context, eventID, name, description string, totalSeats uint32) (*model.Event, error) {
	if totalSeats < e.opts.MinSeats || totalSeats > e.opts.MaxSeats {
		return nil, ErrInvalidSeatCount
	}
	ev := &model.Event{
		ID:          eventID,
		Name:        name,
		Description: description,
		TotalSeats:  totalSeats,
		Status:      model.EventStatusActive,
		CreatedAt:   e.now(),
	}
	if err := e.events.Create(ctx, ev); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEventExists
		}
		return nil, e.infra("create event", err)
	}
	return ev, nil
}

// GetEvent returns the event or ErrEventNotFound.
func (e *Engine) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	var ev *model.Event
	err := e.retryStore(ctx, func() error {
		var err error
		ev, err = e.events.GetByID(ctx, eventID)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, e.infra("get event", err)
	}
	return ev, nil
}

// Hold acquires a time-bounded exclusive claim on a seat. The per-seat
// gate serializes concurrent attempts; losers fail fast with
// ErrLockContention. Inside the critical section the order is fixed:
// reconcile a stale hold first, then validate availability and the
// holder's quota, then mutate. The durable write happens before the lease
// and quota writes.
func (e *Engine) Hold(ctx context.Context, eventID string, seatNumber uint32, holderID string, duration time.Duration) (*model.Hold, error) {
	token, acquired, err := e.gate.Acquire(ctx, eventID, seatNumber)
	if err != nil {
		return nil, e.infra("acquire gate", err)
	}
	if !acquired {
		return nil, ErrLockContention
	}
	defer func() {
		if relErr := e.gate.Release(context.WithoutCancel(ctx), eventID, seatNumber, token); relErr != nil {
			log.Printf("engine: gate release %s/%d failed: %v", eventID, seatNumber, relErr)
		}
	}()

	seat, err := e.loadSeat(ctx, eventID, seatNumber)
	if err != nil {
		return nil, err
	}
	if seat.Status == model.SeatStatusHeld {
		if _, seat, err = e.reconcileHeld(ctx, seat); err != nil {
			return nil, err
		}
	}
	if seat.Status != model.SeatStatusAvailable {
		return nil, ErrSeatUnavailable
	}

	count, err := e.leases.HolderSeatCount(ctx, eventID, holderID)
	if err != nil {
		return nil, e.infra("holder seat count", err)
	}
	if count >= int64(e.opts.MaxHoldsPerHolder) {
		return nil, ErrHoldQuotaExceeded
	}

	ttl := e.clampTTL(duration)
	now := e.now()
	changed, err := e.seats.MarkHeld(ctx, eventID, seatNumber, holderID, now)
	if err != nil {
		return nil, e.infra("mark held", err)
	}
	if !changed {
		// Lost the race despite the gate (e.g. a previous gate key timed
		// out mid-flight). The durable guard is the final word.
		return nil, ErrSeatUnavailable
	}

	hold := model.Hold{
		EventID:    eventID,
		SeatNumber: seatNumber,
		HolderID:   holderID,
		HeldAt:     now,
		ExpiresAt:  now.Add(ttl),
	}
	// Cache writes after the durable commit. Failures here leave the seat
	// in the held-without-lease state that reconciliation cleans up, so
	// they are logged instead of failing the hold.
	if err := e.leases.PutHold(ctx, hold, ttl); err != nil {
		log.Printf("engine: put hold %s/%d failed: %v", eventID, seatNumber, err)
	}
	if err := e.leases.AddHolderSeat(ctx, eventID, holderID, seatNumber); err != nil {
		log.Printf("engine: add holder seat %s/%d failed: %v", eventID, seatNumber, err)
	}
	e.notify(queue.SeatEvent{
		Kind:       queue.KindSeatHeld,
		EventID:    eventID,
		SeatNumber: seatNumber,
		NewStatus:  model.SeatStatusHeld,
		HolderID:   &holderID,
		OccurredAt: now.Format(time.RFC3339),
	})
	return &hold, nil
}

// Reserve converts a live hold into a permanent reservation. No gate is
// needed: the lease ownership check plus the conditional HELD -> RESERVED
// update inside the reservation transaction prevent double application.
func (e *Engine) Reserve(ctx context.Context, eventID string, seatNumber uint32, holderID string) (*model.Reservation, error) {
	seat, err := e.loadSeat(ctx, eventID, seatNumber)
	if err != nil {
		return nil, err
	}
	if seat.Status != model.SeatStatusHeld {
		return nil, ErrNotHeld
	}
	hold, _, err := e.reconcileHeld(ctx, seat)
	if err != nil {
		return nil, err
	}
	if hold == nil {
		return nil, ErrHoldExpired
	}
	if hold.HolderID != holderID {
		return nil, ErrHeldByOther
	}

	now := e.now()
	res, err := e.reservations.CreateFromHold(ctx, eventID, seatNumber, holderID, now)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) || errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNotHeld
		}
		return nil, e.infra("create reservation", err)
	}
	if err := e.leases.DeleteHold(ctx, eventID, seatNumber); err != nil {
		log.Printf("engine: delete hold %s/%d failed: %v", eventID, seatNumber, err)
	}
	if err := e.leases.RemoveHolderSeat(ctx, eventID, holderID, seatNumber); err != nil {
		log.Printf("engine: remove holder seat %s/%d failed: %v", eventID, seatNumber, err)
	}
	e.notify(queue.SeatEvent{
		Kind:       queue.KindSeatReserved,
		EventID:    eventID,
		SeatNumber: seatNumber,
		NewStatus:  model.SeatStatusReserved,
		HolderID:   &holderID,
		OccurredAt: now.Format(time.RFC3339),
	})
	return res, nil
}

// Release returns a held seat to AVAILABLE. It is idempotent: releasing a
// seat that is already AVAILABLE (or RESERVED) is a successful no-op. Only
// a missing seat is an error.
func (e *Engine) Release(ctx context.Context, eventID string, seatNumber uint32) error {
	seat, err := e.loadSeat(ctx, eventID, seatNumber)
	if err != nil {
		return err
	}
	if seat.Status != model.SeatStatusHeld {
		return nil
	}
	return e.releaseSeat(ctx, seat, seat.HolderID)
}

// Refresh resets the lease TTL of a live hold owned by the caller. The
// durable seat row is untouched; only the lease's expiry moves.
func (e *Engine) Refresh(ctx context.Context, eventID string, seatNumber uint32, holderID string, duration time.Duration) (*model.Hold, error) {
	seat, err := e.loadSeat(ctx, eventID, seatNumber)
	if err != nil {
		return nil, err
	}
	if seat.Status != model.SeatStatusHeld {
		return nil, ErrNotHeld
	}
	hold, _, err := e.reconcileHeld(ctx, seat)
	if err != nil {
		return nil, err
	}
	if hold == nil {
		return nil, ErrHoldExpired
	}
	if hold.HolderID != holderID {
		return nil, ErrHeldByOther
	}

	ttl := e.clampTTL(duration)
	hold.ExpiresAt = e.now().Add(ttl)
	ok, err := e.leases.RefreshHold(ctx, *hold, ttl)
	if err != nil {
		return nil, e.infra("refresh hold", err)
	}
	if !ok {
		// The lease evicted between the ownership check and the rewrite.
		return nil, ErrHoldExpired
	}
	return hold, nil
}

// GetSeatStatus returns the seat's current state, lazily releasing it
// first when its durable status says HELD but the lease is gone.
func (e *Engine) GetSeatStatus(ctx context.Context, eventID string, seatNumber uint32) (*model.Seat, error) {
	seat, err := e.loadSeat(ctx, eventID, seatNumber)
	if err != nil {
		return nil, err
	}
	if seat.Status == model.SeatStatusHeld {
		if _, seat, err = e.reconcileHeld(ctx, seat); err != nil {
			return nil, err
		}
	}
	return seat, nil
}

// ListAvailable returns the event's available seat numbers in ascending
// order. Held seats whose lease has expired are reconciled as a side
// effect and included in the result.
func (e *Engine) ListAvailable(ctx context.Context, eventID string) ([]uint32, error) {
	if _, err := e.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	var seats []model.Seat
	err := e.retryStore(ctx, func() error {
		var err error
		seats, err = e.seats.ListSeats(ctx, eventID)
		return err
	})
	if err != nil {
		return nil, e.infra("list seats", err)
	}
	available := make([]uint32, 0, len(seats))
	for i := range seats {
		seat := &seats[i]
		if seat.Status == model.SeatStatusHeld {
			hold, reconciled, err := e.reconcileHeld(ctx, seat)
			if err != nil {
				return nil, err
			}
			if hold == nil {
				seat = reconciled
			}
		}
		if seat.Status == model.SeatStatusAvailable {
			available = append(available, seat.SeatNumber)
		}
	}
	return available, nil
}

// GetHolderHoldCount reports how many seats the holder currently holds for
// the event. The count comes straight from the quota set; it can briefly
// include holds whose lease just expired, until a read path reconciles them.
func (e *Engine) GetHolderHoldCount(ctx context.Context, eventID, holderID string) (int64, error) {
	if _, err := e.GetEvent(ctx, eventID); err != nil {
		return 0, err
	}
	count, err := e.leases.HolderSeatCount(ctx, eventID, holderID)
	if err != nil {
		return 0, e.infra("holder seat count", err)
	}
	return count, nil
}

// loadSeat reads the authoritative seat row, retrying transient store
// errors and mapping a missing row to ErrSeatNotFound.
func (e *Engine) loadSeat(ctx context.Context, eventID string, seatNumber uint32) (*model.Seat, error) {
	var seat *model.Seat
	err := e.retryStore(ctx, func() error {
		var err error
		seat, err = e.seats.GetSeat(ctx, eventID, seatNumber)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSeatNotFound
		}
		return nil, e.infra("get seat", err)
	}
	return seat, nil
}

// reconcileHeld resolves a seat whose durable status is HELD against the
// lease cache. When a live lease exists it is returned together with the
// seat unchanged. When the lease is missing or already past its expiry,
// the seat is released (durable first, then quota set and any stale lease
// key) and an AVAILABLE copy of the seat is returned with a nil hold.
func (e *Engine) reconcileHeld(ctx context.Context, seat *model.Seat) (*model.Hold, *model.Seat, error) {
	var hold *model.Hold
	err := e.retryStore(ctx, func() error {
		var err error
		hold, err = e.leases.GetHold(ctx, seat.EventID, seat.SeatNumber)
		return err
	})
	if err != nil {
		return nil, nil, e.infra("get hold", err)
	}
	if hold != nil && !hold.Expired(e.now()) {
		return hold, seat, nil
	}
	if err := e.releaseSeat(ctx, seat, seat.HolderID); err != nil {
		return nil, nil, err
	}
	released := *seat
	released.Status = model.SeatStatusAvailable
	released.HolderID = nil
	released.HeldAt = nil
	return nil, &released, nil
}

// releaseSeat performs the HELD -> AVAILABLE transition: conditional
// durable update first, then lease deletion and quota removal, then a
// released notification. holderID is the holder recorded on the seat row,
// used to clean the quota set; it may be nil on malformed rows.
func (e *Engine) releaseSeat(ctx context.Context, seat *model.Seat, holderID *string) error {
	changed, err := e.seats.MarkAvailable(ctx, seat.EventID, seat.SeatNumber)
	if err != nil {
		return e.infra("mark available", err)
	}
	if !changed {
		// Someone else already released or reserved it; nothing to clean.
		return nil
	}
	if err := e.leases.DeleteHold(ctx, seat.EventID, seat.SeatNumber); err != nil {
		log.Printf("engine: delete hold %s/%d failed: %v", seat.EventID, seat.SeatNumber, err)
	}
	if holderID != nil {
		if err := e.leases.RemoveHolderSeat(ctx, seat.EventID, *holderID, seat.SeatNumber); err != nil {
			log.Printf("engine: remove holder seat %s/%d failed: %v", seat.EventID, seat.SeatNumber, err)
		}
	}
	e.notify(queue.SeatEvent{
		Kind:       queue.KindSeatReleased,
		EventID:    seat.EventID,
		SeatNumber: seat.SeatNumber,
		NewStatus:  model.SeatStatusAvailable,
		OccurredAt: e.now().Format(time.RFC3339),
	})
	return nil
}

// clampTTL applies the default when the request omits a duration and caps
// requested durations at the configured maximum.
func (e *Engine) clampTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return e.opts.DefaultHoldTTL
	}
	if d > e.opts.MaxHoldTTL {
		return e.opts.MaxHoldTTL
	}
	return d
}

// notify publishes a seat change in a detached goroutine. The engine never
// blocks on or fails because of the notifier.
func (e *Engine) notify(ev queue.SeatEvent) {
	if e.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyPublishDeadline)
		defer cancel()
		if err := e.notifier.PublishSeatChange(ctx, ev); err != nil {
			log.Printf("engine: publish %s for %s/%d failed: %v", ev.Kind, ev.EventID, ev.SeatNumber, err)
		}
	}()
}

// retryStore runs fn, retrying a small fixed number of times on transient
// store errors. Business-rule sentinels and context cancellation are never
// retried.
func (e *Engine) retryStore(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < storeRetryAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if errors.Is(err, repository.ErrNotFound) ||
			errors.Is(err, repository.ErrDuplicate) ||
			errors.Is(err, repository.ErrConflict) ||
			errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(storeRetryDelay):
		}
	}
	return err
}

// infra wraps an unexpected storage error so handlers can distinguish it
// from business-rule failures.
func (e *Engine) infra(op string, err error) error {
	return &storeError{op: op, err: err}
}

// storeError carries the failing operation name while matching
// ErrStoreUnavailable through errors.Is.
type storeError struct {
	op  string
	err error
}

func (s *storeError) Error() string { return "store unavailable: " + s.op + ": " + s.err.Error() }

func (s *storeError) Unwrap() error { return ErrStoreUnavailable }
