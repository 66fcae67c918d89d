package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-seat-reservation/internal/engine"
	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// SeatEngine is the surface the handlers need from the seat lifecycle
// engine.  Declaring it here keeps the handlers testable against a mock
// without dragging the storage stack into handler tests.
type SeatEngine interface {
	CreateEvent(ctx context.Context, eventID, name, description string, totalSeats uint32) (*model.Event, error)
	GetEvent(ctx context.Context, eventID string) (*model.Event, error)
	Hold(ctx context.Context, eventID string, seatNumber uint32, holderID string, duration time.Duration) (*model.Hold, error)
	Reserve(ctx context.Context, eventID string, seatNumber uint32, holderID string) (*model.Reservation, error)
	Release(ctx context.Context, eventID string, seatNumber uint32) error
	Refresh(ctx context.Context, eventID string, seatNumber uint32, holderID string, duration time.Duration) (*model.Hold, error)
	GetSeatStatus(ctx context.Context, eventID string, seatNumber uint32) (*model.Seat, error)
	ListAvailable(ctx context.Context, eventID string) ([]uint32, error)
	GetHolderHoldCount(ctx context.Context, eventID, holderID string) (int64, error)
}

// holderID extracts the authenticated holder identity injected by the JWT
// middleware.  An empty result means the route was wired without the
// middleware, which is a server bug rather than a client error.
func holderID(c echo.Context) (string, bool) {
	v := c.Get("holder_id")
	s, ok := v.(string)
	return s, ok && s != ""
}

// respondEngineError maps the engine's error taxonomy onto HTTP status
// codes.  Business-rule failures are expected, recoverable-by-caller
// conditions; only storage unavailability is surfaced as a 5xx worth
// retrying.
func respondEngineError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, engine.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	case errors.Is(err, engine.ErrSeatNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
	case errors.Is(err, engine.ErrEventExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "event already exists"})
	case errors.Is(err, engine.ErrInvalidSeatCount):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total seats out of bounds"})
	case errors.Is(err, engine.ErrSeatUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat unavailable"})
	case errors.Is(err, engine.ErrNotHeld):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat not held"})
	case errors.Is(err, engine.ErrHeldByOther):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat held by another holder"})
	case errors.Is(err, engine.ErrHoldExpired):
		return c.JSON(http.StatusConflict, echo.Map{"error": "hold expired"})
	case errors.Is(err, engine.ErrHoldQuotaExceeded):
		return c.JSON(http.StatusConflict, echo.Map{"error": "hold quota exceeded"})
	case errors.Is(err, engine.ErrLockContention):
		// Another hold attempt owns the seat gate right now; the client
		// may simply retry.
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat busy, retry", "retryable": true})
	case errors.Is(err, engine.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
