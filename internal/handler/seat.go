package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// SeatHandler serves the seat transition endpoints: hold, reserve,
// release, refresh and status.  All of them are protected routes; the
// holder identity comes from the JWT middleware.  Conflict-style outcomes
// (seat taken, quota full, gate busy, hold expired) are normal operation
// here, not failures worth logging.
type SeatHandler struct {
	Engine SeatEngine
}

// NewSeatHandler constructs a SeatHandler around the engine.
func NewSeatHandler(eng SeatEngine) *SeatHandler {
	if eng == nil {
		panic("nil engine passed to NewSeatHandler")
	}
	return &SeatHandler{Engine: eng}
}

// durationReq is the optional body of hold and refresh requests.  A zero
// duration selects the engine's default hold TTL.
type durationReq struct {
	DurationSeconds int `json:"duration_seconds"`
}

// Hold handles POST /v1/events/:id/seats/:seat/hold.  On success it
// returns 201 with the lease, including the absolute expiry the client
// should refresh before.
func (h *SeatHandler) Hold(c echo.Context) error {
	holder, ok := holderID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, seat, err := seatParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat number"})
	}
	var body durationReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.DurationSeconds < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration must not be negative"})
	}
	hold, err := h.Engine.Hold(c.Request().Context(), eventID, seat, holder,
		time.Duration(body.DurationSeconds)*time.Second)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, hold)
}

// Reserve handles POST /v1/events/:id/seats/:seat/reserve, converting the
// caller's live hold into a permanent reservation.
func (h *SeatHandler) Reserve(c echo.Context) error {
	holder, ok := holderID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, seat, err := seatParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat number"})
	}
	res, err := h.Engine.Reserve(c.Request().Context(), eventID, seat, holder)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// Release handles DELETE /v1/events/:id/seats/:seat/hold.  Releasing a
// seat that is not held succeeds with no effect, so clients can fire it
// safely after timeouts.
func (h *SeatHandler) Release(c echo.Context) error {
	eventID, seat, err := seatParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat number"})
	}
	if err := h.Engine.Release(c.Request().Context(), eventID, seat); err != nil {
		return respondEngineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Refresh handles POST /v1/events/:id/seats/:seat/refresh, pushing the
// caller's lease expiry forward without touching the durable seat row.
func (h *SeatHandler) Refresh(c echo.Context) error {
	holder, ok := holderID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, seat, err := seatParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat number"})
	}
	var body durationReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.DurationSeconds < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration must not be negative"})
	}
	hold, err := h.Engine.Refresh(c.Request().Context(), eventID, seat, holder,
		time.Duration(body.DurationSeconds)*time.Second)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusOK, hold)
}

// Status handles GET /v1/events/:id/seats/:seat, returning the seat's
// current state after any lazy expiry reconciliation.
func (h *SeatHandler) Status(c echo.Context) error {
	eventID, seat, err := seatParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat number"})
	}
	s, err := h.Engine.GetSeatStatus(c.Request().Context(), eventID, seat)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// MyHolds handles GET /v1/events/:id/my-holds, reporting how many seats
// the caller currently holds for the event.
func (h *SeatHandler) MyHolds(c echo.Context) error {
	holder, ok := holderID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	count, err := h.Engine.GetHolderHoldCount(c.Request().Context(), c.Param("id"), holder)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"holds": count})
}

// seatParams parses the event id and seat number path parameters.
func seatParams(c echo.Context) (string, uint32, error) {
	eventID := c.Param("id")
	n, err := strconv.ParseUint(c.Param("seat"), 10, 32)
	if err != nil || n == 0 {
		return "", 0, echo.ErrBadRequest
	}
	return eventID, uint32(n), nil
}
