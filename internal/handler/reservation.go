package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-seat-reservation/internal/repository"
)

// ReservationHandler serves read-only reservation lookups.  These are
// plain durable reads with no lifecycle decisions, so the handler talks
// to the repository directly instead of going through the engine.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(r *repository.ReservationRepo) *ReservationHandler {
	if r == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: r}
}

// MyReservations handles GET /v1/events/:id/my-reservations, listing the
// caller's reservations for the event ordered by seat number.
func (h *ReservationHandler) MyReservations(c echo.Context) error {
	holder, ok := holderID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	list, err := h.Reservations.ListByHolder(c.Request().Context(), c.Param("id"), holder)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}

// SeatReservation handles GET /v1/events/:id/seats/:seat/reservation,
// returning the reservation record for a reserved seat.
func (h *ReservationHandler) SeatReservation(c echo.Context) error {
	n, err := strconv.ParseUint(c.Param("seat"), 10, 32)
	if err != nil || n == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat number"})
	}
	res, err := h.Reservations.GetBySeat(c.Request().Context(), c.Param("id"), uint32(n))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, res)
}
