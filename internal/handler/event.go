package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EventHandler serves event creation and lookup.  It holds no decision
// logic of its own: validation of seat counts and duplicate ids happens
// in the engine, and this layer only translates between HTTP and the
// engine's types.
type EventHandler struct {
	Engine SeatEngine
}

// NewEventHandler constructs an EventHandler around the engine.
func NewEventHandler(eng SeatEngine) *EventHandler {
	if eng == nil {
		panic("nil engine passed to NewEventHandler")
	}
	return &EventHandler{Engine: eng}
}

// CreateEvent handles POST /v1/events.  The body carries the display
// name, description and total seat count; the identifier is optional and
// a fresh UUID is generated when it is omitted, since the engine accepts
// ids pre-generated rather than minting its own.
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var body struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		TotalSeats  uint32 `json:"total_seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	id := strings.TrimSpace(body.ID)
	if id == "" {
		id = uuid.New().String()
	}
	ev, err := h.Engine.CreateEvent(c.Request().Context(), id, body.Name, body.Description, body.TotalSeats)
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, ev)
}

// GetEvent handles GET /v1/events/:id.
func (h *EventHandler) GetEvent(c echo.Context) error {
	ev, err := h.Engine.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

// ListAvailableSeats handles GET /v1/events/:id/seats.  Seat numbers come
// back ascending; expired holds encountered along the way have already
// been reconciled by the engine before inclusion.
func (h *EventHandler) ListAvailableSeats(c echo.Context) error {
	seats, err := h.Engine.ListAvailable(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondEngineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"available": seats})
}
