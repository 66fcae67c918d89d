package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-seat-reservation/internal/engine"
	"github.com/iliyamo/event-seat-reservation/internal/model"
)

func eventRequest(method, body, eventID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if eventID != "" {
		c.SetParamNames("id")
		c.SetParamValues(eventID)
	}
	return c, rec
}

func TestEventHandler_CreateEvent(t *testing.T) {
	t.Run("creates an event with a caller-provided id", func(t *testing.T) {
		eng := new(mockEngine)
		h := NewEventHandler(eng)
		ev := &model.Event{ID: "ev1", Name: "Concert", TotalSeats: 100, Status: model.EventStatusActive}
		eng.On("CreateEvent", mock.Anything, "ev1", "Concert", "front hall", uint32(100)).Return(ev, nil)

		c, rec := eventRequest(http.MethodPost, `{"id":"ev1","name":"Concert","description":"front hall","total_seats":100}`, "")
		require.NoError(t, h.CreateEvent(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		eng.AssertExpectations(t)
	})

	t.Run("generates an id when the body omits one", func(t *testing.T) {
		eng := new(mockEngine)
		h := NewEventHandler(eng)
		eng.On("CreateEvent", mock.Anything, mock.MatchedBy(func(id string) bool { return id != "" }),
			"Concert", "", uint32(100)).Return(&model.Event{}, nil)

		c, rec := eventRequest(http.MethodPost, `{"name":"Concert","total_seats":100}`, "")
		require.NoError(t, h.CreateEvent(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		eng.AssertExpectations(t)
	})

	t.Run("rejects a missing name", func(t *testing.T) {
		eng := new(mockEngine)
		h := NewEventHandler(eng)

		c, rec := eventRequest(http.MethodPost, `{"total_seats":100}`, "")
		require.NoError(t, h.CreateEvent(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		eng.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("out-of-bounds seat count yields 400", func(t *testing.T) {
		eng := new(mockEngine)
		h := NewEventHandler(eng)
		eng.On("CreateEvent", mock.Anything, mock.Anything, "Concert", "", uint32(3)).Return(nil, engine.ErrInvalidSeatCount)

		c, rec := eventRequest(http.MethodPost, `{"name":"Concert","total_seats":3}`, "")
		require.NoError(t, h.CreateEvent(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate id yields 409", func(t *testing.T) {
		eng := new(mockEngine)
		h := NewEventHandler(eng)
		eng.On("CreateEvent", mock.Anything, "ev1", "Concert", "", uint32(100)).Return(nil, engine.ErrEventExists)

		c, rec := eventRequest(http.MethodPost, `{"id":"ev1","name":"Concert","total_seats":100}`, "")
		require.NoError(t, h.CreateEvent(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestEventHandler_GetEvent(t *testing.T) {
	t.Run("returns the event", func(t *testing.T) {
		eng := new(mockEngine)
		h := NewEventHandler(eng)
		ev := &model.Event{ID: "ev1", Name: "Concert", TotalSeats: 100}
		eng.On("GetEvent", mock.Anything, "ev1").Return(ev, nil)

		c, rec := eventRequest(http.MethodGet, "", "ev1")
		require.NoError(t, h.GetEvent(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"ev1"`)
	})

	t.Run("unknown event yields 404", func(t *testing.T) {
		eng := new(mockEngine)
		h := NewEventHandler(eng)
		eng.On("GetEvent", mock.Anything, "missing").Return(nil, engine.ErrEventNotFound)

		c, rec := eventRequest(http.MethodGet, "", "missing")
		require.NoError(t, h.GetEvent(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEventHandler_ListAvailableSeats(t *testing.T) {
	t.Run("returns the ascending seat numbers", func(t *testing.T) {
		eng := new(mockEngine)
		h := NewEventHandler(eng)
		eng.On("ListAvailable", mock.Anything, "ev1").Return([]uint32{1, 4, 9}, nil)

		c, rec := eventRequest(http.MethodGet, "", "ev1")
		require.NoError(t, h.ListAvailableSeats(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"available":[1,4,9]`)
	})

	t.Run("an event with nothing free returns an empty list", func(t *testing.T) {
		eng := new(mockEngine)
		h := NewEventHandler(eng)
		eng.On("ListAvailable", mock.Anything, "ev1").Return([]uint32{}, nil)

		c, rec := eventRequest(http.MethodGet, "", "ev1")
		require.NoError(t, h.ListAvailableSeats(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"available":[]`)
	})
}
