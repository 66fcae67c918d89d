package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing

	"github.com/iliyamo/event-seat-reservation/internal/handler"
	"github.com/iliyamo/event-seat-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance: the health check and the public event
// browse endpoints.  Seat availability is public so clients can render a
// seat map before logging in; every transition stays behind auth.
func RegisterRoutes(e *echo.Echo, ev *handler.EventHandler, seats *handler.SeatHandler) {
	e.GET("/healthz", handler.Health)

	e.GET("/v1/events/:id", ev.GetEvent)
	e.GET("/v1/events/:id/seats", ev.ListAvailableSeats)
	e.GET("/v1/events/:id/seats/:seat", seats.Status)
}

// RegisterAuth registers the auth endpoints and all protected seat
// transition routes.  Unauthenticated operations live under /v1/auth;
// protected endpoints live under /v1 behind the JWTAuth middleware, which
// injects the holder identity the seat handlers rely on.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, ev *handler.EventHandler, seats *handler.SeatHandler, res *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))

	auth.GET("/me", a.Me)
	auth.POST("/events", ev.CreateEvent)
	auth.POST("/events/:id/seats/:seat/hold", seats.Hold)
	auth.POST("/events/:id/seats/:seat/reserve", seats.Reserve)
	auth.DELETE("/events/:id/seats/:seat/hold", seats.Release)
	auth.POST("/events/:id/seats/:seat/refresh", seats.Refresh)
	auth.GET("/events/:id/my-holds", seats.MyHolds)
	auth.GET("/events/:id/my-reservations", res.MyReservations)
	auth.GET("/events/:id/seats/:seat/reservation", res.SeatReservation)
}
