package main // Entry point package

import (
	"log" // Logging library

	"github.com/labstack/echo/v4"                   // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // Echo's built-in logger and recover middleware

	"github.com/iliyamo/event-seat-reservation/internal/config"     // Internal config loader
	"github.com/iliyamo/event-seat-reservation/internal/database"   // Database connection and migrations
	"github.com/iliyamo/event-seat-reservation/internal/engine"     // Seat lifecycle engine
	"github.com/iliyamo/event-seat-reservation/internal/handler"    // HTTP handlers
	"github.com/iliyamo/event-seat-reservation/internal/lease"      // Redis lease store and seat gate
	"github.com/iliyamo/event-seat-reservation/internal/middleware" // Rate limit middleware
	"github.com/iliyamo/event-seat-reservation/internal/queue"      // Seat event consumer
	"github.com/iliyamo/event-seat-reservation/internal/repository" // Data access layer
	"github.com/iliyamo/event-seat-reservation/internal/router"     // Internal router setup
	queue_publisher "github.com/iliyamo/event-seat-reservation/internal/service"
)

func main() {
	cfg := config.Load() // Load environment config

	// Open the MySQL connection and bring the schema up to date before
	// accepting traffic.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := database.RunMigrations(db, cfg.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Redis backs the lease cache, the per-seat gate and the rate limiter.
	// Unlike the database it has no degraded mode: without it the engine
	// cannot track hold liveness, so a failed connection is fatal.
	rdb, err := config.NewRedisClient()
	if err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	eventRepo := repository.NewEventRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	userRepo := repository.NewUserRepo(db)

	leaseStore := lease.NewStore(rdb)                // hold leases and quota sets
	seatGate := lease.NewGate(rdb, cfg.GateTTL)      // per-seat mutual exclusion
	notifier := queue_publisher.NewPublisher()       // seat change events to RabbitMQ

	eng := engine.New(eventRepo, seatRepo, reservationRepo, leaseStore, seatGate, notifier, engine.Options{
		MinSeats:          cfg.SeatsMin,
		MaxSeats:          cfg.SeatsMax,
		MaxHoldsPerHolder: cfg.MaxHoldsPerHolder,
		DefaultHoldTTL:    cfg.HoldDefaultTTL,
		MaxHoldTTL:        cfg.HoldMaxTTL,
	})

	authHandler := handler.NewAuthHandler(cfg, userRepo)
	eventHandler := handler.NewEventHandler(eng)
	seatHandler := handler.NewSeatHandler(eng)
	reservationHandler := handler.NewReservationHandler(reservationRepo)

	e := echo.New()         // Create Echo instance
	e.Use(echomw.Logger())  // Request logging
	e.Use(echomw.Recover()) // Recover from panics in handlers
	e.Use(middleware.NewRateLimit(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e, eventHandler, seatHandler)
	router.RegisterAuth(e, authHandler, eventHandler, seatHandler, reservationHandler, cfg.JWTSecret)

	// The consumer tails seat.events and appends an audit line per
	// transition.  It reconnects on its own; a returned error only means it
	// gave up before the first connect.
	go func() {
		if err := queue.StartSeatConsumer(); err != nil {
			log.Printf("seat consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
