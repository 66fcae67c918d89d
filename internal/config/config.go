package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time for duration-typed settings

	"github.com/joho/godotenv" // godotenv loads a local .env file when present
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The types reflect how the values are used
// in the application: strings for identifiers and secrets, durations for
// TTLs, ints for costs and limits.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	MigrationsPath string // directory containing SQL migrations
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	BcryptCost     int    // bcrypt cost for password hashing

	// Seat engine settings.
	SeatsMin          uint32        // lowest accepted total_seats for a new event
	SeatsMax          uint32        // highest accepted total_seats for a new event
	MaxHoldsPerHolder int           // concurrent hold quota per holder per event
	HoldDefaultTTL    time.Duration // hold duration applied when a request omits one
	HoldMaxTTL        time.Duration // cap on requested hold durations
	GateTTL           time.Duration // TTL of the per-seat hold gate
}

// Load reads configuration values from environment variables and returns
// a Config.  A .env file in the working directory is applied first when
// present.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message; engine settings all
// have sensible defaults.
func Load() Config {
	_ = godotenv.Load() // missing .env is fine; real env always wins

	return Config{
		Env:            must("APP_ENV"),      // environment (dev/test/prod)
		Port:           must("APP_PORT"),     // port to bind the HTTP server
		DBUser:         must("DB_USER"),      // database user
		DBPass:         os.Getenv("DB_PASS"), // database password (empty allowed)
		DBHost:         must("DB_HOST"),      // database host
		DBPort:         must("DB_PORT"),      // database port
		DBName:         must("DB_NAME"),      // database name
		MigrationsPath: optStr("MIGRATIONS_PATH", "migrations"),
		JWTSecret:      must("JWT_SECRET"),              // secret used for signing JWTs
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"), // TTL for access tokens in minutes
		BcryptCost:     mustInt("BCRYPT_COST"),          // bcrypt cost factor

		SeatsMin:          uint32(optInt("EVENT_SEATS_MIN", 10)),
		SeatsMax:          uint32(optInt("EVENT_SEATS_MAX", 1000)),
		MaxHoldsPerHolder: optInt("HOLD_MAX_PER_HOLDER", 6),
		HoldDefaultTTL:    optDur("HOLD_DEFAULT_TTL", 5*time.Minute),
		HoldMaxTTL:        optDur("HOLD_MAX_TTL", 15*time.Minute),
		GateTTL:           optDur("SEAT_GATE_TTL", 3*time.Second),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// optStr returns the variable's value or the default when unset.
func optStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// optInt returns the variable parsed as an int, or the default when the
// variable is unset or malformed.
func optInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid int for %s: %q, using default %d", key, v, def)
		return def
	}
	return n
}

// optDur returns the variable parsed as a time.Duration (e.g. "5m",
// "30s"), or the default when unset or malformed.
func optDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid duration for %s: %q, using default %s", key, v, def)
		return def
	}
	return d
}
