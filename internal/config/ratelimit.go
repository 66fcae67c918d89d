package config

import (
	"time"
)

// RateLimitConfig configures the fixed-window request limiter applied to
// the API.  The limiter lives in Redis so the limit holds across multiple
// server instances.
type RateLimitConfig struct {
	Enabled bool          // disable entirely (e.g. in tests)
	Limit   int           // requests allowed per window
	Window  time.Duration // window length
	Prefix  string        // key namespace in Redis
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig.  Defaults allow 120 requests per minute per client.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: optStr("RATE_LIMIT_ENABLED", "true") == "true",
		Limit:   optInt("RATE_LIMIT_LIMIT", 120),
		Window:  optDur("RATE_LIMIT_WINDOW", time.Minute),
		Prefix:  optStr("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}
