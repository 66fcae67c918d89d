package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptHelpers(t *testing.T) {
	t.Run("optStr falls back to the default", func(t *testing.T) {
		assert.Equal(t, "fallback", optStr("CONFIG_TEST_UNSET", "fallback"))

		t.Setenv("CONFIG_TEST_STR", "set")
		assert.Equal(t, "set", optStr("CONFIG_TEST_STR", "fallback"))
	})

	t.Run("optInt parses and falls back on garbage", func(t *testing.T) {
		assert.Equal(t, 7, optInt("CONFIG_TEST_UNSET", 7))

		t.Setenv("CONFIG_TEST_INT", "12")
		assert.Equal(t, 12, optInt("CONFIG_TEST_INT", 7))

		t.Setenv("CONFIG_TEST_INT", "not-a-number")
		assert.Equal(t, 7, optInt("CONFIG_TEST_INT", 7))
	})

	t.Run("optDur parses durations and falls back on garbage", func(t *testing.T) {
		assert.Equal(t, 5*time.Minute, optDur("CONFIG_TEST_UNSET", 5*time.Minute))

		t.Setenv("CONFIG_TEST_DUR", "90s")
		assert.Equal(t, 90*time.Second, optDur("CONFIG_TEST_DUR", 5*time.Minute))

		t.Setenv("CONFIG_TEST_DUR", "soon")
		assert.Equal(t, 5*time.Minute, optDur("CONFIG_TEST_DUR", 5*time.Minute))
	})
}

func TestLoadRateLimitConfig(t *testing.T) {
	t.Run("defaults allow 120 per minute", func(t *testing.T) {
		cfg := LoadRateLimitConfig()
		assert.True(t, cfg.Enabled)
		assert.Equal(t, 120, cfg.Limit)
		assert.Equal(t, time.Minute, cfg.Window)
		assert.Equal(t, "rl", cfg.Prefix)
	})

	t.Run("environment overrides are honored", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "false")
		t.Setenv("RATE_LIMIT_LIMIT", "10")
		t.Setenv("RATE_LIMIT_WINDOW", "30s")

		cfg := LoadRateLimitConfig()
		assert.False(t, cfg.Enabled)
		assert.Equal(t, 10, cfg.Limit)
		assert.Equal(t, 30*time.Second, cfg.Window)
	})

	t.Run("nonsense limits are clamped to sane values", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_LIMIT", "0")
		t.Setenv("RATE_LIMIT_WINDOW", "-5s")

		cfg := LoadRateLimitConfig()
		assert.Equal(t, 1, cfg.Limit)
		assert.Equal(t, time.Minute, cfg.Window)
	})
}
