package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHoldExpired(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

	t.Run("a future expiry is live", func(t *testing.T) {
		h := Hold{ExpiresAt: now.Add(time.Second)}
		assert.False(t, h.Expired(now))
	})

	t.Run("a past expiry is expired", func(t *testing.T) {
		h := Hold{ExpiresAt: now.Add(-time.Second)}
		assert.True(t, h.Expired(now))
	})

	t.Run("the exact expiry instant counts as expired", func(t *testing.T) {
		h := Hold{ExpiresAt: now}
		assert.True(t, h.Expired(now))
	})
}
