package model

import "time"

// Hold is the ephemeral lease backing a temporary seat claim.  It lives in
// the lease cache under a key with a native TTL equal to the hold duration,
// so it self-deletes at expiry.  The durable seat row remains HELD until a
// read or write path notices the missing lease and lazily releases it; the
// lease is therefore the only authority for *when* a hold expires and *who*
// holds it, never for whether the seat is held at all.
//
// Fields:
//  EventID    – event the held seat belongs to.
//  SeatNumber – seat being held.
//  HolderID   – holder who acquired the lease.
//  HeldAt     – acquisition time.
//  ExpiresAt  – absolute expiry; matches the cache entry's TTL.
type Hold struct {
	EventID    string    `json:"event_id"`
	SeatNumber uint32    `json:"seat_number"`
	HolderID   string    `json:"holder_id"`
	HeldAt     time.Time `json:"held_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Expired reports whether the lease's absolute expiry has passed at the
// given instant.  The cache normally evicts the key itself; this check
// covers the window where the key still exists but is already stale.
func (h Hold) Expired(now time.Time) bool {
	return !h.ExpiresAt.After(now)
}
