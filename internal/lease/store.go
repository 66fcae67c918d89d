// Package lease implements the ephemeral side of seat holds on Redis: the
// lease entries whose native TTL drives hold expiry, the per-holder seat
// sets backing the hold quota, and the per-seat gate that serializes hold
// attempts. The three key spaces are disjoint by prefix so they can never
// collide: "hold:", "holderseats:" and "seatgate:".
package lease

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// quotaSetTTL bounds how long an abandoned holder seat set can linger.  It
// is refreshed on every membership write, so it only fires for sets whose
// holds were never cleaned up at all.
const quotaSetTTL = 24 * time.Hour

// Store holds lease entries and quota sets in Redis.  A lease key carries
// the hold's JSON payload and a TTL equal to the hold duration, so Redis
// itself evicts it at expiry; the engine interprets the key's absence as
// the hold having expired.
type Store struct {
	client *redis.Client
}

// NewStore returns a Store bound to the provided Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// PutHold writes the lease under hold:{event}:{seat} with the given TTL.
func (s *Store) PutHold(ctx context.Context, hold model.Hold, ttl time.Duration) error {
	payload, err := json.Marshal(hold)
	if err != nil {
		return fmt.Errorf("marshal hold: %w", err)
	}
	key := holdKey(hold.EventID, hold.SeatNumber)
	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("set hold: %w", err)
	}
	return nil
}

// GetHold loads the lease for a seat.  A missing key is not an error: it
// returns (nil, nil), which callers interpret as the hold having expired.
func (s *Store) GetHold(ctx context.Context, eventID string, seatNumber uint32) (*model.Hold, error) {
	raw, err := s.client.Get(ctx, holdKey(eventID, seatNumber)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hold: %w", err)
	}
	var hold model.Hold
	if err := json.Unmarshal(raw, &hold); err != nil {
		return nil, fmt.Errorf("unmarshal hold: %w", err)
	}
	return &hold, nil
}

// DeleteHold removes the lease.  Deleting a key that is already gone is a
// no-op, which keeps release and reconciliation idempotent.
func (s *Store) DeleteHold(ctx context.Context, eventID string, seatNumber uint32) error {
	if err := s.client.Del(ctx, holdKey(eventID, seatNumber)).Err(); err != nil {
		return fmt.Errorf("delete hold: %w", err)
	}
	return nil
}

// RefreshHold rewrites an existing lease with its new expiry and TTL using
// SET XX, so a lease that was evicted in the meantime is never recreated.
// The boolean reports whether the lease still existed.
func (s *Store) RefreshHold(ctx context.Context, hold model.Hold, ttl time.Duration) (bool, error) {
	payload, err := json.Marshal(hold)
	if err != nil {
		return false, fmt.Errorf("marshal hold: %w", err)
	}
	key := holdKey(hold.EventID, hold.SeatNumber)
	ok, err := s.client.SetXX(ctx, key, payload, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("refresh hold: %w", err)
	}
	return ok, nil
}

// AddHolderSeat records seat membership in the holder's quota set and
// refreshes the set's safety TTL.
func (s *Store) AddHolderSeat(ctx context.Context, eventID, holderID string, seatNumber uint32) error {
	key := holderSeatsKey(eventID, holderID)
	if err := s.client.SAdd(ctx, key, seatNumber).Err(); err != nil {
		return fmt.Errorf("add holder seat: %w", err)
	}
	if err := s.client.Expire(ctx, key, quotaSetTTL).Err(); err != nil {
		return fmt.Errorf("expire holder seats: %w", err)
	}
	return nil
}

// RemoveHolderSeat drops seat membership from the holder's quota set.
// Removal is idempotent; removing an absent member is a no-op.
func (s *Store) RemoveHolderSeat(ctx context.Context, eventID, holderID string, seatNumber uint32) error {
	if err := s.client.SRem(ctx, holderSeatsKey(eventID, holderID), seatNumber).Err(); err != nil {
		return fmt.Errorf("remove holder seat: %w", err)
	}
	return nil
}

// HolderSeatCount returns the cardinality of the holder's quota set.  Set
// membership rather than a raw counter means duplicate adds and removes
// cannot skew the count.
func (s *Store) HolderSeatCount(ctx context.Context, eventID, holderID string) (int64, error) {
	n, err := s.client.SCard(ctx, holderSeatsKey(eventID, holderID)).Result()
	if err != nil {
		return 0, fmt.Errorf("holder seat count: %w", err)
	}
	return n, nil
}

func holdKey(eventID string, seatNumber uint32) string {
	return fmt.Sprintf("hold:%s:%d", eventID, seatNumber)
}

func holderSeatsKey(eventID, holderID string) string {
	return fmt.Sprintf("holderseats:%s:%s", eventID, holderID)
}
