package lease

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// defaultGateTTL bounds how long a crashed process can keep a seat gated.
// The gate protects only the hold critical section, never the hold's
// lifetime, so a few seconds is plenty.
const defaultGateTTL = 3 * time.Second

// releaseScript deletes the gate key only when it still carries the
// acquirer's token, so a slow holder can never release a gate that has
// since expired and been re-acquired by someone else.
var releaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

// Gate is the per-seat mutual exclusion used around hold attempts.  It is
// an advisory lock built on a single atomic SET NX with a short TTL; there
// is no queueing and no internal retry, contention is reported immediately
// so callers can apply their own backoff.
type Gate struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGate returns a Gate with the given TTL; ttl <= 0 selects the default.
func NewGate(client *redis.Client, ttl time.Duration) *Gate {
	if ttl <= 0 {
		ttl = defaultGateTTL
	}
	return &Gate{client: client, ttl: ttl}
}

// Acquire attempts to take the gate for a seat.  It returns an opaque
// token unique to this attempt when successful; acquired is false when the
// gate is already taken.
func (g *Gate) Acquire(ctx context.Context, eventID string, seatNumber uint32) (string, bool, error) {
	token := uuid.New().String()
	ok, err := g.client.SetNX(ctx, gateKey(eventID, seatNumber), token, g.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("acquire gate: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release frees the gate if the token matches the acquirer.  A gate whose
// TTL already evicted the key releases as a silent no-op.
func (g *Gate) Release(ctx context.Context, eventID string, seatNumber uint32, token string) error {
	if _, err := releaseScript.Run(ctx, g.client, []string{gateKey(eventID, seatNumber)}, token).Int(); err != nil {
		return fmt.Errorf("release gate: %w", err)
	}
	return nil
}

func gateKey(eventID string, seatNumber uint32) string {
	return fmt.Sprintf("seatgate:%s:%d", eventID, seatNumber)
}
