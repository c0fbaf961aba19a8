package redis

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultLockTTL = 30 * time.Second

// Lock is an advisory per-ticket check-in lock. It sheds duplicate
// concurrent check-in attempts before they reach the database; the database
// transaction stays the correctness point, so a lost or expired key is
// harmless.
type Lock struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewLock(client *redis.Client) *Lock {
	return &Lock{Client: client, TTL: lockTTLFromEnv()}
}

func lockTTLFromEnv() time.Duration {
	raw := os.Getenv("CHECKIN_LOCK_TTL_SECONDS")
	if raw == "" {
		return defaultLockTTL
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return defaultLockTTL
	}
	return time.Duration(seconds) * time.Second
}

func lockKey(ticketID int64) string {
	return fmt.Sprintf("checkin_lock:%d", ticketID)
}

// Acquire takes the lock for one ticket. Returns false when another check-in
// for the same ticket is already in flight.
func (l *Lock) Acquire(ctx context.Context, ticketID int64) (bool, error) {
	return l.Client.SetNX(ctx, lockKey(ticketID), "locked", l.TTL).Result()
}

// Release drops the lock. The TTL covers the case where the holder dies
// before releasing.
func (l *Lock) Release(ctx context.Context, ticketID int64) error {
	return l.Client.Del(ctx, lockKey(ticketID)).Err()
}
