package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// unlockScript deletes the key only if it still carries our token, so a lock
// that expired and was taken by another process is never released by us.
var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisTripLocker is a TripLocker shared by every process using the same Redis.
// The TTL bounds how long a crashed holder can block a trip; the trip version
// check in the reservation repository still rejects a late writer.
type RedisTripLocker struct {
	Client     *redis.Client
	TTL        time.Duration
	RetryDelay time.Duration
	Logger     *zap.Logger
}

func NewRedisTripLocker(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisTripLocker {
	return &RedisTripLocker{
		Client:     client,
		TTL:        ttl,
		RetryDelay: 25 * time.Millisecond,
		Logger:     logger,
	}
}

func tripLockKey(tripID string) string {
	return "trip-lock:" + tripID
}

func (l *RedisTripLocker) Lock(ctx context.Context, tripID string) (func(), error) {
	key := tripLockKey(tripID)
	token := uuid.New().String()

	for {
		ok, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock for trip %s: %w", tripID, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.RetryDelay):
		}
	}

	return func() {
		// The caller's context may already be cancelled; release on a fresh one.
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := unlockScript.Run(rctx, l.Client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			if l.Logger != nil {
				l.Logger.Warn("failed to release trip lock", zap.String("tripId", tripID), zap.Error(err))
			}
		}
	}, nil
}
