package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockTimeout is returned when a critical-section lock cannot be acquired
// within the configured wait window.
var ErrLockTimeout = errors.New("timed out waiting for lock")

// releaseScript deletes the lock only if the caller still owns it
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// withLock runs fn while holding a SET NX lock on the given key. The lock
// carries a TTL so a crashed holder cannot wedge the queue or a session
// forever; fn bodies are single read-compute-write sequences well under it.
func (s *Storage) withLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	token := uuid.NewString()

	deadline := time.Now().Add(s.cfg.LockWait)
	for {
		ok, err := s.client.SetNX(ctx, key, token, s.cfg.LockTTL).Result()
		if err != nil {
			return err
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.cfg.LockRetryWait):
		}
	}

	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, s.client, []string{key}, token).Err()
	}()

	return fn(ctx)
}
