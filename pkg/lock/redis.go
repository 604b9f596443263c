package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// releaseScript deletes the key only while it still carries our token, so a
// hold that expired and was taken by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client redis.Cmdable
	ttl    time.Duration
	retry  time.Duration
	prefix string
	token  func() string
	log    *zap.Logger
}

type RedisOption func(*RedisLocker)

func WithRetryInterval(d time.Duration) RedisOption {
	return func(l *RedisLocker) { l.retry = d }
}

func WithTokenFunc(fn func() string) RedisOption {
	return func(l *RedisLocker) { l.token = fn }
}

// NewRedisLocker holds keys with SET NX PX. ttl bounds how long a crashed
// holder can block a slot.
func NewRedisLocker(client redis.Cmdable, ttl time.Duration, log *zap.Logger, opts ...RedisOption) *RedisLocker {
	l := &RedisLocker{
		client: client,
		ttl:    ttl,
		retry:  50 * time.Millisecond,
		prefix: "lock:",
		token:  func() string { return uuid.NewString() },
		log:    log.With(zap.String("component", "redis_lock")),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	name := l.prefix + key
	token := l.token()

	for {
		ok, err := l.client.SetNX(ctx, name, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", name, err)
		}
		if ok {
			break
		}

		timer := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("acquire lock %s: %w", name, ErrNotAcquired)
		case <-timer.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// the caller's ctx may already be done
			releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, l.client, []string{name}, token).Err(); err != nil {
				l.log.Warn("Failed to release lock", zap.String("key", name), zap.Error(err))
			}
		})
	}, nil
}
