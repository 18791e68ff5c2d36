package httpx

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window rate limiter backed by Redis, shared
// across instances.
type RedisRateLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

// The counter and its expiry are set atomically so a crash between the two
// cannot leave an immortal key.
var fixedWindowScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

func NewRedisRateLimiter(rdb *redis.Client, limit int, window time.Duration, prefix string) *RedisRateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		prefix = "rl"
	}
	return &RedisRateLimiter{rdb: rdb, limit: int64(limit), window: window, prefix: prefix}
}

// Middleware enforces the limit per client key. With failOpen set, Redis
// outages let traffic through instead of rejecting everything.
func (rl *RedisRateLimiter) Middleware(logger *slog.Logger, failOpen bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			count, err := rl.hit(r.Context(), rl.prefix+":"+clientKey(r))
			switch {
			case err != nil:
				if logger != nil {
					logger.Warn("redis rate limiter error", "err", err)
				}
				if !failOpen {
					http.Error(w, "rate limiter unavailable", http.StatusServiceUnavailable)
					return
				}
			case count > rl.limit:
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RedisRateLimiter) hit(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}
