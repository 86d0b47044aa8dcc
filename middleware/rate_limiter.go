package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RateLimiter is a fixed-window limiter keyed per IP, method and route. The
// counters live in Redis when it is configured and in memory otherwise.
func RateLimiter(maxRequests int, window time.Duration) gin.HandlerFunc {
	local := newMemoryWindow()
	log := logrus.WithField("component", "rate-limit")

	return func(c *gin.Context) {
		key := "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()

		var count int64
		var resetAt time.Time
		if client := config.RedisClient; client != nil {
			var err error
			count, resetAt, err = redisWindow(c.Request.Context(), client, key, window)
			if err != nil {
				log.WithError(err).Warn("redis rate limit failed, using memory")
				count, resetAt = local.hit(key, window)
			}
		} else {
			count, resetAt = local.hit(key, window)
		}

		remaining := maxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		resetInSeconds := int(time.Until(resetAt).Seconds())
		if resetInSeconds < 0 {
			resetInSeconds = 0
		}

		rate := &models.RateLimit{
			Limit:          maxRequests,
			Remaining:      remaining,
			ResetAt:        resetAt,
			ResetInSeconds: resetInSeconds,
		}

		c.Set(models.ContextKeyRateLimit, rate)

		if int(count) > maxRequests {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse(c, "Too many requests"))
			return
		}

		c.Next()
	}
}

func redisWindow(ctx context.Context, client *redis.Client, key string, window time.Duration) (int64, time.Time, error) {
	resetKey := key + ":resetAt"

	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, err
	}

	// First request → set expiry and stable resetAt
	if count == 1 {
		resetAt := time.Now().Add(window)
		pipe := client.TxPipeline()
		pipe.Expire(ctx, key, window)
		pipe.Set(ctx, resetKey, resetAt.Unix(), window)
		if _, err := pipe.Exec(ctx); err != nil {
			return 0, time.Time{}, err
		}
		return count, resetAt, nil
	}

	resetAtUnix, err := client.Get(ctx, resetKey).Int64()
	if err != nil && err != redis.Nil {
		return 0, time.Time{}, err
	}
	return count, time.Unix(resetAtUnix, 0), nil
}

type memoryWindow struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
}

type windowEntry struct {
	count   int64
	resetAt time.Time
}

func newMemoryWindow() *memoryWindow {
	return &memoryWindow{entries: make(map[string]*windowEntry)}
}

func (m *memoryWindow) hit(key string, window time.Duration) (int64, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	e, ok := m.entries[key]
	if !ok || now.After(e.resetAt) {
		// drop expired windows while we hold the lock
		if len(m.entries) > 10000 {
			for k, v := range m.entries {
				if now.After(v.resetAt) {
					delete(m.entries, k)
				}
			}
		}
		e = &windowEntry{resetAt: now.Add(window)}
		m.entries[key] = e
	}
	e.count++
	return e.count, e.resetAt
}
