package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/antar/internal/pkg/logger"
	"github.com/piresc/antar/internal/utils"
)

// RateLimiterConfig contains configuration for the fixed-window rate limiter
type RateLimiterConfig struct {
	RedisClient *redis.Client
	Key         string        // Key prefix for Redis
	Limit       int           // Maximum number of requests per window
	Period      time.Duration // Window length
}

// RateLimiterMiddleware limits requests per route and caller using Redis counters.
// Redis errors let the request through.
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identifier := c.RealIP()
			if id := DriverID(c); id != "" {
				identifier = "driver:" + id
			}

			key := fmt.Sprintf("%s:%s:%s", config.Key, c.Path(), identifier)
			ctx := c.Request().Context()

			var incr *redis.IntCmd
			var ttl *redis.DurationCmd
			_, err := config.RedisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				incr = pipe.Incr(ctx, key)
				ttl = pipe.TTL(ctx, key)
				return nil
			})
			if err != nil {
				logger.WarnCtx(ctx, "Rate limiter unavailable", logger.String("key", key), logger.Err(err))
				return next(c)
			}

			// a counter without expiry starts a new window
			if ttl.Val() < 0 {
				if err := config.RedisClient.Expire(ctx, key, config.Period).Err(); err != nil {
					logger.WarnCtx(ctx, "Rate limiter expiry failed", logger.String("key", key), logger.Err(err))
				}
			}

			count := int(incr.Val())
			remaining := config.Limit - count
			if remaining < 0 {
				remaining = 0
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if count > config.Limit {
				wait := ttl.Val()
				if wait <= 0 {
					wait = config.Period
				}
				h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(wait).Unix(), 10))
				h.Set("Retry-After", strconv.FormatInt(int64(wait.Seconds()), 10))
				return utils.ErrorResponseHandler(c, http.StatusTooManyRequests, "Rate limit exceeded")
			}

			return next(c)
		}
	}
}

// IPRateLimiter limits unauthenticated callers by client IP
func IPRateLimiter(limit int, period time.Duration, redisClient *redis.Client) echo.MiddlewareFunc {
	return RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: redisClient,
		Key:         "rate:ip",
		Limit:       limit,
		Period:      period,
	})
}
