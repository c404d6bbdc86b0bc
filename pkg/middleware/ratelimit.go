package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/littleones/pkg/logger"
	"github.com/tair/littleones/pkg/response"
)

// RateLimiter is a Redis sliding-window limiter keyed by client address
type RateLimiter struct {
	redis       *redis.Client
	prefix      string
	maxRequests int
	window      time.Duration
}

// NewRateLimiter creates a limiter allowing maxRequests per window. A nil
// client yields a limiter that lets everything through.
func NewRateLimiter(redisClient *redis.Client, prefix string, maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:       redisClient,
		prefix:      prefix,
		maxRequests: maxRequests,
		window:      window,
	}
}

// Wrap applies the limit to next
func (rl *RateLimiter) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rl == nil || rl.redis == nil || rl.maxRequests <= 0 {
			next(w, r)
			return
		}

		identifier := clientIP(r)
		allowed, remaining, resetTime, err := rl.checkLimit(r.Context(), identifier)
		if err != nil {
			// On error, allow request but log it
			logger.Warn(r.Context()).
				Err(err).
				Str("identifier", identifier).
				Msg("Rate limiter error")
			next(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.maxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			logger.Warn(r.Context()).
				Str("identifier", identifier).
				Int("limit", rl.maxRequests).
				Msg("Rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			response.JSON(w, http.StatusTooManyRequests, response.Response{
				Success: false,
				Error:   "Rate limit exceeded",
				Message: fmt.Sprintf("Too many requests. Try again in %v", time.Until(resetTime).Round(time.Second)),
			})
			return
		}

		next(w, r)
	}
}

// checkLimit records this request and reports whether it fits the window
func (rl *RateLimiter) checkLimit(ctx context.Context, identifier string) (bool, int, time.Time, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", rl.prefix, identifier)
	now := time.Now()
	windowStart := now.Add(-rl.window)

	pipe := rl.redis.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	pipe.Expire(ctx, key, rl.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := countCmd.Val()
	remaining := rl.maxRequests - int(count) - 1
	if remaining < 0 {
		remaining = 0
	}

	return count < int64(rl.maxRequests), remaining, now.Add(rl.window), nil
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
