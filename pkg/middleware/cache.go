package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/littleones/pkg/logger"
)

// ResponseCache caches GET responses in Redis. Only use it on routes whose
// body does not depend on the session.
type ResponseCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewResponseCache creates a cache with the given TTL. A nil client yields a
// cache that never hits.
func NewResponseCache(redisClient *redis.Client, ttl time.Duration) *ResponseCache {
	return &ResponseCache{redis: redisClient, ttl: ttl}
}

// Wrap serves next through the cache
func (rc *ResponseCache) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rc == nil || rc.redis == nil || r.Method != http.MethodGet {
			next(w, r)
			return
		}

		ctx := r.Context()
		key := CacheKey(r)

		if cached, err := rc.redis.Get(ctx, key).Bytes(); err == nil && len(cached) > 0 {
			logger.Debug(ctx).Str("path", r.URL.Path).Str("cache_key", key).Msg("Cache hit")
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached)
			return
		}

		rec := &bodyRecorder{statusRecorder: statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}}
		w.Header().Set("X-Cache", "MISS")
		next(rec, r)

		if rec.statusCode != http.StatusOK {
			return
		}
		if err := rc.redis.Set(ctx, key, rec.body.Bytes(), rc.ttl).Err(); err != nil {
			logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Failed to cache response")
			return
		}
		logger.Debug(ctx).
			Str("path", r.URL.Path).
			Str("cache_key", key).
			Dur("ttl", rc.ttl).
			Int("size", rec.body.Len()).
			Msg("Response cached")
	}
}

// CacheKey hashes the method, path and query of r
func CacheKey(r *http.Request) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s", r.Method, r.URL.Path, r.URL.RawQuery)))
	return "cache:" + hex.EncodeToString(hash[:])
}

type bodyRecorder struct {
	statusRecorder
	body bytes.Buffer
}

func (br *bodyRecorder) Write(p []byte) (int, error) {
	br.body.Write(p)
	return br.ResponseWriter.Write(p)
}
