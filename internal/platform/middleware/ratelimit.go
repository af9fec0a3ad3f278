// Copyright (c) 2026 FutureKey. All rights reserved.

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/apperr"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/constants"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/ctxutil"
	"github.com/huyhoang189/futurekey-be-sub002/internal/platform/respond"
)

// # Rate Limiting

// Limiter decides whether the client identified by key may proceed.
//
// retryAfter is only meaningful when allowed is false.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// RateLimit rejects requests with 429 once the client IP exhausts its quota.
//
// Limiter failures fail open: the request proceeds and a warning is logged.
func RateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			allowed, retryAfter, err := limiter.Allow(request.Context(), RealIP(request))
			if err != nil {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "rate_limiter_unavailable",
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(writer, request)
				return
			}

			if !allowed {
				seconds := max(1, int(math.Ceil(retryAfter.Seconds())))
				writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(seconds))
				respond.Error(writer, request, apperr.RateLimited(seconds))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Process-Local Limiter

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter is a per-key token bucket held in process memory.
type LocalLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitClient
	rps     rate.Limit
	burst   int
}

// NewLocalLimiter builds a token-bucket limiter allowing rps sustained and burst peak.
func NewLocalLimiter(rps float64, burst int) *LocalLimiter {
	return &LocalLimiter{
		clients: make(map[string]*rateLimitClient),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

// Allow implements [Limiter]. It never fails.
func (limiter *LocalLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	client, found := limiter.clients[key]
	if !found {
		client = &rateLimitClient{limiter: rate.NewLimiter(limiter.rps, limiter.burst)}
		limiter.clients[key] = client
	}
	client.lastSeen = time.Now()

	reservation := client.limiter.Reserve()
	if delay := reservation.Delay(); delay > 0 {
		reservation.Cancel()
		return false, delay, nil
	}
	return true, 0, nil
}

// Run evicts idle clients until ctx is cancelled.
func (limiter *LocalLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(constants.RateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			limiter.evict(time.Now())
		case <-ctx.Done():
			return
		}
	}
}

func (limiter *LocalLimiter) evict(now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	for key, client := range limiter.clients {
		if now.Sub(client.lastSeen) > constants.RateLimitClientTTL {
			delete(limiter.clients, key)
		}
	}
}

// # Distributed Limiter

// RedisLimiter is a fixed-window counter shared by every API replica.
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRedisLimiter allows limit requests per window for each key.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: int64(limit), window: window}
}

// Allow implements [Limiter] with INCR and a window-long expiry on first hit.
func (limiter *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := constants.RedisPrefixRateLimit + key

	var count *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := limiter.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, limiter.window)
		ttl = pipe.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("ratelimit: redis pipeline failed: %w", err)
	}

	if count.Val() > limiter.limit {
		retryAfter := ttl.Val()
		if retryAfter <= 0 {
			retryAfter = limiter.window
		}
		return false, retryAfter, nil
	}
	return true, 0, nil
}
