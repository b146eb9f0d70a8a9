package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"
)

const rateLimiterIdleTTL = 30 * time.Minute

// RateLimiter keeps one token bucket per client key. Idle buckets expire.
type RateLimiter struct {
	buckets *ttlcache.Cache[string, *rate.Limiter]
	rps     rate.Limit
	burst   int
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}

	buckets := ttlcache.New[string, *rate.Limiter](
		ttlcache.WithTTL[string, *rate.Limiter](rateLimiterIdleTTL),
	)
	go buckets.Start()

	return &RateLimiter{
		buckets: buckets,
		rps:     rate.Limit(requestsPerSecond),
		burst:   burst,
	}
}

func (l *RateLimiter) Allow(key string) bool {
	item, _ := l.buckets.GetOrSet(key, rate.NewLimiter(l.rps, l.burst))
	return item.Value().Allow()
}

func (l *RateLimiter) Stop() {
	l.buckets.Stop()
}

func writeRateLimited(ctx context.Context, w http.ResponseWriter) {
	const msg = "rate limit exceeded"

	writeJSON(ctx, w, http.StatusTooManyRequests, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusTooManyRequests,
			Message: msg,
			Status:  "RESOURCE_EXHAUSTED",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "rateLimitExceeded",
					Message: msg,
				},
			},
		},
	})
}
