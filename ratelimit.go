// ratelimit.go
// ------------
// This file defines the RateLimiter type, which holds one token bucket per
// provider and gates every outgoing request against it. The bucket capacity
// and refill rate come from the ProviderConfig given at registration.
//
// Acquire never fails on its own; it only delays the caller until a token is
// available (or the context is cancelled). The bucket count never goes
// negative and never exceeds capacity.
package chatbridge

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
	}
}

// Configure installs the token bucket for a provider. Non-positive values
// mean the provider is not throttled on our side.
func (r *RateLimiter) Configure(provider string, requestsPerSecond float64, burst int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if requestsPerSecond <= 0 || burst <= 0 {
		delete(r.limiters, provider)
		return
	}
	r.limiters[provider] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

// Acquire blocks until a token is available for the provider. Providers
// without a configured bucket proceed immediately.
func (r *RateLimiter) Acquire(ctx context.Context, provider string) error {
	r.mu.Lock()
	limiter, ok := r.limiters[provider]
	r.mu.Unlock()
	if !ok {
		return ctx.Err()
	}
	return limiter.Wait(ctx)
}
