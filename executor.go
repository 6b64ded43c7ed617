// executor.go
// -----------
// The requestExecutor wraps a single provider call with a bounded retry loop.
// It consults the RateLimiter before every attempt, classifies failures as
// retryable (network errors, 429, 5xx) or fatal (other 4xx), and waits
// between attempts using exponential backoff, honoring a provider-supplied
// retry-after hint when one is present.
//
// The loop is explicit with an attempt counter so the ceiling is trivially
// provable; it never recurses.
package chatbridge

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type requestExecutor struct {
	bridge *Bridge
}

func newRequestExecutor(b *Bridge) *requestExecutor {
	return &requestExecutor{bridge: b}
}

func (e *requestExecutor) execute(ctx context.Context, providerName string, adapter ProviderAdapter, req *Request) (*Response, error) {
	config := e.bridge.getProviderConfig(providerName)
	maxAttempts := config.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	log := e.bridge.log.With().Str("provider", providerName).Str("endpoint", req.Endpoint).Logger()

	bo := backoff.NewExponentialBackOff()
	if config.BaseBackoff > 0 {
		bo.InitialInterval = config.BaseBackoff
	}
	if config.MaxBackoff > 0 {
		bo.MaxInterval = config.MaxBackoff
	}
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0
	bo.Reset()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := e.bridge.rateLimiter.Acquire(ctx, providerName); err != nil {
			return nil, err
		}

		resp, err := adapter.ExecuteRequest(ctx, req)
		if err != nil {
			// Network-level failure (timeout, connection reset): retryable.
			lastErr = err
			if attempt == maxAttempts {
				break
			}
			wait := bo.NextBackOff()
			log.Warn().Err(err).Int("attempt", attempt).Dur("backoff", wait).Msg("request failed, retrying")
			if err := sleepCtx(ctx, wait); err != nil {
				return nil, err
			}
			continue
		}

		if adapter.IsRateLimitError(resp) {
			lastErr = &RateLimitedError{Status: resp.StatusCode}
			if attempt == maxAttempts {
				break
			}
			wait := adapter.RetryAfter(resp)
			if wait <= 0 {
				wait = bo.NextBackOff()
			}
			log.Warn().Int("status", resp.StatusCode).Int("attempt", attempt).Dur("backoff", wait).Msg("rate limited, retrying")
			if err := sleepCtx(ctx, wait); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = &ServerError{Status: resp.StatusCode}
			if attempt == maxAttempts {
				break
			}
			wait := bo.NextBackOff()
			log.Warn().Int("status", resp.StatusCode).Int("attempt", attempt).Dur("backoff", wait).Msg("server error, retrying")
			if err := sleepCtx(ctx, wait); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode == 404 {
			return nil, ErrNotFound
		}
		if resp.StatusCode >= 400 {
			log.Debug().Int("status", resp.StatusCode).Msg("client error, not retrying")
			return nil, &ClientError{Status: resp.StatusCode, Body: string(resp.Data)}
		}

		if attempt > 1 {
			log.Debug().Int("attempts", attempt).Msg("request succeeded after retries")
		}
		return resp, nil
	}

	log.Error().Err(lastErr).Int("attempts", maxAttempts).Msg("retries exhausted")
	return nil, &RetriesExhaustedError{Attempts: maxAttempts, Err: lastErr}
}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
