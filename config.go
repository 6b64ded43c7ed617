// config.go
// ----------
// This file defines the ProviderConfig structure, which allows per-provider
// customization of retry behavior, exponential backoff, request timeouts,
// and the outgoing rate budget (token bucket capacity and refill rate).
package chatbridge

import "time"

// ProviderConfig allows per-provider customization of rate limits, retries,
// and other settings. One value is built per provider at startup and passed
// to RegisterProvider; nothing reads the environment at call sites.
type ProviderConfig struct {
	// MaxAttempts is the total number of tries for a single logical request,
	// including the first one. MaxAttempts = 3 means at most 3 calls upstream.
	MaxAttempts int

	// BaseBackoff is the initial wait before the second attempt. Subsequent
	// waits double, capped at MaxBackoff.
	BaseBackoff time.Duration
	MaxBackoff  time.Duration

	// RequestsPerSecond and Burst describe the token bucket gating outgoing
	// requests to this provider. Burst is the bucket capacity; tokens refill
	// at RequestsPerSecond.
	RequestsPerSecond float64
	Burst             int

	// Timeout applies to each individual HTTP call made by the adapter.
	Timeout time.Duration
}

// DefaultProviderConfig returns the settings used when a provider is
// registered without an explicit config.
func DefaultProviderConfig() *ProviderConfig {
	return &ProviderConfig{
		MaxAttempts:       3,
		BaseBackoff:       time.Second,
		MaxBackoff:        30 * time.Second,
		RequestsPerSecond: 2,
		Burst:             4,
		Timeout:           30 * time.Second,
	}
}
