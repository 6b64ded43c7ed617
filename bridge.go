// bridge.go
// ---------
// The bridge.go file contains the core Bridge struct and its methods.
// This is the entry point of the access layer used by every provider client.
//
// Key functionalities include:
// - Initializing the layer with NewBridge()
// - Registering providers with RegisterProvider()
// - Issuing requests via bridge.Do()
//
// The Bridge relies on a RateLimiter and a requestExecutor to gate request
// throughput and to retry transient failures, ensuring consistent behavior
// across all providers (commerce platform, tracking provider, messaging
// gateway).
package chatbridge

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

type Bridge struct {
	mu        sync.Mutex
	providers map[string]ProviderAdapter
	configs   map[string]*ProviderConfig

	rateLimiter *RateLimiter
	executor    *requestExecutor
	log         zerolog.Logger
}

func NewBridge(log zerolog.Logger) *Bridge {
	b := &Bridge{
		providers:   make(map[string]ProviderAdapter),
		configs:     make(map[string]*ProviderConfig),
		rateLimiter: NewRateLimiter(),
		log:         log,
	}
	b.executor = newRequestExecutor(b)
	return b
}

// RegisterProvider associates a ProviderAdapter with a provider name and
// configuration. The rate budget from the config is installed immediately so
// the first request is already gated.
func (b *Bridge) RegisterProvider(name string, adapter ProviderAdapter, config *ProviderConfig) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.providers[name] = adapter
	b.configs[name] = config

	b.rateLimiter.Configure(name, config.RequestsPerSecond, config.Burst)
	b.log.Debug().Str("provider", name).
		Float64("rps", config.RequestsPerSecond).
		Int("burst", config.Burst).
		Int("max_attempts", config.MaxAttempts).
		Msg("provider registered")
}

// Do sends a Request to the named provider and returns its Response.
// It uses the requestExecutor to handle rate limiting, retries, and backoff.
// A 404 from the provider surfaces as ErrNotFound; other 4xx statuses as a
// *ClientError without any retry.
func (b *Bridge) Do(ctx context.Context, providerName string, req *Request) (*Response, error) {
	b.mu.Lock()
	adapter, ok := b.providers[providerName]
	b.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("provider %q not registered", providerName)
	}

	return b.executor.execute(ctx, providerName, adapter, req)
}

// getProviderConfig retrieves the ProviderConfig for a given provider, or a
// default if none was registered.
func (b *Bridge) getProviderConfig(providerName string) *ProviderConfig {
	b.mu.Lock()
	defer b.mu.Unlock()

	config, ok := b.configs[providerName]
	if !ok || config == nil {
		return DefaultProviderConfig()
	}
	return config
}
