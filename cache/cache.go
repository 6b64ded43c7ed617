// Package cache implements the cache-aside layer in front of the provider
// clients. Values are JSON-serialized and stored in a key/value store with a
// TTL; keys are deterministic so that the same logical request always maps to
// the same entry and prefix invalidation reaches every related entry.
//
// Store failures are deliberately non-fatal: a broken cache degrades to
// calling the upstream fetch directly, logged but never propagated.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrMiss is returned by Store.Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Store is the key/value surface the accessor needs. Implementations:
// RedisStore (production) and MemoryStore (tests, local development).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
	Ping(ctx context.Context) error
}

// Key joins namespace parts with ":" — provider, resource, identifier.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// QuerySignature renders query parameters as a stable "k=v&k=v" string with
// sorted keys, so two identical logical requests share one cache entry.
func QuerySignature(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	return strings.Join(pairs, "&")
}

// GetOrFetch looks key up in store; on a hit it decodes the cached JSON, on a
// miss it runs fetch, stores the result with ttl, and returns it.
//
// Two concurrent misses for the same key may both run fetch; the duplicate
// upstream call is accepted since fetches are idempotent reads.
func GetOrFetch[T any](ctx context.Context, store Store, log zerolog.Logger, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	raw, err := store.Get(ctx, key)
	if err == nil {
		var cached T
		if uerr := json.Unmarshal(raw, &cached); uerr == nil {
			log.Debug().Str("key", key).Msg("cache hit")
			return cached, nil
		}
		// Undecodable entry: treat as miss and overwrite below.
		log.Warn().Str("key", key).Msg("cache entry undecodable, refetching")
	} else if !errors.Is(err, ErrMiss) {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to fetch")
	}

	value, err := fetch(ctx)
	if err != nil {
		return zero, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return zero, fmt.Errorf("encode cache value for %s: %w", key, err)
	}
	if serr := store.Set(ctx, key, encoded, ttl); serr != nil {
		log.Warn().Err(serr).Str("key", key).Msg("cache write failed")
	} else {
		log.Debug().Str("key", key).Dur("ttl", ttl).Msg("cache populated")
	}
	return value, nil
}

// Invalidate removes every entry under prefix. Used after mutating
// operations so stale reads are not served for the full TTL.
func Invalidate(ctx context.Context, store Store, log zerolog.Logger, prefix string) {
	n, err := store.DeleteByPrefix(ctx, prefix)
	if err != nil {
		log.Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation failed")
		return
	}
	log.Debug().Str("prefix", prefix).Int("deleted", n).Msg("cache invalidated")
}
