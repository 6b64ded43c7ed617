// Package tracking is the typed client for the shipment-tracking provider.
// The provider is POST-only, authenticates with an API-key header (wired in
// the adapter), pages track lists in blocks of 40, and caps bulk detail
// requests at 40 identifiers per call.
package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/storeops/chatbridge"
	"github.com/storeops/chatbridge/cache"
)

// ProviderName is the registration key on the Bridge.
const ProviderName = "tracking"

const (
	listPath = "/track/v2.2/gettracklist"
	infoPath = "/track/v2.2/gettrackinfo"

	// The provider rejects larger pages and batches.
	pageSize  = 40
	batchSize = 40
)

const cachePrefix = "tracking"

type Config struct {
	// BatchDelay spaces out consecutive batch/page calls.
	BatchDelay time.Duration
	// ListTTL is the cache lifetime of the full track list.
	ListTTL time.Duration
}

func (c Config) withDefaults() Config {
	if c.BatchDelay <= 0 {
		c.BatchDelay = time.Second
	}
	if c.ListTTL <= 0 {
		c.ListTTL = 10 * time.Minute
	}
	return c
}

type Client struct {
	bridge *chatbridge.Bridge
	store  cache.Store
	cfg    Config
	log    zerolog.Logger
}

func NewClient(bridge *chatbridge.Bridge, store cache.Store, cfg Config, log zerolog.Logger) *Client {
	return &Client{
		bridge: bridge,
		store:  store,
		cfg:    cfg.withDefaults(),
		log:    log.With().Str("client", ProviderName).Logger(),
	}
}

// ListTrackings returns every shipment the provider is actively tracking,
// walking the list in pages of 40, newest registrations first.
func (c *Client) ListTrackings(ctx context.Context) ([]TrackingSummary, error) {
	key := cache.Key(cachePrefix, "list", "tracking")
	return cache.GetOrFetch(ctx, c.store, c.log, key, c.cfg.ListTTL, func(ctx context.Context) ([]TrackingSummary, error) {
		return chatbridge.FetchAllPages(ctx, c.listPage, pageSize, c.cfg.BatchDelay)
	})
}

func (c *Client) listPage(ctx context.Context, page, size int) (chatbridge.Page[TrackingSummary], error) {
	body, err := json.Marshal(map[string]any{
		"tracking_status": "Tracking",
		"page_no":         page,
		"page_size":       size,
		"order_by":        "RegisterTimeDesc",
	})
	if err != nil {
		return chatbridge.Page[TrackingSummary]{}, err
	}
	resp, err := c.bridge.Do(ctx, ProviderName, &chatbridge.Request{
		Method:   http.MethodPost,
		Endpoint: listPath,
		Body:     body,
	})
	if err != nil {
		return chatbridge.Page[TrackingSummary]{}, err
	}

	env, data, err := decodeEnvelope[listData](resp.Data)
	if err != nil {
		return chatbridge.Page[TrackingSummary]{}, err
	}
	p := chatbridge.Page[TrackingSummary]{Items: data.Accepted}
	if env.Page != nil {
		p.Total = env.Page.DataTotal
	}
	c.log.Debug().Int("page", page).Int("items", len(p.Items)).Int("total", p.Total).Msg("track list page fetched")
	return p, nil
}

// GetTrackInfo fetches full event detail for the given shipments, splitting
// the request into provider-sized batches with a pause between them.
func (c *Client) GetTrackInfo(ctx context.Context, refs []TrackingRef) ([]TrackInfo, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	var details []TrackInfo
	batches := chatbridge.SplitBatches(refs, batchSize)
	for i, batch := range batches {
		if i > 0 {
			if err := sleep(ctx, c.cfg.BatchDelay); err != nil {
				return nil, err
			}
		}
		body, err := json.Marshal(batch)
		if err != nil {
			return nil, err
		}
		resp, err := c.bridge.Do(ctx, ProviderName, &chatbridge.Request{
			Method:   http.MethodPost,
			Endpoint: infoPath,
			Body:     body,
		})
		if err != nil {
			return nil, err
		}
		_, data, err := decodeEnvelope[infoData](resp.Data)
		if err != nil {
			return nil, err
		}
		for _, rej := range data.Rejected {
			c.log.Warn().Str("number", rej.Number).Int("code", rej.Error.Code).Str("reason", rej.Error.Message).Msg("tracking number rejected")
		}
		details = append(details, data.Accepted...)
	}
	return details, nil
}

// Refs converts list rows into the identifiers the detail endpoint expects.
func Refs(summaries []TrackingSummary) []TrackingRef {
	refs := make([]TrackingRef, 0, len(summaries))
	for _, s := range summaries {
		refs = append(refs, TrackingRef{Number: s.Number, Carrier: s.Carrier})
	}
	return refs
}

func decodeEnvelope[T any](raw []byte) (*envelope, T, error) {
	var zero T
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, zero, fmt.Errorf("%w: %v", chatbridge.ErrMalformedResponse, err)
	}
	if env.Code != 0 {
		return nil, zero, &APIError{Code: env.Code, Message: env.Message}
	}
	var data T
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, zero, fmt.Errorf("%w: %v", chatbridge.ErrMalformedResponse, err)
		}
	}
	return &env, data, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
