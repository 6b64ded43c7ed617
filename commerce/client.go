// Package commerce is the typed client for the commerce platform REST API.
// Reads go through the cache-aside layer; lookups resolve a provider 404 to
// an absent (nil) result, mutations propagate it as an error and invalidate
// the affected cache prefix.
package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/storeops/chatbridge"
	"github.com/storeops/chatbridge/cache"
	"github.com/storeops/chatbridge/internal/headerutil"
)

// ProviderName is the registration key on the Bridge.
const ProviderName = "commerce"

// maxPageSize is the provider's per_page ceiling.
const maxPageSize = 200

// cachePrefix namespaces every commerce cache key.
const cachePrefix = "commerce"

// ErrInvalidOrderNumber rejects lookups before any network call is made.
var ErrInvalidOrderNumber = errors.New("order number must contain only digits")

type Config struct {
	// PageSize used on list endpoints, capped at the provider ceiling.
	PageSize int
	// OrderTTL is the cache lifetime of single-order lookups.
	OrderTTL time.Duration
	// ListTTL is the cache lifetime of search/list results.
	ListTTL time.Duration
	// PageDelay spaces out consecutive page requests on full list walks.
	PageDelay time.Duration
}

func (c Config) withDefaults() Config {
	if c.PageSize <= 0 || c.PageSize > maxPageSize {
		c.PageSize = 50
	}
	if c.OrderTTL <= 0 {
		c.OrderTTL = 5 * time.Minute
	}
	if c.ListTTL <= 0 {
		c.ListTTL = 5 * time.Minute
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

// GetOrder fetches one order by its platform id. Returns (nil, nil) when the
// order does not exist.
func (c *Client) GetOrder(ctx context.Context, id int64) (*Order, error) {
	key := cache.Key(cachePrefix, "orders", "id", strconv.FormatInt(id, 10))
	return absentOnNotFound(cache.GetOrFetch(ctx, c.store, c.log, key, c.cfg.OrderTTL, func(ctx context.Context) (*Order, error) {
		resp, err := c.bridge.Do(ctx, ProviderName, &chatbridge.Request{
			Method:   http.MethodGet,
			Endpoint: fmt.Sprintf("/orders/%d", id),
		})
		if err != nil {
			return nil, err
		}
		return decode[*Order](resp.Data)
	}))
}

// GetOrderByNumber resolves the store-facing order number customers quote in
// chat. The platform only exposes free-text search, so the match against the
// number is re-checked exactly here — "2913" must not match order 29130.
// Returns (nil, nil) when no order carries that number.
func (c *Client) GetOrderByNumber(ctx context.Context, number string) (*Order, error) {
	if !digitsOnly(number) {
		return nil, ErrInvalidOrderNumber
	}

	key := cache.Key(cachePrefix, "orders", "number", number)
	return absentOnNotFound(cache.GetOrFetch(ctx, c.store, c.log, key, c.cfg.OrderTTL, func(ctx context.Context) (*Order, error) {
		q := url.Values{}
		q.Set("q", number)
		q.Set("per_page", strconv.Itoa(c.cfg.PageSize))
		resp, err := c.bridge.Do(ctx, ProviderName, &chatbridge.Request{
			Method:   http.MethodGet,
			Endpoint: "/orders?" + q.Encode(),
		})
		if err != nil {
			return nil, err
		}
		orders, err := decode[[]Order](resp.Data)
		if err != nil {
			return nil, err
		}
		want, _ := strconv.ParseInt(number, 10, 64)
		for i := range orders {
			if orders[i].Number == want {
				return &orders[i], nil
			}
		}
		return nil, chatbridge.ErrNotFound
	}))
}

// ListOrders walks every page of /orders for the given status filter
// ("any" disables the filter). The provider's X-Total-Count header, when
// present, bounds the walk; otherwise a short page ends it.
func (c *Client) ListOrders(ctx context.Context, status string) ([]Order, error) {
	return chatbridge.FetchAllPages(ctx, func(ctx context.Context, page, pageSize int) (chatbridge.Page[Order], error) {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(pageSize))
		if status != "" {
			q.Set("status", status)
		}
		resp, err := c.bridge.Do(ctx, ProviderName, &chatbridge.Request{
			Method:   http.MethodGet,
			Endpoint: "/orders?" + q.Encode(),
		})
		if err != nil {
			return chatbridge.Page[Order]{}, err
		}
		orders, err := decode[[]Order](resp.Data)
		if err != nil {
			return chatbridge.Page[Order]{}, err
		}
		total, _ := strconv.Atoi(resp.Header("x-total-count"))
		if total == 0 {
			// Fall back to the Link header: no rel="next" means last page.
			if links := headerutil.ParseLink(resp.Header("link")); links["next"] == "" && len(orders) == pageSize {
				total = (page-1)*pageSize + len(orders)
			}
		}
		return chatbridge.Page[Order]{Items: orders, Total: total}, nil
	}, c.cfg.PageSize, c.cfg.PageDelay)
}

// GetProduct returns (nil, nil) when the product does not exist.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	key := cache.Key(cachePrefix, "products", "id", strconv.FormatInt(id, 10))
	return absentOnNotFound(cache.GetOrFetch(ctx, c.store, c.log, key, c.cfg.OrderTTL, func(ctx context.Context) (*Product, error) {
		resp, err := c.bridge.Do(ctx, ProviderName, &chatbridge.Request{
			Method:   http.MethodGet,
			Endpoint: fmt.Sprintf("/products/%d", id),
		})
		if err != nil {
			return nil, err
		}
		return decode[*Product](resp.Data)
	}))
}

// SearchProducts runs a free-text product search, cached per normalized
// query signature.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	params := map[string]string{
		"q":        query,
		"per_page": strconv.Itoa(c.cfg.PageSize),
	}
	key := cache.Key(cachePrefix, "products", "search", cache.QuerySignature(params))
	return cache.GetOrFetch(ctx, c.store, c.log, key, c.cfg.ListTTL, func(ctx context.Context) ([]Product, error) {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		resp, err := c.bridge.Do(ctx, ProviderName, &chatbridge.Request{
			Method:   http.MethodGet,
			Endpoint: "/products?" + q.Encode(),
		})
		if err != nil {
			return nil, err
		}
		return decode[[]Product](resp.Data)
	})
}

// GetCustomer returns (nil, nil) when the customer does not exist.
func (c *Client) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	key := cache.Key(cachePrefix, "customers", "id", strconv.FormatInt(id, 10))
	return absentOnNotFound(cache.GetOrFetch(ctx, c.store, c.log, key, c.cfg.OrderTTL, func(ctx context.Context) (*Customer, error) {
		resp, err := c.bridge.Do(ctx, ProviderName, &chatbridge.Request{
			Method:   http.MethodGet,
			Endpoint: fmt.Sprintf("/customers/%d", id),
		})
		if err != nil {
			return nil, err
		}
		return decode[*Customer](resp.Data)
	}))
}

// UpdateOrder is a mutation: a 404 is an error here, and a successful update
// invalidates every cached order entry so later reads see the new state.
func (c *Client) UpdateOrder(ctx context.Context, id int64, changes OrderChanges) (*Order, error) {
	body, err := json.Marshal(changes)
	if err != nil {
		return nil, err
	}
	resp, err := c.bridge.Do(ctx, ProviderName, &chatbridge.Request{
		Method:   http.MethodPut,
		Endpoint: fmt.Sprintf("/orders/%d", id),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	order, err := decode[*Order](resp.Data)
	if err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, c.store, c.log, cache.Key(cachePrefix, "orders"))
	return order, nil
}

func decode[T any](data []byte) (T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("%w: %v", chatbridge.ErrMalformedResponse, err)
	}
	return out, nil
}

// absentOnNotFound applies the lookup contract: ErrNotFound becomes a nil
// result with no error.
func absentOnNotFound[T any](v *T, err error) (*T, error) {
	if errors.Is(err, chatbridge.ErrNotFound) {
		return nil, nil
	}
	return v, err
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
