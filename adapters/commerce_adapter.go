// commerce_adapter.go
// -------------------
// Adapter for the commerce platform REST API (Nuvemshop-style). Endpoints are
// rooted under /v1/{storeID}; authentication uses an "Authentication: bearer"
// header and the platform requires an identifying User-Agent on every call.
//
// Key points:
// - List endpoints accept page, per_page (max 200) and a free-text q filter.
// - Responses carry X-Total-Count and a Link header for pagination; both are
//   surfaced to the client untouched via the normalized response headers.
// - 429 responses include a Retry-After (or x-rate-limit-reset) hint that we
//   hand back to the retry executor.
package adapters

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/storeops/chatbridge"
	"github.com/storeops/chatbridge/internal/headerutil"
)

type CommerceAdapter struct {
	BaseURL     string
	StoreID     string
	AccessToken string
	UserAgent   string

	client *http.Client
}

func NewCommerceAdapter(baseURL, storeID, accessToken, userAgent string, timeout time.Duration) *CommerceAdapter {
	return &CommerceAdapter{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		StoreID:     storeID,
		AccessToken: accessToken,
		UserAgent:   userAgent,
		client:      &http.Client{Timeout: timeout},
	}
}

func (c *CommerceAdapter) ExecuteRequest(ctx context.Context, req *chatbridge.Request) (*chatbridge.Response, error) {
	fullURL := c.BaseURL + "/" + c.StoreID + req.Endpoint

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, err
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("Authentication", "bearer "+c.AccessToken)
	httpReq.Header.Set("User-Agent", c.UserAgent)
	if httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	headers := make(map[string]string)
	for k, vals := range resp.Header {
		if len(vals) > 0 {
			headers[strings.ToLower(k)] = vals[0]
		}
	}

	return &chatbridge.Response{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Data:       data,
	}, nil
}

func (c *CommerceAdapter) IsRateLimitError(resp *chatbridge.Response) bool {
	return resp.StatusCode == 429
}

func (c *CommerceAdapter) RetryAfter(resp *chatbridge.Response) time.Duration {
	if d := headerutil.ParseRetryAfter(resp.Header("retry-after")); d > 0 {
		return d
	}
	return headerutil.ParseRetryAfter(resp.Header("x-rate-limit-reset"))
}
