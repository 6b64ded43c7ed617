// tracking_adapter.go
// -------------------
// Adapter for the shipment tracking provider (17track-style API). All
// endpoints are POST and authentication uses the provider's "17token"
// header. Application-level failures arrive as {code != 0} envelopes with
// HTTP 200; decoding those is the tracking client's job, not the adapter's.
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

type TrackingAdapter struct {
	BaseURL string
	APIKey  string

	client *http.Client
}

func NewTrackingAdapter(baseURL, apiKey string, timeout time.Duration) *TrackingAdapter {
	return &TrackingAdapter{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (t *TrackingAdapter) ExecuteRequest(ctx context.Context, req *chatbridge.Request) (*chatbridge.Response, error) {
	fullURL := t.BaseURL + req.Endpoint

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, err
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("17token", t.APIKey)
	if httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(httpReq)
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

func (t *TrackingAdapter) IsRateLimitError(resp *chatbridge.Response) bool {
	return resp.StatusCode == 429
}

func (t *TrackingAdapter) RetryAfter(resp *chatbridge.Response) time.Duration {
	return headerutil.ParseRetryAfter(resp.Header("retry-after"))
}
