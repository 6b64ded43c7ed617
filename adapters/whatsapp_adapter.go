// whatsapp_adapter.go
// -------------------
// Adapter for the WhatsApp messaging gateway. Authenticates with a Bearer
// token and appends the instance connectionKey as a query parameter on every
// endpoint, as the gateway requires.
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

type WhatsAppAdapter struct {
	BaseURL       string
	Token         string
	ConnectionKey string

	client *http.Client
}

func NewWhatsAppAdapter(baseURL, token, connectionKey string, timeout time.Duration) *WhatsAppAdapter {
	return &WhatsAppAdapter{
		BaseURL:       strings.TrimRight(baseURL, "/"),
		Token:         token,
		ConnectionKey: connectionKey,
		client:        &http.Client{Timeout: timeout},
	}
}

func (w *WhatsAppAdapter) ExecuteRequest(ctx context.Context, req *chatbridge.Request) (*chatbridge.Response, error) {
	fullURL := w.BaseURL + req.Endpoint
	if strings.Contains(fullURL, "?") {
		fullURL += "&connectionKey=" + w.ConnectionKey
	} else {
		fullURL += "?connectionKey=" + w.ConnectionKey
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, err
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("Authorization", "Bearer "+w.Token)
	if httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := w.client.Do(httpReq)
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

func (w *WhatsAppAdapter) IsRateLimitError(resp *chatbridge.Response) bool {
	return resp.StatusCode == 429
}

func (w *WhatsAppAdapter) RetryAfter(resp *chatbridge.Response) time.Duration {
	return headerutil.ParseRetryAfter(resp.Header("retry-after"))
}
