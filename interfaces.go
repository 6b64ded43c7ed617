package chatbridge

import (
	"context"
	"time"
)

// ProviderAdapter defines the interface all provider adapters must implement.
// An adapter owns the transport details of one provider: base URL, auth
// headers, timeouts. It does not retry and does not rate limit; the Bridge
// does both around it.
type ProviderAdapter interface {
	ExecuteRequest(ctx context.Context, req *Request) (*Response, error)

	// IsRateLimitError reports whether the response indicates the provider
	// throttled us. Usually a plain 429 check, but some providers signal
	// throttling through other statuses.
	IsRateLimitError(resp *Response) bool

	// RetryAfter extracts the provider-suggested wait from the response, or 0
	// when the provider gave none.
	RetryAfter(resp *Response) time.Duration
}
