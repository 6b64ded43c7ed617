package chatbridge_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeops/chatbridge"
	"github.com/storeops/chatbridge/mock"
)

func newTestBridge(t *testing.T, adapter chatbridge.ProviderAdapter, maxAttempts int) *chatbridge.Bridge {
	t.Helper()
	b := chatbridge.NewBridge(zerolog.Nop())
	b.RegisterProvider("test", adapter, &chatbridge.ProviderConfig{
		MaxAttempts: maxAttempts,
		BaseBackoff: time.Millisecond,
		MaxBackoff:  5 * time.Millisecond,
	})
	return b
}

func TestExecuteRetriesServerErrorsUntilExhausted(t *testing.T) {
	adapter := mock.NewAdapter(mock.RespondStatus(500))
	b := newTestBridge(t, adapter, 3)

	_, err := b.Do(context.Background(), "test", &chatbridge.Request{Method: http.MethodGet, Endpoint: "/orders"})

	var exhausted *chatbridge.RetriesExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.Equal(t, 3, adapter.Calls())

	var serverErr *chatbridge.ServerError
	assert.ErrorAs(t, exhausted.Err, &serverErr)
	assert.Equal(t, 500, serverErr.Status)
}

func TestExecuteDoesNotRetryNotFound(t *testing.T) {
	adapter := mock.NewAdapter(mock.RespondStatus(404))
	b := newTestBridge(t, adapter, 3)

	_, err := b.Do(context.Background(), "test", &chatbridge.Request{Method: http.MethodGet, Endpoint: "/orders/99"})

	require.ErrorIs(t, err, chatbridge.ErrNotFound)
	assert.Equal(t, 1, adapter.Calls())
}

func TestExecuteDoesNotRetryClientErrors(t *testing.T) {
	adapter := mock.NewAdapter(mock.Step{Response: &chatbridge.Response{StatusCode: 422, Data: []byte(`{"message":"invalid"}`)}})
	b := newTestBridge(t, adapter, 3)

	_, err := b.Do(context.Background(), "test", &chatbridge.Request{Method: http.MethodPost, Endpoint: "/orders"})

	var clientErr *chatbridge.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, 422, clientErr.Status)
	assert.Equal(t, 1, adapter.Calls())
}

func TestExecuteRetriesRateLimitThenSucceeds(t *testing.T) {
	adapter := mock.NewAdapter(mock.RespondStatus(429), mock.RespondStatus(200))
	adapter.RetryAfterHint = time.Millisecond
	b := newTestBridge(t, adapter, 3)

	resp, err := b.Do(context.Background(), "test", &chatbridge.Request{Method: http.MethodGet, Endpoint: "/orders"})

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 2, adapter.Calls())
}

func TestExecuteRetriesNetworkErrors(t *testing.T) {
	netErr := errors.New("connection reset by peer")
	adapter := mock.NewAdapter(mock.Step{Err: netErr}, mock.RespondStatus(200))
	b := newTestBridge(t, adapter, 3)

	resp, err := b.Do(context.Background(), "test", &chatbridge.Request{Method: http.MethodGet, Endpoint: "/orders"})

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 2, adapter.Calls())
}

func TestExecuteUnknownProvider(t *testing.T) {
	b := chatbridge.NewBridge(zerolog.Nop())
	_, err := b.Do(context.Background(), "nope", &chatbridge.Request{Method: http.MethodGet, Endpoint: "/"})
	require.Error(t, err)
}

func TestExecuteStopsOnCancelledContext(t *testing.T) {
	adapter := mock.NewAdapter(mock.RespondStatus(500))
	b := chatbridge.NewBridge(zerolog.Nop())
	b.RegisterProvider("test", adapter, &chatbridge.ProviderConfig{
		MaxAttempts: 5,
		BaseBackoff: time.Hour, // cancellation must win, never the backoff
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := b.Do(ctx, "test", &chatbridge.Request{Method: http.MethodGet, Endpoint: "/orders"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, adapter.Calls())
}
