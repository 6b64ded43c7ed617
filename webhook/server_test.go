package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookEndpointDispatches(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, zerolog.Nop())
	d.On(KindText, HandlerFunc(func(_ context.Context, ev Event) (string, error) {
		return "ok: " + ev.Message.Conversation, nil
	}))
	router := NewRouter(d, zerolog.Nop(), nil)

	body := `{"sender":"5511999990000","message":{"conversation":"oi"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, sender.text, 1)
	assert.Equal(t, "ok: oi", sender.text[0])
}

func TestWebhookEndpointRejectsGarbage(t *testing.T) {
	d := NewDispatcher(&recordingSender{}, zerolog.Nop())
	router := NewRouter(d, zerolog.Nop(), nil)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthzReady(t *testing.T) {
	d := NewDispatcher(&recordingSender{}, zerolog.Nop())
	router := NewRouter(d, zerolog.Nop(), map[string]HealthChecker{
		"redis": func(context.Context) error { return nil },
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var status map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, true, status["ready"])
	assert.Equal(t, true, status["redis"])
}

func TestHealthzDependencyDown(t *testing.T) {
	d := NewDispatcher(&recordingSender{}, zerolog.Nop())
	router := NewRouter(d, zerolog.Nop(), map[string]HealthChecker{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var status map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, false, status["ready"])
}
