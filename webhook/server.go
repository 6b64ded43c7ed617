package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// HealthChecker reports readiness of a named dependency.
type HealthChecker func(ctx context.Context) error

// NewRouter wires the transport edge: the gateway webhook and a minimal
// health endpoint. Dispatch failures never surface as HTTP errors — the
// gateway retries non-2xx deliveries, and a broken handler would only
// re-trigger the same failure.
func NewRouter(d *Dispatcher, log zerolog.Logger, checks map[string]HealthChecker) http.Handler {
	started := time.Now()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/webhook", func(w http.ResponseWriter, req *http.Request) {
		var ev Event
		if err := json.NewDecoder(req.Body).Decode(&ev); err != nil {
			log.Warn().Err(err).Msg("undecodable webhook payload")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := d.Dispatch(req.Context(), ev); err != nil {
			log.Error().Err(err).Msg("dispatch failed")
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		status := map[string]any{
			"uptime_seconds": int(time.Since(started).Seconds()),
		}
		ready := true
		for name, check := range checks {
			ok := check(ctx) == nil
			status[name] = ok
			ready = ready && ok
		}
		status["ready"] = ready

		w.Header().Set("Content-Type", "application/json")
		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(status)
	})

	return r
}
