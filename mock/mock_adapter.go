// Package mock provides a scripted ProviderAdapter for exercising the retry
// executor and rate limiter without a network.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/storeops/chatbridge"
)

// Step is one scripted answer: either a response or a transport error.
type Step struct {
	Response *chatbridge.Response
	Err      error
}

// Adapter replays its Steps in order; once exhausted it keeps returning the
// last step. It counts calls so tests can assert attempt ceilings.
type Adapter struct {
	mu    sync.Mutex
	steps []Step
	calls int

	RetryAfterHint time.Duration
}

func NewAdapter(steps ...Step) *Adapter {
	return &Adapter{steps: steps}
}

// RespondStatus is a shorthand for a body-less scripted response.
func RespondStatus(status int) Step {
	return Step{Response: &chatbridge.Response{StatusCode: status, Headers: map[string]string{}}}
}

func (a *Adapter) ExecuteRequest(_ context.Context, _ *chatbridge.Request) (*chatbridge.Response, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	i := a.calls
	a.calls++
	if i >= len(a.steps) {
		i = len(a.steps) - 1
	}
	if i < 0 {
		return &chatbridge.Response{StatusCode: 200, Headers: map[string]string{}}, nil
	}
	step := a.steps[i]
	return step.Response, step.Err
}

func (a *Adapter) IsRateLimitError(resp *chatbridge.Response) bool {
	return resp.StatusCode == 429
}

func (a *Adapter) RetryAfter(_ *chatbridge.Response) time.Duration {
	return a.RetryAfterHint
}

// Calls reports how many times ExecuteRequest ran.
func (a *Adapter) Calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}
