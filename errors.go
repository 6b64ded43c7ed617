package chatbridge

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the provider answers 404. Lookup call sites
// translate it to an absent (nil) result; mutation call sites propagate it.
var ErrNotFound = errors.New("resource not found")

// ErrMalformedResponse wraps decode failures of provider payloads. Clients
// return it instead of letting half-decoded values leak out.
var ErrMalformedResponse = errors.New("malformed provider response")

// ClientError is a non-retryable 4xx answer (other than 404, which maps to
// ErrNotFound, and 429, which is retried).
type ClientError struct {
	Status int
	Body   string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("client error: status %d", e.Status)
}

// ServerError is a 5xx answer. It is retried; callers only see it wrapped
// inside a RetriesExhaustedError.
type ServerError struct {
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: status %d", e.Status)
}

// RateLimitedError is a 429 answer that survived all retries.
type RateLimitedError struct {
	Status int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited: status %d", e.Status)
}

// RetriesExhaustedError reports that every attempt failed with a retryable
// error. Err holds the last underlying failure.
type RetriesExhaustedError struct {
	Attempts int
	Err      error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("request failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetriesExhaustedError) Unwrap() error { return e.Err }
