// pagination.go
// -------------
// Helpers for walking paginated list endpoints and for splitting identifier
// sets into provider-sized batches. Pages are requested strictly in
// increasing order and results keep the provider's ordering.
package chatbridge

import (
	"context"
	"time"
)

// Page is one page of a list response. Total is the provider-reported total
// item count when known, or 0 when the provider does not expose one.
type Page[T any] struct {
	Items []T
	Total int
}

// ListFunc fetches one page. Pages are numbered from 1.
type ListFunc[T any] func(ctx context.Context, page, pageSize int) (Page[T], error)

// FetchAllPages accumulates every page of a list endpoint. It stops when the
// provider-reported total is reached, or when a page comes back shorter than
// pageSize (a full page means there may be more). An empty first page yields
// an empty slice after exactly one call.
//
// delay, when positive, is inserted between page requests to stay polite
// toward providers that are not otherwise rate limited.
func FetchAllPages[T any](ctx context.Context, fn ListFunc[T], pageSize int, delay time.Duration) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		if page > 1 && delay > 0 {
			if err := sleepCtx(ctx, delay); err != nil {
				return nil, err
			}
		}
		p, err := fn(ctx, page, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, p.Items...)
		if p.Total > 0 && len(all) >= p.Total {
			break
		}
		if len(p.Items) < pageSize {
			break
		}
	}
	return all, nil
}

// SplitBatches cuts items into consecutive slices of at most size elements.
// Used for providers with a batch ceiling on bulk endpoints.
func SplitBatches[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	batches := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}
