package chatbridge_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeops/chatbridge"
)

// pagedSource serves scripted page sizes, e.g. [40, 40, 40, 7].
func pagedSource(sizes []int) (chatbridge.ListFunc[int], *int) {
	calls := new(int)
	return func(_ context.Context, page, pageSize int) (chatbridge.Page[int], error) {
		*calls++
		if page > len(sizes) {
			return chatbridge.Page[int]{}, nil
		}
		items := make([]int, sizes[page-1])
		for i := range items {
			items[i] = (page-1)*pageSize + i
		}
		return chatbridge.Page[int]{Items: items}, nil
	}, calls
}

func TestFetchAllPagesStopsOnShortPage(t *testing.T) {
	fn, calls := pagedSource([]int{40, 40, 40, 7})

	items, err := chatbridge.FetchAllPages(context.Background(), fn, 40, 0)

	require.NoError(t, err)
	assert.Len(t, items, 3*40+7)
	assert.Equal(t, 4, *calls)
	// Ordering is preserved across pages.
	for i, v := range items {
		assert.Equal(t, i, v)
	}
}

func TestFetchAllPagesEmptyFirstPage(t *testing.T) {
	fn, calls := pagedSource([]int{0})

	items, err := chatbridge.FetchAllPages(context.Background(), fn, 40, 0)

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 1, *calls)
}

func TestFetchAllPagesStopsAtExplicitTotal(t *testing.T) {
	calls := 0
	fn := func(_ context.Context, page, pageSize int) (chatbridge.Page[int], error) {
		calls++
		items := make([]int, pageSize)
		return chatbridge.Page[int]{Items: items, Total: 2 * pageSize}, nil
	}

	items, err := chatbridge.FetchAllPages(context.Background(), fn, 40, 0)

	require.NoError(t, err)
	assert.Len(t, items, 80)
	assert.Equal(t, 2, calls)
}

func TestFetchAllPagesPropagatesErrors(t *testing.T) {
	fn := func(_ context.Context, page, pageSize int) (chatbridge.Page[int], error) {
		if page == 2 {
			return chatbridge.Page[int]{}, fmt.Errorf("page %d unavailable", page)
		}
		return chatbridge.Page[int]{Items: make([]int, pageSize)}, nil
	}

	_, err := chatbridge.FetchAllPages(context.Background(), fn, 10, 0)
	require.Error(t, err)
}

func TestSplitBatches(t *testing.T) {
	items := make([]string, 45)
	batches := chatbridge.SplitBatches(items, 40)

	require.Len(t, batches, 2)
	assert.Len(t, batches[0], 40)
	assert.Len(t, batches[1], 5)

	assert.Nil(t, chatbridge.SplitBatches([]string{}, 40))
	assert.Len(t, chatbridge.SplitBatches(make([]string, 40), 40), 1)
}
