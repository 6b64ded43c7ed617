package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrFetchRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	fetches := 0
	fetch := func(context.Context) (string, error) {
		fetches++
		return "order-2913", nil
	}

	first, err := GetOrFetch(ctx, store, zerolog.Nop(), "commerce:orders:number:2913", 5*time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, "order-2913", first)

	second, err := GetOrFetch(ctx, store, zerolog.Nop(), "commerce:orders:number:2913", 5*time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, "order-2913", second)

	assert.Equal(t, 1, fetches, "second call must be served from cache")
}

func TestGetOrFetchExpiredEntryRefetches(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	fetches := 0
	fetch := func(context.Context) (int, error) {
		fetches++
		return fetches, nil
	}

	_, err := GetOrFetch(ctx, store, zerolog.Nop(), "k", time.Minute, fetch)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	v, err := GetOrFetch(ctx, store, zerolog.Nop(), "k", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, fetches)
}

func TestGetOrFetchPropagatesFetchErrors(t *testing.T) {
	store := NewMemoryStore()
	wantErr := errors.New("upstream down")

	_, err := GetOrFetch(context.Background(), store, zerolog.Nop(), "k", time.Minute, func(context.Context) (string, error) {
		return "", wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 0, store.Len(), "failures must not be cached")
}

type brokenStore struct{ MemoryStore }

func (b *brokenStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("store offline")
}

func (b *brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store offline")
}

func TestGetOrFetchSurvivesStoreFailure(t *testing.T) {
	v, err := GetOrFetch[string](context.Background(), &brokenStore{}, zerolog.Nop(), "k", time.Minute, func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err, "cache failure must fall back to the fetch")
	assert.Equal(t, "fresh", v)
}

func TestInvalidateRemovesOnlyPrefix(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "commerce:orders:id:1", []byte("a"), 0))
	require.NoError(t, store.Set(ctx, "commerce:orders:number:2913", []byte("b"), 0))
	require.NoError(t, store.Set(ctx, "commerce:products:id:7", []byte("c"), 0))
	require.NoError(t, store.Set(ctx, "tracking:list:tracking", []byte("d"), 0))

	Invalidate(ctx, store, zerolog.Nop(), "commerce:orders")

	_, err := store.Get(ctx, "commerce:orders:id:1")
	assert.ErrorIs(t, err, ErrMiss)
	_, err = store.Get(ctx, "commerce:orders:number:2913")
	assert.ErrorIs(t, err, ErrMiss)

	_, err = store.Get(ctx, "commerce:products:id:7")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "tracking:list:tracking")
	assert.NoError(t, err)
}

func TestQuerySignatureIsDeterministic(t *testing.T) {
	a := QuerySignature(map[string]string{"q": "2913", "per_page": "50", "page": "1"})
	b := QuerySignature(map[string]string{"per_page": "50", "page": "1", "q": "2913"})

	assert.Equal(t, a, b)
	assert.Equal(t, "page=1&per_page=50&q=2913", a)
	assert.Equal(t, "", QuerySignature(nil))
}

func TestKeyJoinsParts(t *testing.T) {
	assert.Equal(t, "commerce:orders:number:2913", Key("commerce", "orders", "number", "2913"))
}
