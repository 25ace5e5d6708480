package reports

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestFetchJSONPopulatesAndHits(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	key, err := cache.BuildKey(ctx, "reports", "vouchers", "company-1")
	require.NoError(t, err)

	loads := 0
	loader := func(context.Context) (any, error) {
		loads++
		return []VoucherSummary{{ID: "v-1", VoucherNumber: 1}}, nil
	}

	var first []VoucherSummary
	require.NoError(t, cache.FetchJSON(ctx, key, &first, loader))
	require.Len(t, first, 1)
	require.Equal(t, 1, loads)

	var second []VoucherSummary
	require.NoError(t, cache.FetchJSON(ctx, key, &second, loader))
	require.Equal(t, first, second)
	require.Equal(t, 1, loads)
}

func TestBumpInvalidatesKeys(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	before, err := cache.BuildKey(ctx, "reports", "vouchers", "company-1")
	require.NoError(t, err)

	require.NoError(t, cache.Bump(ctx))

	after, err := cache.BuildKey(ctx, "reports", "vouchers", "company-1")
	require.NoError(t, err)
	require.NotEqual(t, before, after)
}

func TestNilCacheFallsThroughToLoader(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	key, err := cache.BuildKey(ctx, "reports", "vouchers", "company-1")
	require.NoError(t, err)

	loads := 0
	var out []VoucherSummary
	loader := func(context.Context) (any, error) {
		loads++
		return []VoucherSummary{{ID: "v-1"}}, nil
	}
	require.NoError(t, cache.FetchJSON(ctx, key, &out, loader))
	require.NoError(t, cache.FetchJSON(ctx, key, &out, loader))
	require.Equal(t, 2, loads)
	require.NoError(t, cache.Bump(ctx))
}
