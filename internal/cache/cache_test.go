package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	appErr "github.com/netly-app/netly/internal/pkg/errors"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func TestStoreSetGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v", time.Minute))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", got)

	_, err = store.Get(ctx, "missing")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestStoreGetDel(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v", time.Minute))
	got, err := store.GetDel(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", got)

	_, err = store.GetDel(ctx, "k")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestStoreTTLExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "k")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestQueueFIFO(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PushQueue(ctx, "q", []byte("a")))
	require.NoError(t, store.PushQueue(ctx, "q", []byte("b")))

	n, err := store.QueueLen(ctx, "q")
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	first, err := store.PopQueue(ctx, "q")
	require.NoError(t, err)
	require.Equal(t, []byte("a"), first)

	second, err := store.PopQueue(ctx, "q")
	require.NoError(t, err)
	require.Equal(t, []byte("b"), second)

	_, err = store.PopQueue(ctx, "q")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}
