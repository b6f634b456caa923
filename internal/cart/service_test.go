package cart_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/varuna-collections/pos-api/internal/cart"
	"github.com/varuna-collections/pos-api/internal/kv"
)

func newService(t *testing.T) (*cart.Service, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &cart.Service{KV: kv.NewStore(client, "pos"), TTL: time.Hour}, mr
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Empty(t, created.Items)
	require.EqualValues(t, 0, created.Total())

	loaded, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, loaded.ID)
}

func TestAddItemKeepsOrderAndTotal(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, created.ID, "jeans", 120)
	require.NoError(t, err)
	updated, err := svc.AddItem(ctx, created.ID, "shirt", 100)
	require.NoError(t, err)

	require.Equal(t, []cart.LineItem{{Category: "jeans", Rate: 120}, {Category: "shirt", Rate: 100}}, updated.Items)
	require.EqualValues(t, 220, updated.Total())
}

func TestClearResetsTotal(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, created.ID, "jeans", 120)
	require.NoError(t, err)

	cleared, err := svc.Clear(ctx, created.ID)
	require.NoError(t, err)
	require.Empty(t, cleared.Items)
	require.EqualValues(t, 0, cleared.Total())
}

func TestGetUnknownCart(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Get(context.Background(), "nope")
	require.ErrorIs(t, err, cart.ErrNotFound)
}

func TestCartExpires(t *testing.T) {
	svc, mr := newService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, cart.ErrNotFound)
}
