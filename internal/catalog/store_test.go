package catalog_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/varuna-collections/pos-api/internal/catalog"
	"github.com/varuna-collections/pos-api/internal/common"
	"github.com/varuna-collections/pos-api/internal/kv"
)

func newStore(t *testing.T) (*catalog.Store, *kv.Store) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kvStore := kv.NewStore(client, "pos")
	store := &catalog.Store{KV: kvStore, Key: "productData"}
	require.NoError(t, store.Load(context.Background()))
	return store, kvStore
}

func TestLoadSeedsDefaults(t *testing.T) {
	store, _ := newStore(t)
	rates, ok := store.Rates("jeans")
	require.True(t, ok)
	require.Equal(t, []int{110, 120, 130, 140, 150}, rates)

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 4)
	require.Equal(t, "jeans", snapshot[0].Name)
	require.Equal(t, "leggings", snapshot[1].Name)
	require.Equal(t, "shirt", snapshot[2].Name)
	require.Equal(t, "t-shirt", snapshot[3].Name)
}

func TestAddCategoryNormalizes(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.AddCategory(ctx, "  Saree "))
	_, ok := store.Rates("saree")
	require.True(t, ok)
}

func TestAddCategoryRejectsDuplicateAndEmpty(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	err := store.AddCategory(ctx, "Jeans")
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, common.CodeDuplicateCategory, appErr.Code)

	err = store.AddCategory(ctx, "   ")
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, common.CodeDuplicateCategory, appErr.Code)
}

func TestAddRateValidation(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	_, err := store.AddRate(ctx, "kurta", 100)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, common.CodeUnknownCategory, appErr.Code)

	_, err = store.AddRate(ctx, "jeans", 0)
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, common.CodeInvalidRate, appErr.Code)

	_, err = store.AddRate(ctx, "jeans", -5)
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, common.CodeInvalidRate, appErr.Code)
}

func TestAddRateDuplicateStillInserts(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	duplicate, err := store.AddRate(ctx, "jeans", 120)
	require.NoError(t, err)
	require.True(t, duplicate)

	rates, ok := store.Rates("jeans")
	require.True(t, ok)
	// 120 now appears twice: the duplicate is flagged but not rejected.
	require.Equal(t, []int{110, 120, 130, 140, 150, 120}, rates)
}

func TestRemoveRateLastRateRemovesCategory(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.AddCategory(ctx, "belt"))
	_, err := store.AddRate(ctx, "belt", 50)
	require.NoError(t, err)

	require.NoError(t, store.RemoveRate(ctx, "belt", 50))
	_, ok := store.Rates("belt")
	require.False(t, ok)
}

func TestRemoveRateAbsentIsNoop(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.RemoveRate(ctx, "jeans", 999))
	rates, _ := store.Rates("jeans")
	require.Len(t, rates, 5)
}

func TestRemoveRateUnknownCategory(t *testing.T) {
	store, _ := newStore(t)
	err := store.RemoveRate(context.Background(), "kurta", 100)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, common.CodeUnknownCategory, appErr.Code)
}

func TestPersistenceRoundTrip(t *testing.T) {
	store, kvStore := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.AddCategory(ctx, "saree"))
	_, err := store.AddRate(ctx, "saree", 450)
	require.NoError(t, err)
	require.NoError(t, store.RemoveCategory(ctx, "leggings"))

	reloaded := &catalog.Store{KV: kvStore, Key: "productData"}
	require.NoError(t, reloaded.Load(ctx))
	require.Equal(t, store.Snapshot(), reloaded.Snapshot())
}
