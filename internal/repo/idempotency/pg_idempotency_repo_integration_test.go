//go:build integration
// +build integration

package idempotency_repo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-svc/internal/domain/gateway"
	idempotency_repo "checkout-svc/internal/repo/idempotency"
	"checkout-svc/internal/testinfra"
)

var pg *testinfra.PostgresContainer

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	pg, err = testinfra.NewPostgres(ctx)
	if err != nil {
		panic(err)
	}

	code := m.Run()
	pg.Cleanup(ctx)
	os.Exit(code)
}

func TestPgStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, pg.Truncate(ctx))

	store := idempotency_repo.NewPgStore(pg.Pool)
	handle := gateway.SessionHandle{ID: "cs_test_1", URL: "https://pay.example.com/cs_test_1"}

	_, ok, err := store.Get(ctx, "ORD-1001")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Put(ctx, "ORD-1001", handle, time.Hour))

	got, ok, err := store.Get(ctx, "ORD-1001")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, handle, got)
}

func TestPgStore_Expiry(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, pg.Truncate(ctx))

	store := idempotency_repo.NewPgStore(pg.Pool)
	handle := gateway.SessionHandle{ID: "cs_test_1", URL: "https://pay.example.com/cs_test_1"}

	require.NoError(t, store.Put(ctx, "ORD-1001", handle, -time.Second))

	_, ok, err := store.Get(ctx, "ORD-1001")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPgStore_Upsert(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, pg.Truncate(ctx))

	store := idempotency_repo.NewPgStore(pg.Pool)

	require.NoError(t, store.Put(ctx, "ORD-1001", gateway.SessionHandle{ID: "cs_old", URL: "https://pay.example.com/cs_old"}, time.Hour))
	require.NoError(t, store.Put(ctx, "ORD-1001", gateway.SessionHandle{ID: "cs_new", URL: "https://pay.example.com/cs_new"}, time.Hour))

	got, ok, err := store.Get(ctx, "ORD-1001")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "cs_new", got.ID)
}
