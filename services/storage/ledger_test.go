package storage

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func TestRedisLedger_TrackConfirmStale(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	ledger := NewRedisLedger(client, "test:pending")

	base := time.Now()
	ledger.now = func() time.Time { return base.Add(-2 * time.Hour) }
	ctx := context.Background()
	require.NoError(t, ledger.Track(ctx, "site/old"))
	ledger.now = func() time.Time { return base }
	require.NoError(t, ledger.Track(ctx, "site/new"))

	stale, err := ledger.Stale(ctx, time.Hour)
	require.NoError(t, err)
	require.Equal(t, []string{"site/old"}, stale)

	require.NoError(t, ledger.Confirm(ctx, "site/old"))
	stale, err = ledger.Stale(ctx, time.Hour)
	require.NoError(t, err)
	require.Empty(t, stale)

	stale, err = ledger.Stale(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"site/new"}, stale)
}

func TestPublicBase(t *testing.T) {
	require.Equal(t, "http://localhost:9000", publicBase(MinioConfig{Endpoint: "localhost:9000"}))
	require.Equal(t, "https://cdn.example.com", publicBase(MinioConfig{Endpoint: "x", PublicURL: "https://cdn.example.com/"}))
}
