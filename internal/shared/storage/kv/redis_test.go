package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestConnectPingsServer(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := Connect(context.Background(), Options{URL: "redis://" + srv.Addr() + "/0"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := srv.Get("k")
	require.NoError(t, err)
	require.Equal(t, "v", got)
}

func TestConnectRejectsBadInput(t *testing.T) {
	_, err := Connect(context.Background(), Options{})
	require.Error(t, err)

	_, err = Connect(context.Background(), Options{URL: "http://not-redis"})
	require.Error(t, err)
}

func TestConnectPasswordOverride(t *testing.T) {
	srv := miniredis.RunT(t)
	srv.RequireAuth("s3cret")

	_, err := Connect(context.Background(), Options{URL: "redis://" + srv.Addr()})
	require.Error(t, err)

	client, err := Connect(context.Background(), Options{URL: "redis://" + srv.Addr(), Password: "s3cret"})
	require.NoError(t, err)
	_ = client.Close()
}
