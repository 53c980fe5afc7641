package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/campus-api/internal/errors"
	"github.com/KirkDiggler/campus-api/internal/redis"
)

func TestNewClient_Validation(t *testing.T) {
	_, err := redis.NewClient(nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = redis.NewClient(&redis.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Addr")

	_, err = redis.NewClient(&redis.Config{Addr: "localhost:6379", DB: -1})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = redis.NewClient(&redis.Config{Addr: "mysql://nope"})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestNewClient_HostPort(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redis.NewClient(&redis.Config{Addr: mr.Addr(), PoolSize: 2})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	require.NoError(t, client.Ping(context.Background()).Err())
}

func TestNewClient_URL(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redis.NewClient(&redis.Config{Addr: "redis://" + mr.Addr() + "/3"})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	require.NoError(t, client.Set(ctx, "clock_state:campus", "{}", 0).Err())

	mr.Select(3)
	assert.True(t, mr.Exists("clock_state:campus"))
}
