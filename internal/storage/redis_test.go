package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, time.Hour)
	ctx := context.Background()

	value := []byte(`["r1","r2"]`)
	mock.ExpectSet("visitor:v1:zen_wishlist", value, time.Hour).SetVal("OK")
	require.NoError(t, store.Set(ctx, "visitor:v1:zen_wishlist", value))

	mock.ExpectGet("visitor:v1:zen_wishlist").SetVal(string(value))
	got, err := store.Get(ctx, "visitor:v1:zen_wishlist")
	require.NoError(t, err)
	assert.Equal(t, string(value), string(got))

	mock.ExpectGet("missing").RedisNil()
	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	mock.ExpectDel("visitor:v1:zen_wishlist").SetVal(1)
	require.NoError(t, store.Delete(ctx, "visitor:v1:zen_wishlist"))

	mock.ExpectPing().SetVal("PONG")
	require.NoError(t, store.HealthCheck(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Errors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, 0)
	ctx := context.Background()

	mock.ExpectGet("k").SetErr(errors.New("connection refused"))
	_, err := store.Get(ctx, "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyNotFound)

	mock.ExpectPing().SetErr(errors.New("connection refused"))
	assert.Error(t, store.HealthCheck(ctx))
}

func TestNewRedisStoreFromURL_Invalid(t *testing.T) {
	_, err := NewRedisStoreFromURL("not a url", 0)
	assert.Error(t, err)
}
