package ratestore

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPrefix(t *testing.T) {
	s := NewWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), "  ")
	defer s.Close()
	assert.Equal(t, "rl:10.0.0.1", s.key("10.0.0.1"))

	s2 := NewWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), "booking")
	defer s2.Close()
	assert.Equal(t, "booking:x", s2.key("x"))
}

func TestEmptyKeysAreNoops(t *testing.T) {
	s := NewWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), "rl")
	defer s.Close()

	b, err := s.Get("")
	require.NoError(t, err)
	assert.Nil(t, b)
	assert.NoError(t, s.Set("", []byte("1"), time.Minute))
	assert.NoError(t, s.Set("k", nil, time.Minute))
	assert.NoError(t, s.Delete(""))
}

func TestNewFailsWithoutServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := New(ctx, Options{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
