// Package ratestore keeps limiter counters in Redis so several instances
// share one budget per client.
package ratestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store implements fiber.Storage on top of a Redis client.
type Store struct {
	rdb     *redis.Client
	prefix  string
	timeout time.Duration
}

type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// New connects and pings Redis.
func New(ctx context.Context, o Options) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{Addr: o.Addr, Password: o.Password, DB: o.DB})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewWithClient(rdb, o.Prefix), nil
}

func NewWithClient(rdb *redis.Client, prefix string) *Store {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}
	return &Store{rdb: rdb, prefix: prefix, timeout: 2 * time.Second}
}

func (s *Store) key(k string) string { return s.prefix + ":" + k }

func (s *Store) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Get returns nil, nil for a missing key, as fiber.Storage requires.
func (s *Store) Get(k string) ([]byte, error) {
	if k == "" {
		return nil, nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	b, err := s.rdb.Get(ctx, s.key(k)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return b, err
}

func (s *Store) Set(k string, val []byte, exp time.Duration) error {
	if k == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.rdb.Set(ctx, s.key(k), val, exp).Err()
}

func (s *Store) Delete(k string) error {
	if k == "" {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.rdb.Del(ctx, s.key(k)).Err()
}

// Reset drops every key under the store prefix.
func (s *Store) Reset() error {
	ctx, cancel := s.ctx()
	defer cancel()
	iter := s.rdb.Scan(ctx, 0, s.prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (s *Store) Close() error { return s.rdb.Close() }
