package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a session tier shared between server replicas. Every write
// carries ttl; zero means no expiry.
type RedisStore struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisStore(rdb redis.Cmdable, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.prefix+key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) SetIfAbsent(ctx context.Context, key string, value []byte) ([]byte, error) {
	if err := r.rdb.SetNX(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return nil, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	return r.Get(ctx, key)
}
