// Package cache provides a Redis-backed key-value store for persisted
// practice configuration.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultNamespace is used when no namespace is configured.
const DefaultNamespace = "studybuddy"

// RedisKV stores all keys of one namespace in a single Redis hash, so
// Clear is one DEL. It satisfies persist.KV.
type RedisKV struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisKV wraps client. A positive ttl is refreshed on every write so
// an abandoned configuration also expires server-side.
func NewRedisKV(client *redis.Client, namespace string, ttl time.Duration) *RedisKV {
	return &RedisKV{client: client, key: HashKey(namespace), ttl: ttl}
}

// Dial parses a redis:// URL, connects and pings the server.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// HashKey returns the Redis key holding a namespace's values.
func HashKey(namespace string) string {
	namespace = strings.Trim(namespace, ": ")
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return namespace + ":config"
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.HGet(ctx, r.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget %q: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.key, key, value)
		if r.ttl > 0 {
			pipe.Expire(ctx, r.key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis hset %q: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.HDel(ctx, r.key, key).Err(); err != nil {
		return fmt.Errorf("redis hdel %q: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
