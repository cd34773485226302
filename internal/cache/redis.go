package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:    client,
		maxJitter: time.Minute,
	}
}

type RedisStore struct {
	client    *redis.Client
	maxJitter time.Duration
}

func (r *RedisStore) Get(ctx context.Context, key string, v any) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}

	if err2 := json.Unmarshal(data, v); err2 != nil {
		// Corrupt payloads are treated as absent; drop the entry so the
		// next read repopulates it.
		log.Printf("discarding corrupt cache entry %q: %v", key, err2)
		if delErr := r.client.Del(ctx, key).Err(); delErr != nil {
			log.Printf("failed to drop corrupt cache entry %q: %v", key, delErr)
		}
		return ErrMiss
	}

	return nil
}

func (r *RedisStore) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal cache value failed: %w", err)
	}

	if r.maxJitter > 0 && ttl > 0 {
		ttl += time.Duration(rand.Int63n(int64(r.maxJitter)))
	}
	if ret := r.client.Set(ctx, key, data, ttl); ret.Err() != nil {
		return fmt.Errorf("redis set failed: %w", ret.Err())
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
