package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisOpTimeout = 5 * time.Second

// RedisBackend stores each key as a plain Redis string, optionally prefixed so
// several catalogs can share one Redis database.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend connects to addr and verifies the connection with PING.
func NewRedisBackend(addr, prefix string) (*RedisBackend, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis backend requires an address")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // No password by default for local Redis
		DB:       0,  // Default DB
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	log.Printf("INFO: Connected to Redis at %s. Ping response: %s", addr, pong)

	return &RedisBackend{client: client, prefix: prefix}, nil
}

func (r *RedisBackend) key(k string) string {
	return r.prefix + k
}

func (r *RedisBackend) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	value, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis GET %s: %w", r.key(key), err)
	}
	return value, true, nil
}

func (r *RedisBackend) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", r.key(key), err)
	}
	return nil
}

// SetMany writes all keys in a MULTI/EXEC block.
func (r *RedisBackend) SetMany(values map[string]string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range values {
			pipe.Set(ctx, r.key(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis transaction failed: %w", err)
	}
	return nil
}

func (r *RedisBackend) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis DEL %s: %w", r.key(key), err)
	}
	return nil
}

func (r *RedisBackend) Close() error {
	if err := r.client.Close(); err != nil {
		if errors.Is(err, redis.ErrClosed) {
			return ErrClosed
		}
		return err
	}
	log.Println("INFO: Redis connection closed.")
	return nil
}
