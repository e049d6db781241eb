package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "scms:snapshot:"

// RedisStore keeps each named collection as one Redis key holding the
// blob envelope. Snapshots have no TTL; they live until overwritten.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a connected client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Load reads the blob stored under name.
func (s *RedisStore) Load(ctx context.Context, name string, dest interface{}) error {
	blob, err := s.client.Get(ctx, redisKeyPrefix+name).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("load snapshot %s: %w", name, err)
	}
	return decode(blob, dest)
}

// Save overwrites the blob stored under name.
func (s *RedisStore) Save(ctx context.Context, name string, value interface{}) error {
	blob, err := encode(value)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKeyPrefix+name, blob, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot %s: %w", name, err)
	}
	return nil
}

// Close releases the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
