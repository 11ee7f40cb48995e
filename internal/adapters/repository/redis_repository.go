package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

var _ domain.BlobStore = (*RedisBlobStore)(nil)

// RedisBlobStore uses Redis as the primary store. Keys never expire.
type RedisBlobStore struct {
	client *redis.Client
	prefix string
}

func NewRedisBlobStore(client *redis.Client, prefix string) *RedisBlobStore {
	return &RedisBlobStore{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisBlobStore) redisKey(key string) string {
	return r.prefix + key
}

func (r *RedisBlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	blob, err := r.client.Get(ctx, r.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return blob, nil
}

func (r *RedisBlobStore) Save(ctx context.Context, key string, blob []byte) error {
	if err := r.client.Set(ctx, r.redisKey(key), blob, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}
