package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const DefaultCacheTTL = 30 * time.Minute

var _ domain.BlobStore = (*CachedBlobStore)(nil)

// CachedBlobStore is a read-through Redis cache in front of another store.
// Cache failures are logged and never fail a call.
type CachedBlobStore struct {
	next  domain.BlobStore
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedBlobStore(next domain.BlobStore, cache *redis.Client, ttl time.Duration) *CachedBlobStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedBlobStore{
		next:  next,
		cache: cache,
		ttl:   ttl,
	}
}

func (r *CachedBlobStore) cacheKey(key string) string {
	return fmt.Sprintf("blob-cache:%s", key)
}

func (r *CachedBlobStore) invalidate(ctx context.Context, key string) {
	if err := r.cache.Del(ctx, r.cacheKey(key)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate %s: %v", key, err)
	}
}

func (r *CachedBlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	ck := r.cacheKey(key)

	blob, err := r.cache.Get(ctx, ck).Bytes()
	if err == nil {
		return blob, nil
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	blob, err = r.next.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	if setErr := r.cache.Set(ctx, ck, blob, r.ttl).Err(); setErr != nil {
		log.Printf("[CACHE] Redis set error: %v", setErr)
	}

	return blob, nil
}

func (r *CachedBlobStore) Save(ctx context.Context, key string, blob []byte) error {
	if err := r.next.Save(ctx, key, blob); err != nil {
		return err
	}
	r.invalidate(ctx, key)
	return nil
}
