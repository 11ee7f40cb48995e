package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

var _ domain.BlobStore = (*InMemoryBlobStore)(nil)

type InMemoryBlobStore struct {
	store map[string][]byte

	mu sync.RWMutex
}

func NewInMemoryBlobStore() *InMemoryBlobStore {
	return &InMemoryBlobStore{
		store: make(map[string][]byte),
	}
}

func (r *InMemoryBlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	blob, ok := r.store[key]
	if !ok {
		return nil, domain.ErrBlobNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (r *InMemoryBlobStore) Save(ctx context.Context, key string, blob []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[key] = append([]byte(nil), blob...)
	return nil
}
