package domain

import "context"

// DefaultStoreKey is the fixed key the habit document is stored under.
const DefaultStoreKey = "kanso-habits"

// BlobStore is the key-value capability the persistence gateway runs on.
type BlobStore interface {
	// Load returns the blob stored under key, or ErrBlobNotFound when
	// nothing has been saved yet.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the blob stored under key.
	Save(ctx context.Context, key string, blob []byte) error
}
