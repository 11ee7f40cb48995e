package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

var _ domain.BlobStore = (*FileBlobStore)(nil)

// FileBlobStore keeps every key in one JSON file, each value stored as an
// embedded document. Writes replace the file atomically.
type FileBlobStore struct {
	path string

	mu sync.Mutex
}

func NewFileBlobStore(path string) (*FileBlobStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBlobStore{path: path}, nil
}

func (s *FileBlobStore) Path() string {
	return s.path
}

func (s *FileBlobStore) readAll() (map[string]json.RawMessage, error) {
	payload, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	entries := map[string]json.RawMessage{}
	if len(payload) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrMalformedData, s.path, err)
	}
	return entries, nil
}

func (s *FileBlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return nil, err
	}
	blob, ok := entries[key]
	if !ok {
		return nil, domain.ErrBlobNotFound
	}
	return blob, nil
}

// Save stores blob under key. Blobs that are not valid JSON are rejected,
// since they could not be embedded in the file.
func (s *FileBlobStore) Save(ctx context.Context, key string, blob []byte) error {
	if !json.Valid(blob) {
		return fmt.Errorf("%w: blob for %q is not JSON", domain.ErrMalformedData, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		// A corrupt file is replaced rather than blocking every future save.
		entries = map[string]json.RawMessage{}
	}
	entries[key] = json.RawMessage(blob)

	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".kanso-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
