// Package persistence serializes the habit collection and preferences as a
// single document on top of an injected key-value store.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

type Gateway struct {
	store   domain.BlobStore
	key     string
	timeout time.Duration
}

// NewGateway binds store to key. A zero timeout leaves deadlines to the
// caller's context.
func NewGateway(store domain.BlobStore, key string, timeout time.Duration) *Gateway {
	if key == "" {
		key = domain.DefaultStoreKey
	}
	return &Gateway{
		store:   store,
		key:     key,
		timeout: timeout,
	}
}

func (g *Gateway) Key() string {
	return g.key
}

func (g *Gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

// Load reads the stored document. It always returns a usable collection
// and preferences: defaults on first launch, on store failure, and on a
// malformed blob. The error reports which of the latter two happened; a
// store that cannot parse its own contents counts as malformed.
func (g *Gateway) Load(ctx context.Context) (*domain.HabitCollection, domain.Preferences, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	blob, err := g.store.Load(ctx, g.key)
	if errors.Is(err, domain.ErrBlobNotFound) {
		log.Printf("[GATEWAY] No document under %q, starting with defaults", g.key)
		return domain.NewHabitCollection(), domain.DefaultPreferences(), nil
	}
	if errors.Is(err, domain.ErrMalformedData) {
		return domain.NewHabitCollection(), domain.DefaultPreferences(), fmt.Errorf("load %q: %w", g.key, err)
	}
	if err != nil {
		return domain.NewHabitCollection(), domain.DefaultPreferences(),
			fmt.Errorf("%w: load %q: %w", domain.ErrPersistence, g.key, err)
	}

	habits, prefs, dropped, err := domain.DecodeDocument(blob)
	if err != nil {
		return domain.NewHabitCollection(), domain.DefaultPreferences(), fmt.Errorf("load %q: %w", g.key, err)
	}
	if dropped > 0 {
		log.Printf("[GATEWAY] Discarded %d invalid habit records from %q", dropped, g.key)
	}

	return habits, prefs, nil
}

// Persist writes a full document blob under the gateway key.
func (g *Gateway) Persist(ctx context.Context, blob []byte) error {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	if err := g.store.Save(ctx, g.key, blob); err != nil {
		return fmt.Errorf("%w: save %q: %w", domain.ErrPersistence, g.key, err)
	}
	return nil
}
