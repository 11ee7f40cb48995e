package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

// Persister receives the full serialized document after every commit.
// Calls arrive in commit order.
type Persister interface {
	Persist(ctx context.Context, blob []byte) error
}

// Loader produces the initial state. It returns usable defaults alongside
// any error.
type Loader interface {
	Load(ctx context.Context) (*domain.HabitCollection, domain.Preferences, error)
}

type EventKind string

const (
	EventLoaded             EventKind = "loaded"
	EventHabitAdded         EventKind = "habit_added"
	EventHabitEdited        EventKind = "habit_edited"
	EventProgressChanged    EventKind = "progress_changed"
	EventHabitArchived      EventKind = "habit_archived"
	EventHabitRestored      EventKind = "habit_restored"
	EventHabitDeleted       EventKind = "habit_deleted"
	EventHabitsPurged       EventKind = "habits_purged"
	EventPreferencesChanged EventKind = "preferences_changed"
)

// Event describes one committed change.
type Event struct {
	Kind     EventKind
	HabitIDs []string
	Version  uint64
}

type Listener func(Event)

// Tx exposes mutable state to an Update callback.
type Tx struct {
	Habits *domain.HabitCollection
	Prefs  *domain.Preferences
}

type subscription struct {
	id uint64
	fn Listener
}

// Store owns the habit collection and preferences. Writes are serialized
// by a single lock; readers only ever see committed state.
type Store struct {
	mu        sync.RWMutex
	habits    *domain.HabitCollection
	prefs     domain.Preferences
	version   uint64
	persister Persister

	subMu  sync.Mutex
	subs   []subscription
	nextID uint64
}

// NewStore starts with an empty collection and default preferences. A nil
// persister keeps state in memory only.
func NewStore(persister Persister) *Store {
	return &Store{
		habits:    domain.NewHabitCollection(),
		prefs:     domain.DefaultPreferences(),
		persister: persister,
	}
}

// Load replaces the state with what loader returns. The loader's defaults
// are installed even when it reports an error.
func (s *Store) Load(ctx context.Context, loader Loader) error {
	habits, prefs, err := loader.Load(ctx)
	if err != nil {
		log.Printf("[STORE] Load failed, continuing with defaults: %v", err)
	}

	s.mu.Lock()
	s.habits = habits
	s.prefs = prefs
	s.version++
	ev := Event{Kind: EventLoaded, Version: s.version}
	s.mu.Unlock()

	s.notify(ev)
	return err
}

// Update runs fn under the write lock. fn returns the event to publish, or
// nil when nothing changed. fn must leave state untouched when it fails.
//
// After a change the document is handed to the persister before the lock
// is released, so saves are issued in commit order. A persister error is
// returned wrapped in domain.ErrPersistence but the change stays committed.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) (*Event, error)) error {
	s.mu.Lock()

	ev, err := fn(&Tx{Habits: s.habits, Prefs: &s.prefs})
	if err != nil || ev == nil {
		s.mu.Unlock()
		return err
	}

	s.version++
	ev.Version = s.version
	persistErr := s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(*ev)
	return persistErr
}

func (s *Store) persistLocked(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	blob, err := domain.EncodeDocument(s.habits, s.prefs)
	if err != nil {
		log.Printf("[STORE] Encode for version %d failed: %v", s.version, err)
		return fmt.Errorf("%w: encode document: %w", domain.ErrPersistence, err)
	}

	if err := s.persister.Persist(ctx, blob); err != nil {
		log.Printf("[STORE] Save for version %d failed, in-memory state kept: %v", s.version, err)
		if errors.Is(err, domain.ErrPersistence) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// View runs fn under the read lock. fn must not retain or modify what it is
// given; clone anything that outlives the call.
func (s *Store) View(fn func(habits *domain.HabitCollection, prefs domain.Preferences)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.habits, s.prefs)
}

// Snapshot returns a deep copy of the committed state.
func (s *Store) Snapshot() (*domain.HabitCollection, domain.Preferences, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.habits.Clone(), s.prefs, s.version
}

func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers l for every committed change and returns a function
// that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: l})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(ev Event) {
	s.subMu.Lock()
	subs := append([]subscription(nil), s.subs...)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(ev)
	}
}
