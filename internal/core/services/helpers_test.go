package services_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

func ptr[T any](v T) *T {
	return &v
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingPersister keeps every blob it was handed, optionally failing.
type recordingPersister struct {
	mu    sync.Mutex
	blobs [][]byte
	fail  error
}

func (p *recordingPersister) Persist(_ context.Context, blob []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.blobs = append(p.blobs, append([]byte(nil), blob...))
	return p.fail
}

func (p *recordingPersister) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.blobs)
}

func (p *recordingPersister) Last() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.blobs) == 0 {
		return nil
	}
	return p.blobs[len(p.blobs)-1]
}

type staticLoader struct {
	habits *domain.HabitCollection
	prefs  domain.Preferences
	err    error
}

func (l staticLoader) Load(_ context.Context) (*domain.HabitCollection, domain.Preferences, error) {
	return l.habits, l.prefs, l.err
}

var errDiskFull = errors.New("disk full")

var testNow = time.Date(2024, time.January, 10, 9, 30, 0, 0, time.Local)
