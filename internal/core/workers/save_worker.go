package workers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

// BlobWriter is the durable side of the worker, normally the persistence
// gateway.
type BlobWriter interface {
	Persist(ctx context.Context, blob []byte) error
}

const (
	DefaultSaveRetries = 3
	DefaultSaveBackoff = 200 * time.Millisecond
)

// SaveWorker writes documents in the background. Only the newest pending
// document is kept, so a burst of commits costs one write and an older
// document can never land after a newer one.
type SaveWorker struct {
	target  BlobWriter
	retries int
	backoff time.Duration

	mu      sync.Mutex
	idle    *sync.Cond
	pending []byte
	busy    bool
	stopped bool
	lastErr error
	saves   uint64

	wake chan struct{}
	done chan struct{}
}

func NewSaveWorker(target BlobWriter, retries int, backoff time.Duration) *SaveWorker {
	if retries < 0 {
		retries = 0
	}
	if backoff <= 0 {
		backoff = DefaultSaveBackoff
	}
	w := &SaveWorker{
		target:  target,
		retries: retries,
		backoff: backoff,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	w.idle = sync.NewCond(&w.mu)
	return w
}

// Start runs the writer until ctx is done. Whatever is pending at that
// point is still written before the worker exits.
func (w *SaveWorker) Start(ctx context.Context) {
	go func() {
		log.Println("[SAVE] Save worker started in background...")
		defer close(w.done)

		for {
			select {
			case <-w.wake:
				w.drain(ctx)
			case <-ctx.Done():
				w.shutdown()
				log.Println("[SAVE] Save worker shutting down...")
				return
			}
		}
	}()
}

// shutdown writes what is pending and marks the worker stopped in the same
// critical section that observes an empty queue, so no document is left
// behind by a Persist racing the stop.
func (w *SaveWorker) shutdown() {
	for {
		w.drain(context.Background())

		w.mu.Lock()
		if w.pending == nil {
			w.stopped = true
			w.idle.Broadcast()
			w.mu.Unlock()
			return
		}
		w.mu.Unlock()
	}
}

// Persist queues blob, replacing any document not yet written. After the
// worker has stopped it writes synchronously instead.
//
// The write itself happens later, so a failure is reported by the next
// Persist: while the last write is unrecovered every call returns it
// wrapped in domain.ErrPersistence. The queued blob still supersedes the
// failed one.
func (w *SaveWorker) Persist(ctx context.Context, blob []byte) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return w.target.Persist(ctx, blob)
	}
	w.pending = blob
	failed := w.lastErr
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}

	if failed == nil {
		return nil
	}
	if errors.Is(failed, domain.ErrPersistence) {
		return failed
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistence, failed)
}

func (w *SaveWorker) drain(ctx context.Context) {
	for {
		w.mu.Lock()
		if w.pending == nil {
			w.busy = false
			w.idle.Broadcast()
			w.mu.Unlock()
			return
		}
		blob := w.pending
		w.pending = nil
		w.busy = true
		w.mu.Unlock()

		err := w.save(ctx, blob)

		w.mu.Lock()
		w.lastErr = err
		if err == nil {
			w.saves++
		}
		w.mu.Unlock()
	}
}

func (w *SaveWorker) save(ctx context.Context, blob []byte) error {
	var err error
	for attempt := 0; attempt <= w.retries; attempt++ {
		if err = w.target.Persist(ctx, blob); err == nil {
			return nil
		}
		log.Printf("[SAVE] Attempt %d/%d failed: %v", attempt+1, w.retries+1, err)

		if w.superseded() {
			log.Println("[SAVE] Newer document pending, dropping retries")
			return err
		}
		if attempt == w.retries {
			break
		}

		select {
		case <-time.After(w.backoff << attempt):
		case <-ctx.Done():
			return err
		}
	}
	log.Printf("[SAVE] Giving up after %d attempts, in-memory state kept: %v", w.retries+1, err)
	return err
}

func (w *SaveWorker) superseded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending != nil
}

// Flush blocks until every queued document has been handled.
func (w *SaveWorker) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for !w.stopped && (w.pending != nil || w.busy) {
		w.idle.Wait()
	}
}

// Wait blocks until the worker started by Start has exited.
func (w *SaveWorker) Wait() {
	<-w.done
}

// LastError reports the outcome of the most recent write. A successful
// write clears it.
func (w *SaveWorker) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Saves counts successful writes.
func (w *SaveWorker) Saves() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.saves
}
