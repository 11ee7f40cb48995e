package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

type fakeWriter struct {
	mu       sync.Mutex
	written  []string
	failures int
	calls    int
	gate     chan struct{}
}

func (f *fakeWriter) Persist(_ context.Context, blob []byte) error {
	if f.gate != nil {
		<-f.gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failures > 0 {
		f.failures--
		return errors.New("backend unavailable")
	}
	f.written = append(f.written, string(blob))
	return nil
}

func (f *fakeWriter) snapshot() ([]string, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.written...), f.calls
}

func TestSaveWorker_WritesLatestDocument(t *testing.T) {
	writer := &fakeWriter{}
	w := NewSaveWorker(writer, 0, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, w.Persist(ctx, []byte("v1")))
	w.Flush()

	written, _ := writer.snapshot()
	assert.Equal(t, []string{"v1"}, written)
	assert.NoError(t, w.LastError())
	assert.Equal(t, uint64(1), w.Saves())
}

func TestSaveWorker_CoalescesBurst(t *testing.T) {
	writer := &fakeWriter{gate: make(chan struct{})}
	w := NewSaveWorker(writer, 0, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	// v0 blocks inside the writer while the burst queues up behind it.
	require.NoError(t, w.Persist(ctx, []byte("v0")))
	for i := 1; i <= 10; i++ {
		require.NoError(t, w.Persist(ctx, []byte(fmt.Sprintf("v%d", i))))
	}
	close(writer.gate)
	w.Flush()

	written, _ := writer.snapshot()
	require.NotEmpty(t, written)
	assert.LessOrEqual(t, len(written), 2)
	assert.Equal(t, "v10", written[len(written)-1])
}

func TestSaveWorker_Retries(t *testing.T) {
	t.Run("Success: Recovers within the retry budget", func(t *testing.T) {
		writer := &fakeWriter{failures: 2}
		w := NewSaveWorker(writer, 3, time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		w.Start(ctx)

		require.NoError(t, w.Persist(ctx, []byte("doc")))
		w.Flush()

		written, calls := writer.snapshot()
		assert.Equal(t, []string{"doc"}, written)
		assert.Equal(t, 3, calls)
		assert.NoError(t, w.LastError())
	})

	t.Run("Error: Gives up and reports the failure", func(t *testing.T) {
		writer := &fakeWriter{failures: 10}
		w := NewSaveWorker(writer, 2, time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		w.Start(ctx)

		require.NoError(t, w.Persist(ctx, []byte("doc")))
		w.Flush()

		written, calls := writer.snapshot()
		assert.Empty(t, written)
		assert.Equal(t, 3, calls)
		assert.Error(t, w.LastError())
		assert.Equal(t, uint64(0), w.Saves())

		err := w.Persist(ctx, []byte("next"))
		assert.ErrorIs(t, err, domain.ErrPersistence)
	})
}

func TestSaveWorker_ReportsFailureToNextCaller(t *testing.T) {
	writer := &fakeWriter{failures: 1}
	w := NewSaveWorker(writer, 0, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, w.Persist(ctx, []byte("v1")))
	w.Flush()
	require.Error(t, w.LastError())

	// v2 is still queued even though the caller is told about v1.
	err := w.Persist(ctx, []byte("v2"))
	assert.ErrorIs(t, err, domain.ErrPersistence)
	w.Flush()

	written, _ := writer.snapshot()
	assert.Equal(t, []string{"v2"}, written)
	assert.NoError(t, w.LastError())
	assert.NoError(t, w.Persist(ctx, []byte("v3")), "a successful write clears the failure")
	w.Flush()
}

func TestSaveWorker_WritesDocumentsQueuedDuringShutdown(t *testing.T) {
	writer := &fakeWriter{gate: make(chan struct{})}
	w := NewSaveWorker(writer, 0, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	require.NoError(t, w.Persist(ctx, []byte("a")))
	cancel()

	// "b" arrives while "a" is still being written and the stop is pending.
	require.NoError(t, w.Persist(context.Background(), []byte("b")))
	close(writer.gate)
	w.Wait()

	written, _ := writer.snapshot()
	require.NotEmpty(t, written)
	assert.Equal(t, "b", written[len(written)-1])
}

func TestSaveWorker_DrainsOnShutdown(t *testing.T) {
	writer := &fakeWriter{gate: make(chan struct{})}
	w := NewSaveWorker(writer, 0, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	require.NoError(t, w.Persist(ctx, []byte("first")))
	require.NoError(t, w.Persist(ctx, []byte("final")))
	cancel()
	close(writer.gate)
	w.Wait()

	written, _ := writer.snapshot()
	require.NotEmpty(t, written)
	assert.Equal(t, "final", written[len(written)-1])

	// Once stopped, writes go straight to the target.
	require.NoError(t, w.Persist(context.Background(), []byte("late")))
	written, _ = writer.snapshot()
	assert.Equal(t, "late", written[len(written)-1])
}
