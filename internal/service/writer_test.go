package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) save(name string) saveFunc {
	return func(context.Context) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, name)
		return nil
	}
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestWriter_KeepsNewestPendingWrite(t *testing.T) {
	w := newWriter(time.Second)
	defer w.close()

	rec := &recorder{}
	started := make(chan struct{})
	release := make(chan struct{})

	w.enqueue("goals", func(ctx context.Context) error {
		close(started)
		<-release
		return rec.save("v1")(ctx)
	})
	<-started

	w.enqueue("goals", rec.save("v2"))
	w.enqueue("goals", rec.save("v3"))
	close(release)
	w.flush()

	assert.Equal(t, []string{"v1", "v3"}, rec.list())
}

func TestWriter_RecordsKeepFirstEnqueueOrder(t *testing.T) {
	w := newWriter(time.Second)
	defer w.close()

	rec := &recorder{}
	started := make(chan struct{})
	release := make(chan struct{})

	w.enqueue("block", func(context.Context) error {
		close(started)
		<-release
		return nil
	})
	<-started

	w.enqueue("goals", rec.save("goals"))
	w.enqueue("theme", rec.save("theme"))
	w.enqueue("goals", rec.save("goals-2"))
	close(release)
	w.flush()

	assert.Equal(t, []string{"goals-2", "theme"}, rec.list())
}

func TestWriter_FailuresDoNotStopLaterWrites(t *testing.T) {
	w := newWriter(time.Second)
	defer w.close()

	rec := &recorder{}
	w.enqueue("goals", func(context.Context) error { return errors.New("disk full") })
	w.flush()

	w.enqueue("theme", func(context.Context) error { panic("boom") })
	w.flush()

	w.enqueue("view", rec.save("view"))
	w.flush()

	assert.Equal(t, []string{"view"}, rec.list())
}

func TestWriter_Timeout(t *testing.T) {
	w := newWriter(10 * time.Millisecond)
	defer w.close()

	var got error
	w.enqueue("goals", func(ctx context.Context) error {
		<-ctx.Done()
		got = ctx.Err()
		return got
	})
	w.flush()

	assert.ErrorIs(t, got, context.DeadlineExceeded)
}

func TestWriter_CloseDrains(t *testing.T) {
	w := newWriter(time.Second)

	rec := &recorder{}
	w.enqueue("goals", rec.save("goals"))
	w.close()
	w.close()

	assert.Equal(t, []string{"goals"}, rec.list())

	// flush after close returns immediately
	done := make(chan struct{})
	go func() {
		w.flush()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "flush blocked after close")
	}
}

func TestWriter_AttemptRecoversPanic(t *testing.T) {
	w := &writer{timeout: time.Second}
	err := w.attempt(func(context.Context) error { panic("boom") })
	assert.EqualError(t, err, "save panicked: boom")
}
