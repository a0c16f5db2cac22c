package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type saveFunc func(ctx context.Context) error

// writer persists snapshots in the background so callers never wait on storage.
// Only the newest pending write per record is kept; failures are logged and dropped.
type writer struct {
	mu      sync.Mutex
	pending map[string]saveFunc
	order   []string

	timeout time.Duration
	kick    chan struct{}
	flushes chan chan struct{}
	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func newWriter(timeout time.Duration) *writer {
	w := &writer{
		pending: make(map[string]saveFunc),
		timeout: timeout,
		kick:    make(chan struct{}, 1),
		flushes: make(chan chan struct{}),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w
}

// enqueue schedules fn as the next write of record, replacing any write not yet started
func (w *writer) enqueue(record string, fn saveFunc) {
	w.mu.Lock()
	if _, ok := w.pending[record]; !ok {
		w.order = append(w.order, record)
	}
	w.pending[record] = fn
	w.mu.Unlock()

	select {
	case w.kick <- struct{}{}:
	default:
	}
}

// flush blocks until everything enqueued so far has been attempted
func (w *writer) flush() {
	ack := make(chan struct{})
	select {
	case w.flushes <- ack:
		<-ack
	case <-w.stopped:
	}
}

// close attempts the remaining writes and stops the worker
func (w *writer) close() {
	w.once.Do(func() {
		close(w.stop)
	})
	<-w.stopped
}

func (w *writer) run() {
	defer close(w.stopped)
	for {
		select {
		case <-w.kick:
			w.drain()
		case ack := <-w.flushes:
			w.drain()
			close(ack)
		case <-w.stop:
			w.drain()
			return
		}
	}
}

func (w *writer) drain() {
	w.mu.Lock()
	pending, order := w.pending, w.order
	w.pending = make(map[string]saveFunc)
	w.order = nil
	w.mu.Unlock()

	for _, record := range order {
		err := w.attempt(pending[record])
		if err != nil {
			slog.Error("failed to persist record", "record", record, "error", err)
		}
	}
}

func (w *writer) attempt(fn saveFunc) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("save panicked: %v", r)
		}
	}()
	return fn(ctx)
}
