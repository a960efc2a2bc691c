package eventbus

/*
 * EventBus - lock-free pub/sub used to tell front-ends that a store changed.
 * Slow subscribers never block publishers, events are dropped and counted instead.
 */
import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"
)

const DefaultBufferSize = 64

// EventBus provides pub/sub with per-subscriber buffering
type EventBus[T any] struct {
	subscribers   *xsync.Map[string, *subscriber[T]]
	isShutdown    atomic.Bool
	subscriberSeq atomic.Uint64
	bufferSize    int
}

type subscriber[T any] struct {
	ch      chan T
	id      string
	dropped atomic.Uint64
	mu      sync.RWMutex
	closed  bool
}

// trySend never blocks and never races with close
func (s *subscriber[T]) trySend(event T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- event:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

func (s *subscriber[T]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// New creates an EventBus with the default buffer size
func New[T any]() *EventBus[T] {
	return NewWithBuffer[T](DefaultBufferSize)
}

func NewWithBuffer[T any](bufferSize int) *EventBus[T] {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &EventBus[T]{
		subscribers: xsync.NewMap[string, *subscriber[T]](),
		bufferSize:  bufferSize,
	}
}

// Subscribe returns a channel of events and a cleanup function. The
// subscription also ends when ctx is cancelled.
func (eb *EventBus[T]) Subscribe(ctx context.Context) (<-chan T, func()) {
	if eb.isShutdown.Load() {
		ch := make(chan T)
		close(ch)
		return ch, func() {}
	}

	id := "sub_" + strconv.FormatUint(eb.subscriberSeq.Add(1), 10)
	sub := &subscriber[T]{
		id: id,
		ch: make(chan T, eb.bufferSize),
	}
	eb.subscribers.Store(id, sub)

	go func() {
		<-ctx.Done()
		eb.unsubscribe(id)
	}()

	return sub.ch, func() {
		eb.unsubscribe(id)
	}
}

// Publish delivers the event to every subscriber with buffer room and
// returns how many received it
func (eb *EventBus[T]) Publish(event T) int {
	if eb.isShutdown.Load() {
		return 0
	}

	delivered := 0
	eb.subscribers.Range(func(id string, sub *subscriber[T]) bool {
		if sub.trySend(event) {
			delivered++
		}
		return true
	})

	return delivered
}

// Shutdown closes every subscriber channel, later publishes are no-ops
func (eb *EventBus[T]) Shutdown() {
	if !eb.isShutdown.CompareAndSwap(false, true) {
		return
	}

	eb.subscribers.Range(func(id string, sub *subscriber[T]) bool {
		eb.unsubscribe(id)
		return true
	})
}

type Stats struct {
	Subscribers  int
	TotalDropped uint64
	IsShutdown   bool
}

func (eb *EventBus[T]) Stats() Stats {
	stats := Stats{
		IsShutdown: eb.isShutdown.Load(),
	}

	eb.subscribers.Range(func(id string, sub *subscriber[T]) bool {
		stats.Subscribers++
		stats.TotalDropped += sub.dropped.Load()
		return true
	})

	return stats
}

func (eb *EventBus[T]) unsubscribe(id string) {
	if sub, exists := eb.subscribers.LoadAndDelete(id); exists {
		sub.close()
	}
}
