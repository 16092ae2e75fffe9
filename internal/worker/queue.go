package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrQueueClosed is returned once a closed queue has been drained.
var ErrQueueClosed = errors.New("work queue is closed")

// DefaultQueueCapacity is used when a queue is built with capacity < 1.
const DefaultQueueCapacity = 1000

// Item is one deferred unit of work. Items are created by a producer,
// delivered to exactly one consumer, then discarded. Priority rides along
// for the pool stage; the queue itself is strictly FIFO.
type Item struct {
	ID          string
	Description string
	Priority    int
	Run         func()
	EnqueuedAt  time.Time
}

// NewItem wraps a function as a work item stamped with a unique id and the
// enqueue time.
func NewItem(run func(), description string, priority int) Item {
	return Item{
		ID:          uuid.NewString(),
		Description: description,
		Priority:    priority,
		Run:         run,
		EnqueuedAt:  time.Now(),
	}
}

// Queue is a fixed-capacity FIFO buffer between producers and consumers.
// Enqueue blocks while the queue is full and Dequeue blocks while it is
// empty; context cancellation is the caller's way out of either wait. There
// is no priority here, only arrival order.
type Queue struct {
	items chan Item
	done  chan struct{}
	once  sync.Once
}

// NewQueue builds a queue holding at most capacity items.
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{
		items: make(chan Item, capacity),
		done:  make(chan struct{}),
	}
}

// Enqueue appends item, blocking while the queue is at capacity. It returns
// ctx.Err() if the caller gives up first and ErrQueueClosed after Close.
func (q *Queue) Enqueue(ctx context.Context, item Item) error {
	select {
	case <-q.done:
		return ErrQueueClosed
	default:
	}
	select {
	case q.items <- item:
		return nil
	case <-q.done:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue removes and returns the oldest item, blocking while the queue is
// empty. Items already queued are still delivered after Close; once drained,
// Dequeue returns ErrQueueClosed.
func (q *Queue) Dequeue(ctx context.Context) (Item, error) {
	select {
	case item := <-q.items:
		return item, nil
	default:
	}
	select {
	case item := <-q.items:
		return item, nil
	case <-q.done:
		// Close raced with a producer; drain anything that made it in.
		select {
		case item := <-q.items:
			return item, nil
		default:
			return Item{}, ErrQueueClosed
		}
	case <-ctx.Done():
		return Item{}, ctx.Err()
	}
}

// Close stops intake and releases blocked callers. Safe to call repeatedly.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}

// Len reports the number of queued items; always within [0, Cap].
func (q *Queue) Len() int { return len(q.items) }

// Cap reports the fixed capacity.
func (q *Queue) Cap() int { return cap(q.items) }
