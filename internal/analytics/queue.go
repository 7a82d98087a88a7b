// Package analytics records usage events (views, favourites, searches,
// reading) and aggregates them into per-user statistics.
//
// Events go through a Queue that never blocks the caller: when the buffer is
// full the event is dropped and counted. Batches are written when BatchSize
// events have accumulated or every FlushInterval, whichever comes first.
// Delivery is best effort, with no ordering or exactly-once guarantee.
package analytics

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mrlokans/hikam/internal/entities"
)

const (
	DefaultBatchSize     = 20
	DefaultBufferSize    = 256
	DefaultFlushInterval = 10 * time.Second
)

// EventStore persists batches of events.
type EventStore interface {
	SaveEvents(events []entities.AnalyticsEvent) error
}

type QueueConfig struct {
	BatchSize     int
	BufferSize    int
	FlushInterval time.Duration
}

type Queue struct {
	store     EventStore
	events    chan entities.AnalyticsEvent
	batchSize int
	interval  time.Duration

	mu     sync.RWMutex
	closed bool

	flushReq chan chan struct{}
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once

	dropped atomic.Int64
	failed  atomic.Int64
	saved   atomic.Int64
}

// NewQueue starts the background writer.
func NewQueue(store EventStore, cfg QueueConfig) *Queue {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = DefaultFlushInterval
	}

	q := &Queue{
		store:     store,
		events:    make(chan entities.AnalyticsEvent, cfg.BufferSize),
		batchSize: cfg.BatchSize,
		interval:  cfg.FlushInterval,
		flushReq:  make(chan chan struct{}),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go q.run()
	return q
}

// Track enqueues an event without blocking. It reports false when the event
// was dropped.
func (q *Queue) Track(event entities.AnalyticsEvent) bool {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.dropped.Add(1)
		return false
	}

	select {
	case q.events <- event:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Flush writes everything buffered so far and waits for it.
func (q *Queue) Flush() {
	ack := make(chan struct{})
	select {
	case q.flushReq <- ack:
		<-ack
	case <-q.done:
	}
}

// Close stops accepting events, writes the remainder and waits for the writer.
func (q *Queue) Close() {
	q.once.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()
		close(q.stop)
	})
	<-q.done
}

func (q *Queue) Dropped() int64 { return q.dropped.Load() }
func (q *Queue) Failed() int64  { return q.failed.Load() }
func (q *Queue) Saved() int64   { return q.saved.Load() }

func (q *Queue) run() {
	defer close(q.done)

	ticker := time.NewTicker(q.interval)
	defer ticker.Stop()

	batch := make([]entities.AnalyticsEvent, 0, q.batchSize)
	drain := func() {
		for {
			select {
			case e := <-q.events:
				batch = append(batch, e)
			default:
				return
			}
		}
	}

	for {
		select {
		case e := <-q.events:
			batch = append(batch, e)
			if len(batch) >= q.batchSize {
				batch = q.write(batch)
			}
		case <-ticker.C:
			batch = q.write(batch)
		case ack := <-q.flushReq:
			drain()
			batch = q.write(batch)
			close(ack)
		case <-q.stop:
			drain()
			q.write(batch)
			return
		}
	}
}

// write saves batch and returns an empty slice ready for reuse.
func (q *Queue) write(batch []entities.AnalyticsEvent) []entities.AnalyticsEvent {
	if len(batch) == 0 {
		return batch
	}
	events := make([]entities.AnalyticsEvent, len(batch))
	copy(events, batch)

	if err := q.store.SaveEvents(events); err != nil {
		q.failed.Add(int64(len(events)))
		log.Printf("[ANALYTICS] Failed to save %d events: %v", len(events), err)
	} else {
		q.saved.Add(int64(len(events)))
	}
	return batch[:0]
}
