package analytics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/hikam/internal/entities"
)

type recordingStore struct {
	mu      sync.Mutex
	batches [][]entities.AnalyticsEvent
	err     error
	block   chan struct{}
}

func (s *recordingStore) SaveEvents(events []entities.AnalyticsEvent) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, events)
	return nil
}

func (s *recordingStore) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

func (s *recordingStore) batchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.batches)
}

func view(quoteID string) entities.AnalyticsEvent {
	return entities.AnalyticsEvent{UserID: 1, Type: entities.AnalyticsEventView, QuoteID: quoteID}
}

func TestQueue_FlushesOnBatchSize(t *testing.T) {
	store := &recordingStore{}
	q := NewQueue(store, QueueConfig{BatchSize: 3, FlushInterval: time.Hour})
	defer q.Close()

	for _, id := range []string{"a", "b", "c"} {
		assert.True(t, q.Track(view(id)))
	}

	assert.Eventually(t, func() bool { return store.total() == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, store.batchCount())
}

func TestQueue_FlushesOnInterval(t *testing.T) {
	store := &recordingStore{}
	q := NewQueue(store, QueueConfig{BatchSize: 100, FlushInterval: 20 * time.Millisecond})
	defer q.Close()

	q.Track(view("a"))
	assert.Eventually(t, func() bool { return store.total() == 1 }, time.Second, 5*time.Millisecond)
}

func TestQueue_ExplicitFlush(t *testing.T) {
	store := &recordingStore{}
	q := NewQueue(store, QueueConfig{BatchSize: 100, FlushInterval: time.Hour})
	defer q.Close()

	q.Track(view("a"))
	q.Track(view("b"))
	q.Flush()

	assert.Equal(t, 2, store.total())
	assert.Equal(t, int64(2), q.Saved())
}

func TestQueue_CloseWritesRemainder(t *testing.T) {
	store := &recordingStore{}
	q := NewQueue(store, QueueConfig{BatchSize: 100, FlushInterval: time.Hour})

	q.Track(view("a"))
	q.Track(view("b"))
	q.Close()

	assert.Equal(t, 2, store.total())

	assert.False(t, q.Track(view("c")), "closed queue drops")
	assert.Equal(t, int64(1), q.Dropped())

	q.Close()
	q.Flush()
}

func TestQueue_DropsWhenFull(t *testing.T) {
	store := &recordingStore{block: make(chan struct{})}
	q := NewQueue(store, QueueConfig{BatchSize: 1, BufferSize: 2, FlushInterval: time.Hour})

	// the writer takes the first event and blocks in SaveEvents
	require.True(t, q.Track(view("first")))
	assert.Eventually(t, func() bool { return len(q.events) == 0 }, time.Second, time.Millisecond)

	accepted := 0
	for i := 0; i < 10; i++ {
		if q.Track(view("x")) {
			accepted++
		}
	}
	assert.Equal(t, 2, accepted)
	assert.Equal(t, int64(8), q.Dropped())

	close(store.block)
	q.Close()
	assert.Equal(t, 3, store.total())
}

func TestQueue_StoreFailure(t *testing.T) {
	store := &recordingStore{err: errors.New("disk full")}
	q := NewQueue(store, QueueConfig{BatchSize: 100, FlushInterval: time.Hour})

	q.Track(view("a"))
	q.Close()

	assert.Equal(t, int64(1), q.Failed())
	assert.Zero(t, q.Saved())
}

func TestQueue_SetsTimestamp(t *testing.T) {
	store := &recordingStore{}
	q := NewQueue(store, QueueConfig{})
	q.Track(view("a"))
	q.Close()

	require.Equal(t, 1, store.batchCount())
	assert.WithinDuration(t, time.Now(), store.batches[0][0].CreatedAt, time.Minute)
}
