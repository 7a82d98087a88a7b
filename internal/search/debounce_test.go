package search

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_RunsOnlyLast(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var last, calls atomic.Int32

	for i := 1; i <= 5; i++ {
		i := int32(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(i)
		})
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(5), last.Load())
	assert.False(t, d.Pending())
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	assert.True(t, d.Pending())
	d.Cancel()
	assert.False(t, d.Pending())

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestDebouncer_Flush(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var calls atomic.Int32

	assert.False(t, d.Flush())

	d.Trigger(func() { calls.Add(1) })
	assert.True(t, d.Flush())
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Flush())
}

func TestDebouncer_SupersededTimerDoesNotRunNewerFn(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var first, second atomic.Int32

	d.Trigger(func() { first.Add(1) })
	stale := d.gen
	d.Trigger(func() { second.Add(1) })

	// the first timer's callback arriving after it was replaced
	d.fire(stale)
	assert.Zero(t, first.Load())
	assert.Zero(t, second.Load())
	assert.True(t, d.Pending())

	d.Cancel()
	d.fire(stale + 1)
	assert.Zero(t, second.Load(), "cancelled timer stays silent")
	assert.False(t, d.Pending())
}
