package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/hikam/internal/entities"
)

func waitReady(t *testing.T, b *Binding) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, b.Wait(ctx))
}

func TestBinding_Lifecycle(t *testing.T) {
	b := NewBinding(BindingConfig{Delay: 100 * time.Millisecond})
	defer b.Close()

	assert.Equal(t, StateUninitialized, b.State())
	assert.False(t, b.IsReady())
	assert.False(t, b.Primed())
	assert.Empty(t, b.Search("صبر", DefaultOptions()))

	b.Rebuild(quotesOf("الصبر مفتاح الفرج", "العلم نور", "من صبر ظفر"))
	assert.True(t, b.IsIndexing())
	assert.True(t, b.Primed())
	assert.Empty(t, b.Search("صبر", DefaultOptions()), "no results while indexing")
	assert.Empty(t, b.Suggestions("صب", 5))

	waitReady(t, b)
	assert.True(t, b.IsReady())
	assert.False(t, b.IsIndexing())
	assert.Equal(t, 3, b.Len())
	assert.Greater(t, b.Terms(), 0)
	assert.Equal(t, []string{"q1", "q3"}, ids(b.Search("صبر", DefaultOptions())))
	assert.NotEmpty(t, b.Suggestions("صب", 5))
	assert.Nil(t, b.LastError())
}

func TestBinding_ChangeReturnsToIndexing(t *testing.T) {
	b := NewBinding(BindingConfig{Delay: 100 * time.Millisecond})
	defer b.Close()

	b.Rebuild(quotesOf("العلم نور"))
	waitReady(t, b)

	b.Rebuild(quotesOf("الصبر مفتاح الفرج"))
	assert.Equal(t, StateIndexing, b.State())
	assert.Empty(t, b.Search("علم", DefaultOptions()))

	waitReady(t, b)
	assert.Empty(t, b.Search("علم", DefaultOptions()))
	assert.Len(t, b.Search("صبر", DefaultOptions()), 1)
}

func TestBinding_LastWriteWins(t *testing.T) {
	b := NewBinding(BindingConfig{Delay: 20 * time.Millisecond})
	defer b.Close()

	var built []int
	b.build = func(quotes []entities.Quote) *Index {
		built = append(built, len(quotes))
		return BuildIndex(quotes)
	}

	b.Rebuild(quotesOf("العلم نور"))
	b.Rebuild(quotesOf("العلم نور", "الصبر مفتاح الفرج"))
	b.Rebuild(quotesOf("العلم نور", "الصبر مفتاح الفرج", "من صبر ظفر"))
	waitReady(t, b)

	assert.Equal(t, []int{3}, built)
	assert.Equal(t, 3, b.Len())
}

func TestBinding_EmptyCollection(t *testing.T) {
	b := NewBinding(BindingConfig{Delay: 10 * time.Millisecond})
	defer b.Close()

	b.Rebuild(quotesOf("العلم نور"))
	waitReady(t, b)

	b.Rebuild(nil)
	assert.Equal(t, StateUninitialized, b.State())
	waitReady(t, b)
	assert.Empty(t, b.Search("علم", DefaultOptions()))
	assert.Zero(t, b.Len())
}

func TestBinding_BuildFailure(t *testing.T) {
	b := NewBinding(BindingConfig{Delay: 10 * time.Millisecond})
	defer b.Close()

	b.build = func([]entities.Quote) *Index {
		panic("corrupt lexicon")
	}

	b.Rebuild(quotesOf("العلم نور"))
	waitReady(t, b)

	assert.Equal(t, StateUninitialized, b.State())
	assert.Empty(t, b.Search("علم", DefaultOptions()))

	ierr := b.LastError()
	require.NotNil(t, ierr)
	assert.Equal(t, 1, ierr.Quotes)
	assert.Contains(t, ierr.Error(), "corrupt lexicon")

	b.build = BuildIndex
	require.NoError(t, b.RebuildNow(quotesOf("العلم نور")))
	assert.True(t, b.IsReady())
	assert.Nil(t, b.LastError())
}

func TestBinding_RebuildNow(t *testing.T) {
	b := NewBinding(BindingConfig{Delay: time.Hour})
	defer b.Close()

	b.Rebuild(quotesOf("العلم نور"))
	require.NoError(t, b.RebuildNow(quotesOf("الصبر مفتاح الفرج")))

	assert.True(t, b.IsReady())
	assert.Len(t, b.Search("صبر", DefaultOptions()), 1)
	assert.Empty(t, b.Search("علم", DefaultOptions()))

	b.build = func([]entities.Quote) *Index { return nil }
	err := b.RebuildNow(quotesOf("العلم نور"))
	var ierr *IndexError
	require.True(t, errors.As(err, &ierr))
	assert.False(t, b.IsReady())
}

func TestBinding_WaitHonoursContext(t *testing.T) {
	b := NewBinding(BindingConfig{Delay: time.Hour})
	defer b.Close()

	b.Rebuild(quotesOf("العلم نور"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, b.Wait(ctx), context.DeadlineExceeded)
}

func TestBinding_CustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.ShortBonus, w.VeryShortBonus = 0, 0
	b := NewBinding(BindingConfig{Weights: &w})
	defer b.Close()

	require.NoError(t, b.RebuildNow(quotesOf("الصبر مفتاح الفرج")))
	results := b.SearchScored("صبر", DefaultOptions())
	require.Len(t, results, 1)
	assert.Equal(t, 15, results[0].Score)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(BindingConfig{Delay: 10 * time.Millisecond})
	defer r.Close()

	a := r.For(1)
	assert.Same(t, a, r.For(1))
	assert.NotSame(t, a, r.For(2))
	assert.Equal(t, []uint{1, 2}, r.Users())

	require.NoError(t, a.RebuildNow(quotesOf("العلم نور")))
	assert.Empty(t, r.For(2).Search("علم", DefaultOptions()))

	_, ok := r.Lookup(3)
	assert.False(t, ok)

	r.Remove(2)
	assert.Equal(t, []uint{1}, r.Users())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "indexing", StateIndexing.String())
	assert.Equal(t, "ready", StateReady.String())
}
