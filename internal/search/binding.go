package search

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/hikam/internal/entities"
)

// DefaultRebuildDelay defers index construction off the caller's path.
const DefaultRebuildDelay = 50 * time.Millisecond

// State is the lifecycle stage of a Binding.
type State int

const (
	StateUninitialized State = iota
	StateIndexing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateIndexing:
		return "indexing"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// IndexError reports a failed index build.
type IndexError struct {
	Quotes int
	Cause  error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("build search index over %d quotes: %v", e.Quotes, e.Cause)
}

func (e *IndexError) Unwrap() error {
	return e.Cause
}

type BindingConfig struct {
	Delay   time.Duration
	Weights *Weights
	Name    string
}

// Binding keeps an Engine in step with a changing quote collection.
type Binding struct {
	mu         sync.RWMutex
	name       string
	state      State
	engine     *Engine
	generation uint64
	lastErr    *IndexError
	settled    chan struct{}
	weights    Weights
	debouncer  *Debouncer

	// build is swapped in tests to simulate a failing builder.
	build func([]entities.Quote) *Index
}

func NewBinding(cfg BindingConfig) *Binding {
	delay := cfg.Delay
	if delay <= 0 {
		delay = DefaultRebuildDelay
	}
	weights := DefaultWeights()
	if cfg.Weights != nil {
		weights = *cfg.Weights
	}
	settled := make(chan struct{})
	close(settled)

	return &Binding{
		name:      cfg.Name,
		state:     StateUninitialized,
		settled:   settled,
		weights:   weights,
		debouncer: NewDebouncer(delay),
		build:     BuildIndex,
	}
}

// Rebuild records a new collection and schedules its index build. A later call
// before the build starts supersedes this one.
func (b *Binding) Rebuild(quotes []entities.Quote) {
	snapshot := make([]entities.Quote, len(quotes))
	copy(snapshot, quotes)

	b.mu.Lock()
	b.generation++
	gen := b.generation
	b.engine = nil

	if len(snapshot) == 0 {
		b.state = StateUninitialized
		b.lastErr = nil
		b.settleLocked()
		b.mu.Unlock()
		b.debouncer.Cancel()
		return
	}

	b.state = StateIndexing
	b.openLocked()
	b.mu.Unlock()

	b.debouncer.Trigger(func() {
		_ = b.run(gen, snapshot)
	})
}

// RebuildNow builds the index for quotes on the calling goroutine.
func (b *Binding) RebuildNow(quotes []entities.Quote) error {
	snapshot := make([]entities.Quote, len(quotes))
	copy(snapshot, quotes)

	b.debouncer.Cancel()

	b.mu.Lock()
	b.generation++
	gen := b.generation
	b.engine = nil
	if len(snapshot) == 0 {
		b.state = StateUninitialized
		b.lastErr = nil
		b.settleLocked()
		b.mu.Unlock()
		return nil
	}
	b.state = StateIndexing
	b.openLocked()
	b.mu.Unlock()

	return b.run(gen, snapshot)
}

func (b *Binding) run(gen uint64, quotes []entities.Quote) error {
	engine, err := b.safeBuild(quotes)

	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.generation {
		// superseded while building
		return nil
	}

	if err != nil {
		log.Printf("[SEARCH] %s: %v", b.label(), err)
		b.engine = nil
		b.state = StateUninitialized
		b.lastErr = err
		b.settleLocked()
		return err
	}

	b.engine = engine
	b.state = StateReady
	b.lastErr = nil
	b.settleLocked()
	return nil
}

func (b *Binding) safeBuild(quotes []entities.Quote) (engine *Engine, ierr *IndexError) {
	defer func() {
		if r := recover(); r != nil {
			engine = nil
			ierr = &IndexError{Quotes: len(quotes), Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	idx := b.build(quotes)
	if idx == nil {
		return nil, &IndexError{Quotes: len(quotes), Cause: fmt.Errorf("builder returned no index")}
	}
	return newEngineWithIndex(quotes, idx, b.weights), nil
}

func (b *Binding) openLocked() {
	select {
	case <-b.settled:
		b.settled = make(chan struct{})
	default:
	}
}

func (b *Binding) settleLocked() {
	select {
	case <-b.settled:
	default:
		close(b.settled)
	}
}

func (b *Binding) label() string {
	if b.name == "" {
		return "binding"
	}
	return b.name
}

// Search runs query against the current index, or returns nothing while not ready.
func (b *Binding) Search(query string, opts Options) []entities.Quote {
	engine := b.readyEngine()
	if engine == nil {
		return []entities.Quote{}
	}
	return engine.Search(query, opts)
}

func (b *Binding) SearchScored(query string, opts Options) []Result {
	engine := b.readyEngine()
	if engine == nil {
		return []Result{}
	}
	return engine.SearchScored(query, opts)
}

func (b *Binding) Suggestions(prefix string, limit int) []string {
	engine := b.readyEngine()
	if engine == nil {
		return []string{}
	}
	return engine.Suggestions(prefix, limit)
}

func (b *Binding) readyEngine() *Engine {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.state != StateReady {
		return nil
	}
	return b.engine
}

func (b *Binding) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

func (b *Binding) IsIndexing() bool {
	return b.State() == StateIndexing
}

func (b *Binding) IsReady() bool {
	return b.State() == StateReady
}

// Primed reports whether the binding has ever been given a collection.
func (b *Binding) Primed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.generation > 0
}

// Len is the number of quotes behind the ready index.
func (b *Binding) Len() int {
	engine := b.readyEngine()
	if engine == nil {
		return 0
	}
	return engine.Len()
}

// Terms is the number of distinct terms in the ready index.
func (b *Binding) Terms() int {
	engine := b.readyEngine()
	if engine == nil {
		return 0
	}
	return engine.index.Len()
}

func (b *Binding) LastError() *IndexError {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastErr
}

// Wait blocks until no build is pending or ctx is done.
func (b *Binding) Wait(ctx context.Context) error {
	for {
		b.mu.RLock()
		ch := b.settled
		b.mu.RUnlock()

		select {
		case <-ch:
			// a Rebuild may have reopened the channel after it closed
			b.mu.RLock()
			same := ch == b.settled
			b.mu.RUnlock()
			if same {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close cancels any pending build.
func (b *Binding) Close() {
	b.debouncer.Cancel()
}
