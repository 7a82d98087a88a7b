package search

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds one Binding per user.
type Registry struct {
	mu       sync.Mutex
	cfg      BindingConfig
	bindings map[uint]*Binding
}

func NewRegistry(cfg BindingConfig) *Registry {
	return &Registry{
		cfg:      cfg,
		bindings: make(map[uint]*Binding),
	}
}

// For returns the user's binding, creating it on first use.
func (r *Registry) For(userID uint) *Binding {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bindings[userID]
	if !ok {
		cfg := r.cfg
		cfg.Name = fmt.Sprintf("user %d", userID)
		b = NewBinding(cfg)
		r.bindings[userID] = b
	}
	return b
}

// Lookup returns the user's binding without creating one.
func (r *Registry) Lookup(userID uint) (*Binding, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bindings[userID]
	return b, ok
}

func (r *Registry) Users() []uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint, 0, len(r.bindings))
	for id := range r.bindings {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Registry) Remove(userID uint) {
	r.mu.Lock()
	b, ok := r.bindings[userID]
	delete(r.bindings, userID)
	r.mu.Unlock()
	if ok {
		b.Close()
	}
}

func (r *Registry) Close() {
	r.mu.Lock()
	bindings := r.bindings
	r.bindings = make(map[uint]*Binding)
	r.mu.Unlock()
	for _, b := range bindings {
		b.Close()
	}
}
