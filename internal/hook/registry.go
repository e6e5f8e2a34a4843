package hook

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry manages the hooks of one event type.
type Registry[E any] struct {
	mu    sync.RWMutex
	hooks []Hook[E]
}

// NewRegistry creates an empty registry.
func NewRegistry[E any]() *Registry[E] {
	return &Registry[E]{}
}

// Register adds h, replacing any hook with the same name.
func (r *Registry[E]) Register(h Hook[E]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.hooks {
		if existing.Name() == h.Name() {
			r.hooks[i] = h
			r.sortLocked()
			return
		}
	}
	r.hooks = append(r.hooks, h)
	r.sortLocked()
}

// Unregister removes the named hook. It reports whether a hook was removed.
func (r *Registry[E]) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, h := range r.hooks {
		if h.Name() == name {
			r.hooks = append(r.hooks[:i], r.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// Run calls every hook in priority order. Errors and panics are collected
// into the returned error; each is a *Error naming its hook.
func (r *Registry[E]) Run(event E) error {
	r.mu.RLock()
	hooks := make([]Hook[E], len(r.hooks))
	copy(hooks, r.hooks)
	r.mu.RUnlock()

	var errs []error
	for _, h := range hooks {
		if err := runOne(h, event); err != nil {
			errs = append(errs, &Error{Hook: h.Name(), Err: err})
		}
	}
	return errors.Join(errs...)
}

func runOne[E any](h Hook[E], event E) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return h.Run(event)
}

// Count returns the number of registered hooks.
func (r *Registry[E]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks)
}

// Names returns the hook names in run order.
func (r *Registry[E]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.hooks))
	for i, h := range r.hooks {
		names[i] = h.Name()
	}
	return names
}

// Clear removes all hooks.
func (r *Registry[E]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = nil
}

// sortLocked orders hooks by priority, higher first. Equal priorities keep
// registration order.
func (r *Registry[E]) sortLocked() {
	sort.SliceStable(r.hooks, func(i, j int) bool {
		return r.hooks[i].Priority() > r.hooks[j].Priority()
	})
}
