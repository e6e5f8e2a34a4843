// Package hook provides priority-ordered event hooks.
//
// A Registry holds the hooks for one event type. Hooks are identified by
// name; registering a second hook with the same name replaces the first.
// Run calls every hook, highest priority first, and reports all of their
// errors together so one failing hook never stops the rest.
package hook

import "fmt"

// Standard priorities. Higher values run first.
//
//	1000+   = system/critical hooks
//	500-999 = framework hooks
//	100-499 = feature hooks
//	0-99    = user hooks
const (
	PrioritySystem  = 1000
	PriorityFeature = 100
	PriorityUser    = 0

	// PriorityAudit runs after every other hook.
	PriorityAudit = -1000
)

// Hook handles events of type E.
type Hook[E any] interface {
	// Name returns a unique identifier for this hook.
	Name() string

	// Priority returns the hook priority. Higher values run first.
	Priority() int

	// Run handles one event.
	Run(event E) error
}

// Func wraps a function as a Hook.
type Func[E any] struct {
	name     string
	priority int
	fn       func(event E) error
}

// NewFunc creates a new function hook.
func NewFunc[E any](name string, priority int, fn func(event E) error) *Func[E] {
	return &Func[E]{name: name, priority: priority, fn: fn}
}

// Name implements Hook.
func (f *Func[E]) Name() string { return f.name }

// Priority implements Hook.
func (f *Func[E]) Priority() int { return f.priority }

// Run implements Hook.
func (f *Func[E]) Run(event E) error {
	if f.fn == nil {
		return nil
	}
	return f.fn(event)
}

// Error reports the failure of one named hook.
type Error struct {
	Hook string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("hook %s: %v", e.Hook, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
