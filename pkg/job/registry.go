package job

// Registry is an insertion-ordered map of job names to handles. Re-inserting
// an existing name moves it to the end, so Last always reports the most
// recently inserted entry. Entries are never removed.
//
// Registry is not safe for concurrent use; the orchestrator owns it.
type Registry[T any] struct {
	order   []string
	entries map[string]T
}

// NewRegistry returns an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]T)}
}

// Put inserts or replaces the entry for name and marks it most recent.
func (r *Registry[T]) Put(name string, value T) {
	if _, exists := r.entries[name]; exists {
		for i, n := range r.order {
			if n == name {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.order = append(r.order, name)
	r.entries[name] = value
}

// Get returns the entry for name.
func (r *Registry[T]) Get(name string) (T, bool) {
	v, ok := r.entries[name]
	return v, ok
}

// Last returns the most recently inserted entry.
func (r *Registry[T]) Last() (string, T, bool) {
	if len(r.order) == 0 {
		var zero T
		return "", zero, false
	}
	name := r.order[len(r.order)-1]
	return name, r.entries[name], true
}

// Names returns the registered names in insertion order.
func (r *Registry[T]) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of entries.
func (r *Registry[T]) Len() int {
	return len(r.order)
}
