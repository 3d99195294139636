package registry

import "sync"

// Listener is a registered subscriber: an update callback paired with an
// optional notification predicate, keyed by an opaque ID.
type Listener[V any] struct {
	// ID uniquely identifies the listener within one registry.
	ID string

	// Update delivers a qualifying value to the subscriber.
	Update func(V)

	// Should decides whether a candidate value qualifies, given the
	// previous value. A nil Should means every value qualifies.
	Should func(next, prev V) bool
}

// Registry is an ordered collection of listeners keyed by ID.
//
// Iteration order is insertion order, which keeps notification
// deterministic. Registry is safe for concurrent use.
type Registry[V any] struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]Listener[V]
}

// New creates an empty [Registry].
func New[V any]() *Registry[V] {
	return &Registry[V]{
		entries: make(map[string]Listener[V]),
	}
}

// Add registers a listener.
//
// Adding a listener whose ID is already present is a no-op: the original
// callback and predicate remain in effect.
func (r *Registry[V]) Add(l Listener[V]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[l.ID]; ok {
		return
	}
	r.entries[l.ID] = l
	r.order = append(r.order, l.ID)
}

// Remove unregisters the listener with the given ID.
// Removing an absent ID is a no-op.
func (r *Registry[V]) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return
	}
	delete(r.entries, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the listener with the given ID, if registered.
//
// Notification paths use Get to re-check membership immediately before
// invoking a listener, so that a subscriber removed mid-notification is
// skipped rather than called.
func (r *Registry[V]) Get(id string) (Listener[V], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.entries[id]
	return l, ok
}

// IDs returns the registered listener IDs in insertion order.
// The returned slice is a copy.
func (r *Registry[V]) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Len returns the number of registered listeners.
func (r *Registry[V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}
