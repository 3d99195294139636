package statekit

import "sync"

// Selector is a projection-based subscription: it keeps a local copy of a
// derived slice of the store's state and refreshes it whenever the update
// propagator decides the projection changed.
//
// A Selector is the integration point for UI components: the component
// reads its derived value via [Selector.Get] and supplies a refresh
// callback via [OnChange] that triggers its re-render. Created with
// [Select], torn down with [Selector.Cancel].
type Selector[S, D any] struct {
	mu      sync.RWMutex
	current D
	sub     *Subscription
}

// selectConfig holds mutable state during selector registration.
type selectConfig[S, D any] struct {
	equal    func(next, prev D) bool
	onChange func(D)
}

// SelectOption configures a [Selector] created via [Select].
type SelectOption[S, D any] func(*selectConfig[S, D])

// OnChange registers a callback invoked with the new derived value each
// time the selector refreshes. This is where a host component hooks its
// re-render.
//
// The callback runs synchronously in the writer's goroutine, before the
// write commits.
func OnChange[S, D any](fn func(D)) SelectOption[S, D] {
	return func(cfg *selectConfig[S, D]) {
		cfg.onChange = fn
	}
}

// WithDerivedEquality overrides the selector's equality check.
//
// The function receives the newly projected value and the previously
// delivered one; returning true means "unchanged, do not refresh". When
// not set, the default rule of [Equal] applies: element-wise comparison
// for slice and array projections, strict equality otherwise.
func WithDerivedEquality[S, D any](equal func(next, prev D) bool) SelectOption[S, D] {
	return func(cfg *selectConfig[S, D]) {
		cfg.equal = equal
	}
}

// Select subscribes a projection of the store's state.
//
// project narrows the full store view to the slice the subscriber cares
// about; it must be pure. The selector computes the projection once at
// registration time and again for each write whose projected value differs
// from the previously delivered one under the selector's equality check
// (see [WithDerivedEquality]). Writes whose projection is unchanged
// produce no refresh and no [OnChange] invocation.
//
// Example:
//
//	sel := statekit.Select(store, func(v statekit.View[Counter]) []any {
//	    return []any{v.State().Count, v.State().IsUpdating}
//	})
//	pair := sel.Get()
//
// The caller must call [Selector.Cancel] when the consuming component goes
// away.
func Select[S, D any](st *Store[S], project func(View[S]) D, opts ...SelectOption[S, D]) *Selector[S, D] {
	cfg := &selectConfig[S, D]{}
	for _, opt := range opts {
		opt(cfg)
	}

	equal := cfg.equal
	if equal == nil {
		equal = func(next, prev D) bool { return Equal(next, prev) }
	}

	sel := &Selector[S, D]{
		current: project(st.View()),
	}

	sel.sub = st.Subscribe(
		func(next View[S]) {
			d := project(next)
			sel.mu.Lock()
			sel.current = d
			sel.mu.Unlock()
			if cfg.onChange != nil {
				cfg.onChange(d)
			}
		},
		WithEquality[S](func(next, _ View[S]) bool {
			// compare against the projection previously delivered, not a
			// recomputation from the previous view
			return !equal(project(next), sel.Get())
		}),
	)

	return sel
}

// Get returns the selector's current derived value.
//
// The value reflects the last refresh delivered by the update propagator,
// or the projection at registration time if no refresh has happened yet.
func (sel *Selector[S, D]) Get() D {
	sel.mu.RLock()
	defer sel.mu.RUnlock()

	return sel.current
}

// Subscription returns the handle of the underlying listener registration.
func (sel *Selector[S, D]) Subscription() *Subscription {
	return sel.sub
}

// Cancel tears the selector down. After Cancel returns the selector
// receives no further refreshes; [Selector.Get] keeps returning the last
// delivered value. Cancel is idempotent.
func (sel *Selector[S, D]) Cancel() {
	sel.sub.Cancel()
}
