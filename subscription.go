package statekit

import (
	"github.com/google/uuid"

	"github.com/jpalmerr/statekit/internal/registry"
)

// Subscription is an opaque handle to a registered listener.
//
// A Subscription identifies exactly one registration; cancelling it removes
// that listener and nothing else. Handles replace callback identity as the
// registry key, so the same callback function may be registered any number
// of times, each registration yielding its own handle.
type Subscription struct {
	id     string
	cancel func()
}

// ID returns the subscription's unique identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Cancel unregisters the listener.
//
// After Cancel returns, the listener receives no further notifications,
// including from writes already in flight whose notification has not yet
// reached it. Cancel is idempotent.
func (s *Subscription) Cancel() {
	s.cancel()
}

// subscribeConfig holds mutable state during listener registration.
type subscribeConfig[S any] struct {
	equal func(next, prev View[S]) bool
}

// SubscribeOption configures a listener registered via [Store.Subscribe].
type SubscribeOption[S any] func(*subscribeConfig[S])

// WithEquality sets the listener's equality predicate.
//
// The predicate is called with the candidate view and the previous view on
// every write; the listener is notified only when it returns true. Note
// the polarity: returning true means "this write should notify", not "the
// views are equal".
//
// Without this option the listener is notified on every write
// unconditionally. Projection-aware defaults live one layer up, in
// [Select].
func WithEquality[S any](equal func(next, prev View[S]) bool) SubscribeOption[S] {
	return func(cfg *subscribeConfig[S]) {
		cfg.equal = equal
	}
}

// Subscribe registers a raw listener and returns its [Subscription] handle.
//
// The listener is invoked with the candidate view for every write that
// passes its equality predicate; with no predicate it is invoked for every
// write. Notification runs synchronously in the writer's goroutine, before
// the write commits (see [Store.Write]).
//
// The caller must call [Subscription.Cancel] when the consuming component
// goes away; the store holds the listener forever otherwise.
//
// Most UI-facing consumers want [Select] instead, which adds a projection
// and a projection-aware default equality.
func (s *Store[S]) Subscribe(fn func(View[S]), opts ...SubscribeOption[S]) *Subscription {
	cfg := &subscribeConfig[S]{}
	for _, opt := range opts {
		opt(cfg)
	}

	id := uuid.NewString()
	s.listeners.Add(registry.Listener[View[S]]{
		ID:     id,
		Update: fn,
		Should: cfg.equal,
	})

	s.logger.Debug("listener registered", "store", s.name, "subscription_id", id)

	return &Subscription{
		id: id,
		cancel: func() {
			s.listeners.Remove(id)
		},
	}
}
