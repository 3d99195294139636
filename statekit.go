package statekit

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/jpalmerr/statekit/internal/registry"
)

// Store is a container for one named piece of shared state.
//
// A Store owns the current state value, the listener registry, and the
// update-propagation algorithm. It is created with [New] and holds its name
// for its entire lifetime; the state value is replaced wholesale on every
// write and is otherwise opaque to the store.
//
// All methods are safe for concurrent use. The store itself performs no
// blocking operations and owns no goroutines; writes serialize the state
// replacement, but there is no transaction discipline across an
// asynchronous action's lifetime — interleavings are possible and the last
// write wins.
type Store[S any] struct {
	name   string
	logger *slog.Logger

	mu    sync.RWMutex
	state S

	listeners *registry.Registry[View[S]]

	watchMu  sync.RWMutex
	watchers map[chan View[S]]struct{}

	commitCallbacks []func(View[S])
}

// New creates a [Store] with the given name and initial state.
//
// The name identifies the state slot within views handed to listeners and
// is fixed for the store's lifetime. Options are applied in order; see
// [WithLogger] and [WithCommitCallback].
//
// Returns an error if the name is empty or any option is invalid.
//
// Example:
//
//	store, err := statekit.New("counter", Counter{},
//	    statekit.WithLogger[Counter](logger),
//	)
func New[S any](name string, initial S, opts ...Option[S]) (*Store[S], error) {
	if name == "" {
		return nil, errors.New("store name cannot be empty")
	}

	cfg := &storeConfig[S]{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store[S]{
		name:            name,
		logger:          logger,
		state:           initial,
		listeners:       registry.New[View[S]](),
		watchers:        make(map[chan View[S]]struct{}),
		commitCallbacks: cfg.commitCallbacks,
	}, nil
}

// Name returns the store's name.
func (s *Store[S]) Name() string {
	return s.name
}

// State returns the current state value.
//
// This is a direct, non-reactive read: it does not register any
// subscription. When called from inside a listener during notification it
// returns the previous value, because the store commits after notifying
// (see [Store.Write]).
func (s *Store[S]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// View returns a snapshot [View] of the current state.
func (s *Store[S]) View() View[S] {
	return View[S]{name: s.name, state: s.State()}
}

// Write replaces the stored state with next and propagates the update.
//
// Propagation order:
//
//  1. Each registered listener is visited in insertion order. A listener
//     with an equality predicate is notified only when the predicate
//     returns true for (candidate view, previous view); a listener without
//     a predicate is notified unconditionally. Membership is re-checked
//     immediately before each invocation, so a listener cancelled
//     mid-write before being reached receives nothing.
//  2. The new value is committed into the store. Until this point,
//     [Store.State] still returns the previous value.
//  3. Watch channels receive the committed view (non-blocking; slow
//     consumers drop), then commit callbacks run.
//
// A panic raised by a listener or predicate propagates to the caller of
// Write: remaining listeners are not notified and the commit does not
// happen. The store does not catch or retry.
//
// Most callers never invoke Write directly; actions bound via [Action] and
// [AsyncAction] feed their results through it.
func (s *Store[S]) Write(next S) {
	s.mu.RLock()
	prev := s.state
	s.mu.RUnlock()

	nextView := View[S]{name: s.name, state: next}
	prevView := View[S]{name: s.name, state: prev}

	for _, id := range s.listeners.IDs() {
		l, ok := s.listeners.Get(id)
		if !ok {
			// cancelled after the write started but before notification
			// reached it
			continue
		}
		if l.Should != nil && !l.Should(nextView, prevView) {
			continue
		}
		l.Update(nextView)
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	s.logger.Debug("state committed", "store", s.name)

	s.broadcast(nextView)

	for _, cb := range s.commitCallbacks {
		s.invokeCommitCallback(cb, nextView)
	}
}

// Listeners returns the number of currently registered listeners,
// including those backing selectors. Watch channels are not listeners and
// are not counted.
func (s *Store[S]) Listeners() int {
	return s.listeners.Len()
}

// invokeCommitCallback calls a commit callback with panic recovery.
// Panics are logged but do not propagate; commit callbacks are post-commit
// observers, not listeners, and cannot abort anything.
func (s *Store[S]) invokeCommitCallback(cb func(View[S]), v View[S]) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("commit callback panicked",
				"panic", r,
				"store", s.name,
			)
		}
	}()
	cb(v)
}
