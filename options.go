package statekit

import (
	"errors"
	"log/slog"
)

// storeConfig holds mutable state during Store construction.
type storeConfig[S any] struct {
	logger          *slog.Logger
	commitCallbacks []func(View[S])
}

// Option is a function that configures a [Store] during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithLogger], [WithCommitCallback].
type Option[S any] func(*storeConfig[S]) error

// WithLogger sets a custom [slog.Logger] for the store.
//
// The store logs commits at Debug level and recovered commit-callback
// panics at Error level. If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger[S any](logger *slog.Logger) Option[S] {
	return func(cfg *storeConfig[S]) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithCommitCallback registers a function to be called after every commit.
//
// The callback receives the committed [View]. Unlike listeners registered
// via [Store.Subscribe], commit callbacks run after the new value is
// visible through [Store.State], are never gated by equality predicates,
// and are isolated: panics within them are recovered and logged rather
// than propagated to the writer.
//
// Multiple callbacks may be registered by calling WithCommitCallback
// multiple times; they execute in registration order.
//
// Callbacks run synchronously in the writer's goroutine and must be
// non-blocking; long-running work should be dispatched elsewhere.
//
// Nil callbacks are silently ignored.
func WithCommitCallback[S any](cb func(View[S])) Option[S] {
	return func(cfg *storeConfig[S]) error {
		if cb == nil {
			return nil // no-op for nil callback (safe to call)
		}
		cfg.commitCallbacks = append(cfg.commitCallbacks, cb)
		return nil
	}
}
