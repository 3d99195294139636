package statekit

import "context"

// Action binds a synchronous reducer taking one argument to a store.
//
// The reducer is a pure function from (current state, argument) to a
// replacement state; it must never mutate the state value in place. The
// returned function is the reducer's public form with the state parameter
// stripped: calling it reads the current state, applies the reducer, and
// commits the result via [Store.Write]. Nothing is returned to the caller;
// a panic raised by the reducer (or by a listener during propagation)
// propagates to the caller.
//
// Example:
//
//	increment := statekit.Action(store, func(s Counter, by int) Counter {
//	    s.Count += by
//	    return s
//	})
//	increment(5)
func Action[S, A any](st *Store[S], reduce func(S, A) S) func(A) {
	return func(arg A) {
		st.Write(reduce(st.State(), arg))
	}
}

// Action0 binds a synchronous reducer taking no arguments to a store.
// See [Action] for semantics.
func Action0[S any](st *Store[S], reduce func(S) S) func() {
	return func() {
		st.Write(reduce(st.State()))
	}
}

// Action2 binds a synchronous reducer taking two arguments to a store.
// See [Action] for semantics.
func Action2[S, A, B any](st *Store[S], reduce func(S, A, B) S) func(A, B) {
	return func(a A, b B) {
		st.Write(reduce(st.State(), a, b))
	}
}

// AsyncAction binds an asynchronous reducer taking one argument to a store.
//
// The reducer follows the return-style protocol: it receives the state
// snapshot taken when the action starts, performs its external work, and
// returns the replacement state. Exactly one commit happens, when the
// reducer returns nil error; the returned value replaces the state
// wholesale. A non-nil error skips the commit and is returned to the
// caller unmodified.
//
// The store stays readable and writable while the reducer runs; there is
// no locking across the reducer's lifetime and no conflict detection. Two
// concurrent asynchronous actions against the same store both commit, and
// whichever returns later wins, silently overwriting earlier updates not
// folded into its result. Callers needing stricter coordination must
// serialize their own action calls.
//
// The wrapper itself is a plain blocking function; run it in its own
// goroutine for fire-and-forget use. The context is handed to the reducer
// for its external work; the store does not abort in-flight reducers.
//
// Example:
//
//	load := statekit.AsyncAction(store, func(ctx context.Context, s Counter, id string) (Counter, error) {
//	    n, err := client.Count(ctx, id)
//	    if err != nil {
//	        return s, err
//	    }
//	    s.Count = n
//	    return s, nil
//	})
//	if err := load(ctx, "widgets"); err != nil { ... }
func AsyncAction[S, A any](st *Store[S], reduce func(context.Context, S, A) (S, error)) func(context.Context, A) error {
	return func(ctx context.Context, arg A) error {
		next, err := reduce(ctx, st.State(), arg)
		if err != nil {
			return err
		}
		st.Write(next)
		return nil
	}
}

// AsyncAction0 binds an asynchronous reducer taking no arguments to a
// store. See [AsyncAction] for semantics.
func AsyncAction0[S any](st *Store[S], reduce func(context.Context, S) (S, error)) func(context.Context) error {
	return func(ctx context.Context) error {
		next, err := reduce(ctx, st.State())
		if err != nil {
			return err
		}
		st.Write(next)
		return nil
	}
}

// AsyncAction2 binds an asynchronous reducer taking two arguments to a
// store. See [AsyncAction] for semantics.
func AsyncAction2[S, A, B any](st *Store[S], reduce func(context.Context, S, A, B) (S, error)) func(context.Context, A, B) error {
	return func(ctx context.Context, a A, b B) error {
		next, err := reduce(ctx, st.State(), a, b)
		if err != nil {
			return err
		}
		st.Write(next)
		return nil
	}
}
