// Package statekit provides a minimal, embeddable state container for
// sharing one piece of application state between independent components.
//
// StateKit is designed as an SDK-first library: a store holds a single
// named state value, components subscribe to changes through listeners or
// projections, and state is replaced exclusively through actions whose
// state parameter is hidden behind a closure. There is no middleware
// pipeline, no persistence, and no multi-store coordination; the host
// framework's rendering machinery stays entirely outside the library.
//
// # Quick Start
//
// Create a store, bind actions, and subscribe:
//
//	type Counter struct {
//	    Count      int
//	    IsUpdating bool
//	}
//
//	store, _ := statekit.New("counter", Counter{})
//
//	increment := statekit.Action(store, func(s Counter, by int) Counter {
//	    s.Count += by
//	    return s
//	})
//
//	sel := statekit.Select(store,
//	    func(v statekit.View[Counter]) int { return v.State().Count },
//	    statekit.OnChange[Counter](func(count int) {
//	        fmt.Println("count is now", count)
//	    }),
//	)
//	defer sel.Cancel()
//
//	increment(1) // prints "count is now 1"
//
// # Actions
//
// Actions are pure functions from the current state (plus trailing
// arguments) to a replacement state. Binding an action to a store strips
// the state parameter from its public signature:
//
//	reset := statekit.Action0(store, func(s Counter) Counter {
//	    return Counter{}
//	})
//	reset()
//
// Asynchronous actions follow the return-style protocol: the reducer
// receives a context and the state snapshot taken when the action starts,
// does its external work, and returns the replacement state. Exactly one
// commit happens when the reducer returns:
//
//	refresh := statekit.AsyncAction0(store, func(ctx context.Context, s Counter) (Counter, error) {
//	    n, err := fetchCount(ctx)
//	    if err != nil {
//	        return s, err
//	    }
//	    s.Count = n
//	    return s, nil
//	})
//	if err := refresh(ctx); err != nil { ... }
//
// Concurrent asynchronous actions against the same store both commit; the
// later return wins. See [AsyncAction] for the exact semantics.
//
// # Subscriptions
//
// Three subscription surfaces are provided:
//
//   - [Store.Subscribe]: raw listeners receiving every committed write
//     (optionally gated by a view-level equality predicate)
//   - [Select]: projection-based listeners with a cached derived value and
//     element-wise default equality for sequence projections
//   - [Store.Watch]: a buffered channel of committed views for hosts that
//     integrate via channels rather than callbacks
//
// Listener notification is synchronous: it runs in the writer's goroutine
// and completes (or panics) before the write returns. The store commits the
// new value after notifying listeners, so equality predicates always
// compare against the previous in-memory value.
//
// # Architecture
//
// The package is self-contained apart from one internal package:
//
//   - internal/registry: ordered listener registry keyed by opaque IDs
//
// Supporting packages build on the core without being required by it:
//
//   - config: YAML definitions of dynamic stores for the standalone binary
//   - sse: HTTP bridge exposing a store as JSON + Server-Sent Events
package statekit
