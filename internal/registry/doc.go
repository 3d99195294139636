// Package registry provides the ordered listener registry backing
// statekit's subscription surfaces.
//
// The registry maps opaque string IDs to listeners (update callback plus
// optional notification predicate) and preserves insertion order for
// deterministic notification. It enforces the identity invariants of the
// subscription model: at most one entry per ID, duplicate registration is
// a no-op, removal is unconditional.
package registry
