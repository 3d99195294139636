// Package sse exposes a statekit store over HTTP.
//
// The bridge serves a JSON snapshot of the current state, a Server-Sent
// Events stream of committed views, and optional POST endpoints that
// invoke registered actions. It is the integration layer for
// browser-rendered hosts: the page holds its local copy of the state and
// refreshes it from the event stream, while user interactions post back
// through the action endpoints.
//
// The package builds on the statekit core without being required by it.
package sse
