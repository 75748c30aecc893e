// Package board implements the authoritative project/window model.
//
// The Manager is the single mutable source of truth for a user's
// workspace: an ordered list of projects plus a side map of per-project
// window lists. All mutations are applied atomically under one lock and
// in invocation order; operations on unknown project or window ids are
// silent no-ops, because layout-engine callbacks can race with project
// closure.
//
// Invariant: at least one project exists at all times. Closing the last
// remaining project is a no-op.
//
// Observers registered with Subscribe receive one event per committed
// mutation; the sync coordinator and the WebSocket broadcaster both hang
// off this stream.
package board
