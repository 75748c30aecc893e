// Package session owns live user workspaces and their persistence.
//
// A Workspace bundles one user's board manager, preview/undo state, and
// sync coordinator. The Coordinator observes the board's mutation stream
// and debounces a full-model persist: every mutation restarts a fixed
// quiet-period timer, and when it fires the current snapshot is shipped
// to the persistence collaborator, fire-and-forget. A failed sync is
// logged and left for the next debounce cycle; there are no retry loops.
//
// Hydration runs before the coordinator subscribes to mutations, so a
// freshly loaded (possibly empty) model is never synced over real
// persisted data.
package session
