// Package cli provides the interactive libris terminal client.
//
// It wires configuration, the REST gateway, the session store and the page
// router into an interactive REPL. Typical flow: restore a persisted session,
// start a background connectivity watcher, and execute user commands.
//
// Key features:
//   - Login / Logout with a locally cached session
//   - Role-gated pages: admins manage books, members, inventory, circulation,
//     fines and reports; members browse the catalog and review their own
//     loans and fines
//   - Incremental catalog search with debounced requests
//   - An auto-refreshing dashboard that stops when the page is left
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartConnectivityWatcher, and runREPL for details.
package cli
