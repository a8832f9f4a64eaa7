// Package cli provides the interactive Attendo command-line client.
//
// It wires configuration, the local session store, the API client and an
// interactive REPL. Typical flow: restore or prompt for a session, then
// execute user commands until exit.
//
// Key features:
//   - Login / Register / Logout with a locally persisted session
//   - Check-in and check-out guarded by the office radius
//   - Attendance history and a dashboard summary
//   - Profile view and edit
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
