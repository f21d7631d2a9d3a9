// SPDX-License-Identifier: MPL-2.0

// Package dispatch holds devcmd's command table: the option schema of every
// command (CommandSpec), the parsed options of one run (Invocation), the
// Handler capability every command implements, and the Registry mapping
// command names to handlers.
//
// The CLI layer generates its cobra commands from the registered specs, so the
// table is the single source of truth for names, flags and defaults.
package dispatch
