// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the devcmd command line.
//
// The task subcommands are generated from the dispatch registry: every
// registered dispatch.CommandSpec becomes a cobra command whose flags are
// bound from the CommandSpec option declarations and whose RunE forwards the
// parsed invocation to the registered handler. The config command tree is
// written by hand.
package cmd
