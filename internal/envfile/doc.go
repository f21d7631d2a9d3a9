// SPDX-License-Identifier: MPL-2.0

// Package envfile loads the local environment overlay (".env") and merges it
// into the process environment before external tools run.
//
// The format is deliberately small: one KEY=value per line, blank lines and
// lines starting with '#' are skipped, and the first '=' splits key from value.
// Values are taken literally (no quote or escape processing). A non-blank line
// without '=' is an error; the overlay is never applied partially.
package envfile
