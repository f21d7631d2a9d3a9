// SPDX-License-Identifier: MPL-2.0

// Package tasks implements the devcmd command handlers: lint, test, build,
// invoke, clean, hooks, setup and deploy.
//
// Handlers never start processes themselves. Every external tool runs through
// the procexec.Runner held by Env, so the same handler code drives the real
// tool chain, --dry-run and the recording runner used in tests.
//
// Exit-code policy per handler:
//
//   - lint, clean and setup collect best-effort steps in a procexec.Report and
//     return 0. lint returns 1 instead when lint.strict is set and a step failed.
//   - test, build, invoke, hooks and deploy return the exit code of their last
//     tool.
//   - Conditions that are not a tool's exit code (missing bucket, malformed
//     .env, failed dev dependency install, tool not on PATH) are returned as
//     errors.
package tasks
