// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Besides environment and filesystem helpers (SetHomeDir, Chdir,
// MustWriteFile) it offers RecordingRunner, a procexec.Runner that records
// every call and answers with scripted exit codes instead of starting processes.
package testutil
