// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// UsageError is a command line that does not match what Cmd accepts:
// an unknown command, an unknown or malformed flag, or stray arguments.
// The error handler prints it followed by the usage of Cmd.
type UsageError struct {
	Cmd *cobra.Command
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

func usageError(cmd *cobra.Command, err error) error {
	return &UsageError{Cmd: cmd, Err: err}
}

// noArgs is cobra.NoArgs reporting a UsageError.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	return usageError(cmd, fmt.Errorf("unexpected arguments for %s: %s", cmd.CommandPath(), strings.Join(args, " ")))
}
