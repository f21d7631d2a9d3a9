// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/docextract/devcmd/internal/dispatch"
)

// newTaskCommand creates the cobra command for a registered task.
func newTaskCommand(app *App, c dispatch.Command) *cobra.Command {
	spec := c.Spec
	taskCmd := &cobra.Command{
		Use:     spec.Name,
		Short:   spec.Short,
		Long:    spec.Long,
		Example: spec.Example,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := spec.CheckArgs(args); err != nil {
				return usageError(cmd, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			inv, err := dispatch.FromFlags(spec, cmd.Flags())
			if err != nil {
				return err
			}
			return exitFor(app.Registry.Run(cmd.Context(), c, inv))
		},
	}
	if taskCmd.Long == "" {
		taskCmd.Long = spec.Short
	}
	spec.Bind(taskCmd.Flags())

	return taskCmd
}
