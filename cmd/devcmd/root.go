// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// NewRootCommand builds the devcmd command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devcmd",
		Short: "Developer tasks for the document extraction service",
		Long: headerStyle.Render("devcmd") + infoStyle.Render(" - developer tasks for the document extraction service") + `

devcmd wraps the project's tool chain behind one entry point: linters,
pytest, the SAM CLI, pre-commit and the deploy script. Every task builds a
command line, runs it and reports its exit code.

` + infoStyle.Render("Examples:") + `
  devcmd setup              Create .venv, install the project and git hooks
  devcmd lint --fix         Format imports and code, then type check and scan
  devcmd test -c            Run unit tests with coverage
  devcmd invoke             Build and invoke the function locally
  devcmd deploy --prod      Deploy the prod stage`,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Registered names match as subcommands first, so any argument left
		// for the root is an unknown command.
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return nil
			}
			if _, err := app.Registry.Resolve(args[0]); err != nil {
				return usageError(cmd, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.HasParent() {
				return nil
			}
			return app.prepare(cmd.Context())
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(cmd, err)
	})

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&app.flags.configPath, "config", "", "config file (default is $HOME/.config/devcmd/config.cue, then ./devcmd.cue)")
	pf.BoolVar(&app.flags.dryRun, "dry-run", false, "print commands without running them or writing files")
	pf.StringVar(&app.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	for _, c := range app.Registry.Commands() {
		rootCmd.AddCommand(newTaskCommand(app, c))
	}
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// Run executes devcmd with args and returns the process exit code.
func Run(ctx context.Context, args []string, deps Dependencies) int {
	app, err := NewApp(deps)
	if err != nil {
		fmt.Fprintln(os.Stderr, failStyle.Render("Error: ")+err.Error())
		return 1
	}

	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(plainWriter{app.stderr})

	if err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.errorHandler()),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return int(exitErr.Code)
		}
		return 1
	}
	return 0
}

// plainWriter hides the file descriptor of stderr so fang routes every error
// through errorHandler, terminal or not.
type plainWriter struct {
	io.Writer
}

// Execute runs devcmd with the process arguments and exits.
// This is called by main.main().
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], Dependencies{}))
}
