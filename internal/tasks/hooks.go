// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"context"

	"github.com/docextract/devcmd/internal/dispatch"
	"github.com/docextract/devcmd/internal/procexec"
)

// HooksSpec declares the hooks command.
var HooksSpec = dispatch.CommandSpec{
	Name:  "hooks",
	Short: "Install the pre-commit git hooks",
	Long:  `Install pre-commit with pip when it is not on PATH, then run 'pre-commit install'.`,
}

// Hooks installs the hook manager if needed and its git hooks.
func (e *Env) Hooks(ctx context.Context, _ *dispatch.Invocation) (procexec.ExitCode, error) {
	return e.installHooks(ctx)
}

func (e *Env) installHooks(ctx context.Context) (procexec.ExitCode, error) {
	tool := e.Config.Hooks.Tool

	if _, err := e.Runner.LookPath(tool); err != nil {
		e.Out.Info(tool + " not found on PATH, installing it")
		code, err := e.run(ctx, procexec.Command(e.Config.Python, "-m", "pip", "install", tool).Named("install "+tool))
		if err != nil || !code.IsSuccess() {
			return code, err
		}
	}

	e.Out.Header("Installing git hooks")
	code, err := e.run(ctx, procexec.Command(tool, "install").Named(tool+" install"))
	if err == nil && code.IsSuccess() {
		e.Out.Success("Git hooks installed!")
	}
	return code, err
}
