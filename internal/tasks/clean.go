// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"context"

	"github.com/docextract/devcmd/internal/dispatch"
	"github.com/docextract/devcmd/internal/procexec"
)

// CleanSpec declares the clean command.
var CleanSpec = dispatch.CommandSpec{
	Name:  "clean",
	Short: "Remove build output, coverage data and Python caches",
}

// CleanCalls returns the five removal steps in run order.
func CleanCalls() []procexec.Call {
	return []procexec.Call{
		procexec.Command("rm", "-rf", ".aws-sam").Named("build output"),
		procexec.Command("rm", "-rf", ".coverage", "htmlcov").Named("coverage data"),
		procexec.Command("find", ".", "-type", "d", "-name", "__pycache__", "-prune", "-exec", "rm", "-rf", "{}", "+").
			Named("__pycache__ directories"),
		procexec.Command("find", ".", "-type", "f", "-name", "*.pyc", "-delete").Named("compiled files"),
		procexec.Command("rm", "-rf", ".pytest_cache", ".mypy_cache").Named("tool caches"),
	}
}

// Clean runs every removal step, tolerating failures, and returns 0.
func (e *Env) Clean(ctx context.Context, _ *dispatch.Invocation) (procexec.ExitCode, error) {
	var report procexec.Report
	e.Out.Header("Cleaning build artifacts")
	for _, call := range CleanCalls() {
		e.tolerate(ctx, &report, call)
	}
	e.Out.Summary("Clean summary", &report)
	e.Out.Success("Clean complete!")
	return procexec.ExitSuccess, nil
}
