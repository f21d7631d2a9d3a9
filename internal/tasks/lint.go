// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/docextract/devcmd/internal/dispatch"
	"github.com/docextract/devcmd/internal/issue"
	"github.com/docextract/devcmd/internal/procexec"
)

// Linters in the order they run.
var linters = []string{"isort", "black", "mypy", "bandit"}

// LintSpec declares the lint command.
var LintSpec = dispatch.CommandSpec{
	Name:  "lint",
	Short: "Run import sorting, formatting, type checking and security scanning",
	Long: `Run isort, black, mypy and bandit over the project.

Without a tool flag all four run in that order. With one or more tool flags
only those run, in the same order. Formatters check by default; --fix lets
them rewrite files.`,
	Example: `  devcmd lint
  devcmd lint --fix --isort --black`,
	Options: []dispatch.OptionDecl{
		dispatch.Bool("fix", "", "Let isort and black rewrite files"),
		dispatch.Bool("check", "", "Only report formatting problems (default)"),
		dispatch.Bool("black", "", "Run black"),
		dispatch.Bool("isort", "", "Run isort"),
		dispatch.Bool("mypy", "", "Run mypy"),
		dispatch.Bool("bandit", "", "Run bandit"),
	},
}

// SelectedLinters returns the linters requested by inv, in run order.
func SelectedLinters(inv *dispatch.Invocation) []string {
	var selected []string
	for _, name := range linters {
		if inv.Bool(name) {
			selected = append(selected, name)
		}
	}
	if len(selected) == 0 {
		return linters
	}
	return selected
}

// LintCalls builds the calls for the selected linters.
func (e *Env) LintCalls(selected []string, fix bool) []procexec.Call {
	cfg := e.Config.Lint
	all := append(append([]string{}, cfg.Paths...), cfg.TestPaths...)

	var calls []procexec.Call
	for _, name := range selected {
		switch name {
		case "isort":
			args := []string{}
			if !fix {
				args = append(args, "--check-only", "--diff")
			}
			calls = append(calls, procexec.Command("isort", append(args, all...)...))
		case "black":
			args := []string{}
			if !fix {
				args = append(args, "--check")
			}
			calls = append(calls, procexec.Command("black", append(args, all...)...))
		case "mypy":
			calls = append(calls, procexec.Command("mypy", cfg.Paths...))
		case "bandit":
			calls = append(calls,
				procexec.Command("bandit", append(append([]string{"-r"}, cfg.Paths...), "-ll")...).
					Named("bandit"),
				procexec.Command("bandit", append(append([]string{"-r"}, cfg.TestPaths...), "-ll", "--skip", "B101")...).
					Named("bandit tests"),
			)
		}
	}
	return calls
}

// Lint runs the selected linters as best-effort steps.
func (e *Env) Lint(ctx context.Context, inv *dispatch.Invocation) (procexec.ExitCode, error) {
	var report procexec.Report
	for _, call := range e.LintCalls(SelectedLinters(inv), inv.Bool("fix")) {
		e.Out.Header("Running " + call.Name())
		e.tolerate(ctx, &report, call)
	}

	e.Out.Summary("Lint summary", &report)
	if failed := report.Failed(); len(failed) > 0 && e.Config.Lint.Strict {
		e.Out.Failure("Linting found problems")
		steps := make([]string, 0, len(failed))
		for _, o := range failed {
			steps = append(steps, o.Step)
		}
		return procexec.ExitFailure, issue.NewErrorContext().
			WithOperation("lint").
			WithIssue(issue.StepFailedId).
			WithSuggestion("Run 'devcmd lint --fix' to let isort and black rewrite files").
			WithSuggestion("Set lint.strict: false to report problems without failing").
			Wrap(fmt.Errorf("%d of %d steps failed: %s", len(failed), report.Len(), strings.Join(steps, ", "))).
			BuildError()
	}
	e.Out.Success("Linting complete!")
	return procexec.ExitSuccess, nil
}
