// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/fang"

	"github.com/docextract/devcmd/internal/issue"
)

// errorHandler renders errors returned from command execution.
func (a *App) errorHandler() fang.ErrorHandler {
	return func(w io.Writer, _ fang.Styles, err error) {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Err == nil {
			return
		}

		verbose := a.verbose()
		fmt.Fprintln(w, failStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))

		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(w)
			fmt.Fprint(w, usageErr.Cmd.UsageString())
		}

		if id := issue.IdOf(err); verbose && id != 0 {
			renderIssue(w, id)
		}
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderIssue prints the catalog help for id.
func renderIssue(w io.Writer, id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render("dark")
	if err != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", id, "error", err)
		return
	}
	fmt.Fprint(w, rendered)
}
