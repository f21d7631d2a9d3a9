// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/docextract/devcmd/internal/procexec"
	"github.com/docextract/devcmd/internal/tasks"
)

// stylePrinter renders handler progress with the CLI styles.
type stylePrinter struct {
	w io.Writer
}

var _ tasks.Printer = stylePrinter{}

func (p stylePrinter) Header(title string) {
	fmt.Fprintln(p.w, headerStyle.Render("==> "+title))
}

func (p stylePrinter) Info(msg string) {
	fmt.Fprintln(p.w, infoStyle.Render(msg))
}

func (p stylePrinter) Success(msg string) {
	fmt.Fprintln(p.w, okStyle.Render("✓ "+msg))
}

func (p stylePrinter) Failure(msg string) {
	fmt.Fprintln(p.w, failStyle.Render("✗ "+msg))
}

func (p stylePrinter) Summary(title string, report *procexec.Report) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, headerStyle.Render(title))
	for _, o := range report.Outcomes() {
		if o.OK() {
			fmt.Fprintf(p.w, "  %s %s\n", okStyle.Render("✓"), o.Step)
			continue
		}
		fmt.Fprintf(p.w, "  %s %s %s\n", failStyle.Render("✗"), o.Step,
			infoStyle.Render(fmt.Sprintf("(exit %d)", o.ExitCode)))
	}
}
