// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"context"
	"fmt"
	"os"

	"github.com/docextract/devcmd/internal/dispatch"
	"github.com/docextract/devcmd/internal/issue"
	"github.com/docextract/devcmd/internal/procexec"
)

const venvDir = ".venv"

// fallbackEnvFile is written by setup when there is neither a .env nor a template.
const fallbackEnvFile = `# Local environment for devcmd build, invoke and deploy.
# One KEY=VALUE per line; lines starting with # are ignored.
AWS_REGION=us-west-2
# S3_BUCKET_NAME=
# OPENAI_API_KEY=
`

// SetupSpec declares the setup command.
var SetupSpec = dispatch.CommandSpec{
	Name:  "setup",
	Short: "Create the virtual environment and install the project",
	Long: `Create .venv, install the project (editable, falling back to a regular
install), install the dev extras, create .env and install the git hooks.

A failed dev-extras install stops setup with an error. Other failed steps are
reported in the summary.`,
	Options: []dispatch.OptionDecl{
		dispatch.Bool("no-hooks", "", "Do not install git hooks"),
	},
}

// Setup prepares a development checkout.
func (e *Env) Setup(ctx context.Context, inv *dispatch.Invocation) (procexec.ExitCode, error) {
	py := e.Config.Python
	pip := func(args ...string) procexec.Call {
		return procexec.Command(py, append([]string{"-m", "pip", "install"}, args...)...)
	}
	var report procexec.Report

	e.Out.Header("Creating virtual environment")
	e.tolerate(ctx, &report, procexec.Command(py, "-m", "venv", venvDir).Named("virtualenv"))

	e.Out.Header("Installing project")
	if o := e.tolerate(ctx, &report, pip("-e", ".").Named("editable install")); !o.OK() {
		e.Out.Info("Editable install failed, trying a regular install")
		e.tolerate(ctx, &report, pip(".").Named("regular install"))
	}

	e.Out.Header("Installing development dependencies")
	devDeps := pip("-e", ".[dev]").Named("dev dependencies")
	res, err := e.Runner.Run(ctx, e.inDir(devDeps))
	if o := report.Record(devDeps.Name(), res, err); !o.OK() {
		e.Out.Summary("Setup summary", &report)
		return procexec.ExitFailure, issue.NewErrorContext().
			WithOperation("install development dependencies").
			WithIssue(issue.DevDepsInstallFailedId).
			WithSuggestion(`Check that the project declares a "dev" extra`).
			Wrap(fmt.Errorf("%s exited with code %d", devDeps.String(), o.ExitCode)).
			BuildError()
	}

	report.Record("env file", nil, e.ensureEnvFile())

	if !inv.Bool("no-hooks") {
		code, err := e.installHooks(ctx)
		report.Record("git hooks", procexec.NewExitCodeResult(code), err)
	}

	e.Out.Summary("Setup summary", &report)
	e.Out.Success("Setup complete! Activate the environment with: source " + venvDir + "/bin/activate")
	return procexec.ExitSuccess, nil
}

// ensureEnvFile creates the .env file from the template, or a minimal one.
// An existing file is left alone.
func (e *Env) ensureEnvFile() error {
	target := e.Config.EnvFile
	if e.exists(target) {
		e.Out.Info(target + " already exists, leaving it unchanged")
		return nil
	}

	content := []byte(fallbackEnvFile)
	source := "defaults"
	if tmpl := e.Config.EnvTemplate; tmpl != "" && e.exists(tmpl) {
		data, err := os.ReadFile(e.path(tmpl))
		if err != nil {
			return issue.WrapWithContext(err, "read environment template", tmpl)
		}
		content, source = data, tmpl
	}

	if e.DryRun {
		e.Out.Info(fmt.Sprintf("Would create %s from %s", target, source))
		return nil
	}
	if err := os.WriteFile(e.path(target), content, 0o600); err != nil {
		return issue.WrapWithContext(err, "create environment file", target)
	}
	e.Out.Info(fmt.Sprintf("Created %s from %s, edit it with your settings", target, source))
	return nil
}
