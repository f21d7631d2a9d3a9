// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/docextract/devcmd/internal/dispatch"
	"github.com/docextract/devcmd/internal/issue"
	"github.com/docextract/devcmd/internal/procexec"
	"github.com/docextract/devcmd/internal/samtemplate"
)

// dryRunEnvVars stands in for the env-vars path in dry-run output.
const dryRunEnvVars = "<env-vars.json>"

// InvokeSpec declares the invoke command.
var InvokeSpec = dispatch.CommandSpec{
	Name:  "invoke",
	Short: "Build and invoke the function locally with 'sam local invoke'",
	Long: `Build the application, then invoke the function locally with the given
event. The function environment is written to a temporary JSON file that is
removed when the command finishes.

When --event is not given and events/test-event.json does not exist, a sample
API Gateway event is written there first. With --dry-run neither file is
written.`,
	Options: []dispatch.OptionDecl{
		dispatch.String("event", "e", DefaultEventPath, "Event file passed to the function"),
	},
}

// Invoke builds, writes the env-vars file and runs sam local invoke.
func (e *Env) Invoke(ctx context.Context, inv *dispatch.Invocation) (procexec.ExitCode, error) {
	if err := e.loadOverlay(); err != nil {
		return procexec.ExitFailure, err
	}

	fn := e.Config.SAM.FunctionName
	event := inv.String("event")
	if event == DefaultEventPath && !e.exists(event) {
		if e.DryRun {
			e.Out.Info("Would create sample event " + event)
		} else {
			if err := WriteSampleEvent(e.path(event), "local", time.Now()); err != nil {
				return procexec.ExitFailure, issue.WrapWithContext(err, "create sample event", event)
			}
			e.Out.Info("Created sample event " + event)
		}
	}
	e.warnUndeclared(fn)

	if code, err := e.build(ctx); err != nil || !code.IsSuccess() {
		return code, err
	}

	envFile, remove, err := e.functionEnvFile(fn)
	if err != nil {
		return procexec.ExitFailure, err
	}
	defer remove()

	e.Out.Header("Invoking " + fn)
	return e.run(ctx, procexec.Command(samCLI, "local", "invoke", fn,
		"--event", event,
		"--env-vars", envFile,
	).Named("sam local invoke"))
}

// functionEnvFile provides the env-vars file for fn and a func that removes it.
// In dry-run mode nothing is written and a placeholder path is returned.
func (e *Env) functionEnvFile(fn string) (string, func(), error) {
	if e.DryRun {
		e.Out.Info("Would write the function environment to a temporary env-vars file")
		return dryRunEnvVars, func() {}, nil
	}
	path, err := e.writeFunctionEnv(fn)
	if err != nil {
		return "", nil, err
	}
	return path, func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to remove env vars file", "path", path, "error", err)
		}
	}, nil
}

// writeFunctionEnv writes {"<fn>": {...}} to a new temporary file and returns its path.
func (e *Env) writeFunctionEnv(fn string) (string, error) {
	payload := map[string]map[string]string{
		fn: e.Config.SAM.EnvMap(e.getenv),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode env vars: %w", err)
	}

	f, err := os.CreateTemp(e.TempDir, "devcmd-env-*.json")
	if err != nil {
		return "", issue.WrapWithOperation(err, "create env vars file")
	}
	path := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", issue.WrapWithContext(err, "write env vars file", path)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", issue.WrapWithContext(err, "write env vars file", path)
	}
	return path, nil
}

// warnUndeclared logs when the template exists but does not declare fn.
func (e *Env) warnUndeclared(fn string) {
	tmpl, err := samtemplate.Load(e.path(e.Config.SAM.Template))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return
	case err != nil:
		slog.Warn("could not read SAM template", "error", err)
		return
	}
	if _, ok := tmpl.Function(fn); !ok {
		slog.Warn("function is not declared in the SAM template",
			"function", fn,
			"template", tmpl.Path,
			"declared", tmpl.FunctionNames())
	}
}
