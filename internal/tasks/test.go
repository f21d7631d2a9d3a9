// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"context"
	"strings"

	"github.com/docextract/devcmd/internal/dispatch"
	"github.com/docextract/devcmd/internal/procexec"
)

const testRunner = "pytest"

// TestSpec declares the test command.
var TestSpec = dispatch.CommandSpec{
	Name:  "test",
	Short: "Run the test suite with pytest",
	Long: `Run pytest.

Exactly one suite runs, chosen by the first matching flag:
  --smoke-test        tests/smoke with -m e2e
  --integration-only  tests/integration with -m integration
  --path PATH         only PATH
  (none)              tests without integration and e2e markers

-v/--verbose here is pytest's verbosity and takes the place of devcmd's global
--verbose; use --log-level debug for devcmd's own diagnostics.`,
	Example: `  devcmd test -c
  devcmd test --path tests/unit/test_upload.py -v`,
	Options: []dispatch.OptionDecl{
		dispatch.Bool("coverage", "c", "Collect coverage and write an HTML report"),
		dispatch.Bool("verbose", "v", "Verbose pytest output"),
		dispatch.String("path", "", "", "Run only the tests under this path"),
		dispatch.Bool("no-integration", "", "Skip integration tests").Inert(),
		dispatch.Bool("integration-only", "", "Run only the integration suite"),
		dispatch.Bool("smoke-test", "", "Run only the smoke suite against a deployed endpoint"),
	},
}

// TestCall returns the single pytest call selected by inv.
func (e *Env) TestCall(inv *dispatch.Invocation) procexec.Call {
	cfg := e.Config.Test

	var args []string
	label := "unit tests"
	withCoverage := inv.Bool("coverage")
	switch {
	case inv.Bool("smoke-test"):
		label = "smoke tests"
		args = []string{cfg.SmokeDir, "-m", "e2e"}
		withCoverage = false
	case inv.Bool("integration-only"):
		label = "integration tests"
		args = []string{cfg.IntegrationDir, "-m", "integration"}
		withCoverage = false
	case inv.String("path") != "":
		label = "tests in " + inv.String("path")
		args = []string{inv.String("path")}
	default:
		args = []string{cfg.Dir, "-m", "not integration and not e2e"}
	}

	if inv.Bool("verbose") {
		args = append(args, "-v")
	}
	if withCoverage {
		for _, pkg := range cfg.CoveragePackages {
			args = append(args, "--cov="+pkg)
		}
		args = append(args, "--cov-report=term-missing", "--cov-report=html")
	}
	return procexec.Command(testRunner, args...).Named(label)
}

// Test runs one pytest invocation and returns its exit code.
func (e *Env) Test(ctx context.Context, inv *dispatch.Invocation) (procexec.ExitCode, error) {
	call := e.TestCall(inv)
	e.Out.Header("Running " + call.Name())

	code, err := e.run(ctx, call)
	if err != nil || !code.IsSuccess() {
		return code, err
	}

	if inv.Bool("coverage") && isDefaultSuite(inv) {
		e.Out.Info("Coverage report: " + e.Config.Test.CoverageReport)
	}
	e.Out.Success(strings.ToUpper(call.Name()[:1]) + call.Name()[1:] + " passed")
	return code, nil
}

func isDefaultSuite(inv *dispatch.Invocation) bool {
	return !inv.Bool("smoke-test") && !inv.Bool("integration-only") && inv.String("path") == ""
}
