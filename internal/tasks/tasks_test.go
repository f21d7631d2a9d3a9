// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docextract/devcmd/internal/config"
	"github.com/docextract/devcmd/internal/dispatch"
	"github.com/docextract/devcmd/internal/issue"
	"github.com/docextract/devcmd/internal/procexec"
	"github.com/docextract/devcmd/internal/testutil"
)

type fixture struct {
	env    *Env
	runner *testutil.RecordingRunner
	out    *bytes.Buffer
	vars   map[string]string
	dir    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		runner: testutil.NewRecordingRunner(),
		out:    &bytes.Buffer{},
		vars:   map[string]string{},
		dir:    t.TempDir(),
	}
	f.env = &Env{
		Config:  config.DefaultConfig(),
		Runner:  f.runner,
		Out:     TextPrinter{W: f.out},
		Getenv:  func(k string) string { return f.vars[k] },
		Setenv:  func(k, v string) error { f.vars[k] = v; return nil },
		WorkDir: f.dir,
		TempDir: t.TempDir(),
	}
	return f
}

func (f *fixture) file(t *testing.T, rel, content string) {
	t.Helper()
	testutil.MustWriteFile(t, filepath.Join(f.dir, rel), content)
}

// parse reads args into an Invocation through the flag set the CLI binds.
func parse(t *testing.T, spec dispatch.CommandSpec, args ...string) *dispatch.Invocation {
	t.Helper()
	fs := pflag.NewFlagSet(spec.Name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	spec.Bind(fs)
	require.NoError(t, fs.Parse(args))
	require.NoError(t, spec.CheckArgs(fs.Args()))
	inv, err := dispatch.FromFlags(spec, fs)
	require.NoError(t, err)
	return inv
}

func requireIssue(t *testing.T, err error, id issue.Id) *issue.ActionableError {
	t.Helper()
	var ae *issue.ActionableError
	require.True(t, errors.As(err, &ae), "want *issue.ActionableError, got %T: %v", err, err)
	assert.Equal(t, id, ae.Issue)
	return ae
}

func TestRegister(t *testing.T) {
	t.Parallel()

	r := dispatch.NewRegistry()
	Register(r, newFixture(t).env)

	assert.Equal(t,
		[]string{"lint", "test", "build", "invoke", "clean", "hooks", "setup", "deploy"},
		r.Names())
}

func TestRegister_DispatchByName(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	r := dispatch.NewRegistry()
	Register(r, f.env)

	c, err := r.Resolve("test")
	require.NoError(t, err)
	code, err := r.Run(context.Background(), c, parse(t, c.Spec, "--smoke-test"))
	require.NoError(t, err)
	assert.Equal(t, procexec.ExitSuccess, code)
	assert.Equal(t, [][]string{{"pytest", "tests/smoke", "-m", "e2e"}}, f.runner.Argvs())

	_, err = r.Resolve("pylint")
	require.ErrorIs(t, err, dispatch.ErrUnknownCommand)
	assert.Equal(t, issue.CommandNotFoundId, issue.IdOf(err))
}

func TestOverlay_Malformed(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.file(t, ".env", "A=1\nNOEQUALS\n")

	code, err := f.env.Build(context.Background(), parse(t, BuildSpec))

	assert.Equal(t, procexec.ExitFailure, code)
	requireIssue(t, err, issue.EnvFileMalformedId)
	assert.Empty(t, f.runner.Calls(), "no tool runs after a malformed overlay")
}

func TestOverlay_AppliedBeforeCalls(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.file(t, ".env", "# local\nA=1\n\nB=2\n#C=3\nAWS_REGION=eu-central-1\n")

	_, err := f.env.Build(context.Background(), parse(t, BuildSpec))
	require.NoError(t, err)

	assert.Equal(t, "1", f.vars["A"])
	assert.Equal(t, "2", f.vars["B"])
	assert.NotContains(t, f.vars, "C")
	assert.Equal(t, "eu-central-1", f.vars["AWS_DEFAULT_REGION"])
}

func TestRun_ToolNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.runner.Missing("pytest")

	code, err := f.env.Test(context.Background(), parse(t, TestSpec))

	assert.Equal(t, procexec.ExitNotFound, code)
	ae := requireIssue(t, err, issue.ToolNotFoundId)
	assert.Equal(t, "pytest", ae.Resource)
	assert.True(t, ae.HasSuggestions())
}
