// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/docextract/devcmd/internal/config"
	"github.com/docextract/devcmd/internal/dispatch"
	"github.com/docextract/devcmd/internal/envfile"
	"github.com/docextract/devcmd/internal/issue"
	"github.com/docextract/devcmd/internal/procexec"
)

type (
	// Printer writes the user-facing progress lines of a handler.
	Printer interface {
		Header(title string)
		Info(msg string)
		Success(msg string)
		Failure(msg string)
		Summary(title string, report *procexec.Report)
	}

	// BucketVerifier checks that a deployment bucket is reachable.
	BucketVerifier interface {
		VerifyBucket(ctx context.Context, bucket string) error
	}

	// BucketVerifierFactory builds a BucketVerifier for a region.
	BucketVerifierFactory func(ctx context.Context, region string) (BucketVerifier, error)

	// Env is everything a handler needs from the outside world.
	Env struct {
		Config *config.Config
		Runner procexec.Runner
		Out    Printer
		// Getenv and Setenv access the process environment. Nil means os.Getenv / os.Setenv.
		Getenv func(string) string
		Setenv envfile.SetenvFunc
		// WorkDir resolves relative project paths. Empty means the working directory.
		WorkDir string
		// TempDir holds the transient invoke env file. Empty means os.TempDir().
		TempDir string
		// Buckets is used when deploy.verify_bucket is set.
		Buckets BucketVerifierFactory
		// DryRun makes handlers report the files they would write instead of
		// writing them. The Runner handles commands on its own.
		DryRun bool
	}
)

// Register adds every handler to r, in the order they appear in help output.
func Register(r *dispatch.Registry, env *Env) {
	r.Register(LintSpec, dispatch.HandlerFunc(env.Lint))
	r.Register(TestSpec, dispatch.HandlerFunc(env.Test))
	r.Register(BuildSpec, dispatch.HandlerFunc(env.Build))
	r.Register(InvokeSpec, dispatch.HandlerFunc(env.Invoke))
	r.Register(CleanSpec, dispatch.HandlerFunc(env.Clean))
	r.Register(HooksSpec, dispatch.HandlerFunc(env.Hooks))
	r.Register(SetupSpec, dispatch.HandlerFunc(env.Setup))
	r.Register(DeploySpec, dispatch.HandlerFunc(env.Deploy))
}

func (e *Env) getenv(key string) string {
	if e.Getenv != nil {
		return e.Getenv(key)
	}
	return os.Getenv(key)
}

func (e *Env) setenv(key, value string) error {
	if e.Setenv != nil {
		return e.Setenv(key, value)
	}
	return os.Setenv(key, value)
}

// path resolves p against WorkDir.
func (e *Env) path(p string) string {
	if e.WorkDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(e.WorkDir, p)
}

func (e *Env) exists(p string) bool {
	_, err := os.Stat(e.path(p))
	return err == nil
}

// inDir returns call with Dir set to WorkDir when it has none.
func (e *Env) inDir(call procexec.Call) procexec.Call {
	if call.Dir == "" {
		call.Dir = e.WorkDir
	}
	return call
}

// run executes a Fatal call and converts the outcome into a handler result:
// a plain non-zero exit becomes the returned code with a nil error, while a
// process that could not start becomes an actionable error.
func (e *Env) run(ctx context.Context, call procexec.Call) (procexec.ExitCode, error) {
	res, err := e.Runner.Run(ctx, e.inDir(call))
	code := procexec.CodeOf(res, err)
	if err == nil || procexec.IsExitOnly(err) {
		return code, nil
	}
	return code, startError(call, err)
}

// tolerate executes call as a BestEffort step and records it in report.
func (e *Env) tolerate(ctx context.Context, report *procexec.Report, call procexec.Call) procexec.Outcome {
	res, err := e.Runner.Run(ctx, e.inDir(call.Tolerant()))
	return report.Record(call.Name(), res, err)
}

// loadOverlay applies the .env overlay to the process environment.
func (e *Env) loadOverlay() error {
	path := e.path(e.Config.EnvFile)
	overlay, err := envfile.Load(path)
	if err != nil {
		ctx := issue.NewErrorContext().
			WithOperation("load environment overlay").
			WithResource(path).
			Wrap(err)
		if errors.Is(err, envfile.ErrMalformedLine) || errors.Is(err, envfile.ErrEmptyKey) {
			ctx = ctx.WithIssue(issue.EnvFileMalformedId).
				WithSuggestion("Use KEY=VALUE on every line that is not blank or a # comment")
		}
		return ctx.BuildError()
	}
	if err := overlay.Apply(e.setenv); err != nil {
		return issue.WrapWithContext(err, "apply environment overlay", path)
	}
	return nil
}

func startError(call procexec.Call, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("run " + call.Name()).
		Wrap(err)
	if errors.Is(err, exec.ErrNotFound) {
		ctx = ctx.WithIssue(issue.ToolNotFoundId).
			WithResource(call.Program).
			WithSuggestion(fmt.Sprintf("Install %s or activate the project's virtual environment", call.Program))
	}
	return ctx.BuildError()
}

// TextPrinter is a Printer that writes undecorated lines.
type TextPrinter struct {
	W io.Writer
}

// Header prints a step header.
func (p TextPrinter) Header(title string) { fmt.Fprintf(p.W, "==> %s\n", title) }

// Info prints a plain line.
func (p TextPrinter) Info(msg string) { fmt.Fprintln(p.W, msg) }

// Success prints a success banner.
func (p TextPrinter) Success(msg string) { fmt.Fprintf(p.W, "OK %s\n", msg) }

// Failure prints a failure banner.
func (p TextPrinter) Failure(msg string) { fmt.Fprintf(p.W, "FAIL %s\n", msg) }

// Summary prints one line per recorded step.
func (p TextPrinter) Summary(title string, report *procexec.Report) {
	fmt.Fprintf(p.W, "%s:\n", title)
	for _, o := range report.Outcomes() {
		status := "ok"
		if !o.OK() {
			status = fmt.Sprintf("failed (exit %d)", o.ExitCode)
		}
		fmt.Fprintf(p.W, "  %-20s %s\n", o.Step, status)
	}
}
