// SPDX-License-Identifier: MPL-2.0

package procexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

const defaultScriptShell = "bash"

type (
	// Runner executes external process calls. Handlers depend on this interface
	// so tests can substitute a recording fake.
	Runner interface {
		// Run executes call and returns its Result. For Fatal calls a failed
		// outcome is also returned as a *StepError; BestEffort calls never
		// return an error.
		Run(ctx context.Context, call Call) (*Result, error)
		// LookPath reports where program would be found on PATH.
		LookPath(program string) (string, error)
	}

	// ExecRunner is the production Runner backed by os/exec.
	ExecRunner struct {
		// Stdin, Stdout and Stderr are the streams handed to non-capturing calls.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// Echo prints the command line before it runs. Defaults to "$ <line>" on Stdout.
		Echo func(line string)
		// DryRun echoes calls without executing them; every call succeeds.
		DryRun bool
		// ScriptShell runs Script calls on the host. Defaults to bash.
		ScriptShell string
		// VirtualShell runs Script calls with the embedded interpreter instead.
		VirtualShell bool
	}
)

// NewExecRunner creates an ExecRunner wired to the given streams.
func NewExecRunner(stdout, stderr io.Writer) *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}
}

// LookPath delegates to exec.LookPath.
func (r *ExecRunner) LookPath(program string) (string, error) {
	return exec.LookPath(program)
}

// Run executes call.
func (r *ExecRunner) Run(ctx context.Context, call Call) (*Result, error) {
	if err := call.Validate(); err != nil {
		return NewErrorResult(ExitFailure, err), &StepError{Step: call.Name(), Argv: call.Argv(), Code: ExitFailure, Cause: err}
	}

	display := call
	if call.Script && !r.VirtualShell {
		display = r.hostScriptCall(call)
	}
	r.echo(display.String())

	if r.DryRun {
		return NewSuccessResult(), nil
	}

	var res *Result
	if call.Script && r.VirtualShell {
		res = runVirtual(ctx, call, r.streams(call))
	} else {
		res = r.runHost(ctx, display)
	}
	return Settle(call, res)
}

func (r *ExecRunner) runHost(ctx context.Context, call Call) *Result {
	cmd := exec.CommandContext(ctx, call.Program, call.Args...)
	cmd.Dir = call.Dir
	if len(call.Env) > 0 {
		cmd.Env = append(os.Environ(), EnvToSlice(call.Env)...)
	}

	s := r.streams(call)
	cmd.Stdin = s.stdin
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr

	err := cmd.Run()
	res := s.result()
	if err == nil {
		return res
	}

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		// ExitCode is -1 when a signal killed the process.
		res.ExitCode = ExitCode(exitErr.ExitCode()).Normalize()
	case errors.Is(err, exec.ErrNotFound):
		res.ExitCode = ExitNotFound
		res.Error = fmt.Errorf("%s not found in PATH: %w", call.Program, err)
	default:
		res.ExitCode = ExitFailure
		res.Error = fmt.Errorf("failed to execute %s: %w", call.Program, err)
	}
	return res
}

// hostScriptCall rewrites a Script call into an invocation of the host shell.
func (r *ExecRunner) hostScriptCall(call Call) Call {
	shell := r.ScriptShell
	if shell == "" {
		shell = defaultScriptShell
	}
	out := call
	out.Program = shell
	out.Args = append([]string{call.Program}, call.Args...)
	out.Script = false
	if out.Label == "" {
		out.Label = call.Program
	}
	return out
}

func (r *ExecRunner) echo(line string) {
	if r.Echo != nil {
		r.Echo(line)
		return
	}
	if r.Stdout != nil {
		fmt.Fprintf(r.Stdout, "$ %s\n", line)
	}
}

// callStreams holds the stdio used for one call; buffers are set when capturing.
type callStreams struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	outBuf, errBuf *bytes.Buffer
}

func (r *ExecRunner) streams(call Call) callStreams {
	if call.Capture {
		var out, errOut bytes.Buffer
		return callStreams{stdout: &out, stderr: &errOut, outBuf: &out, errBuf: &errOut}
	}
	return callStreams{stdin: r.Stdin, stdout: r.Stdout, stderr: r.Stderr}
}

func (s callStreams) result() *Result {
	res := NewSuccessResult()
	if s.outBuf != nil {
		res.Output = s.outBuf.String()
	}
	if s.errBuf != nil {
		res.ErrOutput = s.errBuf.String()
	}
	return res
}

// Settle applies the call's policy to a finished result.
func Settle(call Call, res *Result) (*Result, error) {
	if !res.Failed() {
		return res, nil
	}
	if call.Policy == BestEffort {
		slog.Debug("best-effort step failed", "step", call.Name(), "exitCode", res.ExitCode, "error", res.Error)
		return res, nil
	}
	return res, &StepError{Step: call.Name(), Argv: call.Argv(), Code: res.ExitCode, Cause: res.Error}
}
