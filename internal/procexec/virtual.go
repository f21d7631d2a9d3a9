// SPDX-License-Identifier: MPL-2.0

package procexec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// runVirtual executes a Script call with the embedded mvdan/sh interpreter.
// External programs referenced by the script are still resolved from PATH.
func runVirtual(ctx context.Context, call Call, s callStreams) *Result {
	path := call.Program
	if call.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(call.Dir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return NewErrorResult(ExitNotFound, fmt.Errorf("failed to open script: %w", err))
	}
	defer func() { _ = f.Close() }() // Read-only file; close error non-critical

	prog, err := syntax.NewParser().Parse(f, call.Program)
	if err != nil {
		return NewErrorResult(ExitFailure, fmt.Errorf("failed to parse script: %w", err))
	}

	env := append(os.Environ(), EnvToSlice(call.Env)...)
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(s.stdin, s.stdout, s.stderr),
	}
	if call.Dir != "" {
		opts = append(opts, interp.Dir(call.Dir))
	}
	// "--" keeps flag-like arguments from being parsed as shell options.
	if len(call.Args) > 0 {
		opts = append(opts, interp.Params(append([]string{"--"}, call.Args...)...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return NewErrorResult(ExitFailure, fmt.Errorf("failed to create interpreter: %w", err))
	}

	res := NewSuccessResult()
	err = runner.Run(ctx, prog)
	if call.Capture {
		out := s.result()
		res.Output, res.ErrOutput = out.Output, out.ErrOutput
	}
	if err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			res.ExitCode = ExitCode(exitStatus)
			return res
		}
		res.ExitCode = ExitFailure
		res.Error = fmt.Errorf("script execution failed: %w", err)
	}
	return res
}
