// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/docextract/devcmd/internal/procexec"
)

// RecordingRunner is a procexec.Runner that records calls instead of running them.
//
// Responses are keyed by step: a key matches a call when it equals the call's
// Label, or its Program when no label matched. Unmatched calls succeed.
type RecordingRunner struct {
	mu      sync.Mutex
	calls   []procexec.Call
	codes   map[string]procexec.ExitCode
	outputs map[string]string
	absent  map[string]bool
	missing map[string]bool
	onRun   func(procexec.Call)
}

var _ procexec.Runner = (*RecordingRunner)(nil)

// NewRecordingRunner returns a runner where every call succeeds and every
// program is on PATH.
func NewRecordingRunner() *RecordingRunner {
	return &RecordingRunner{
		codes:   make(map[string]procexec.ExitCode),
		outputs: make(map[string]string),
		absent:  make(map[string]bool),
		missing: make(map[string]bool),
	}
}

// Fail makes calls matching key exit with code.
func (r *RecordingRunner) Fail(key string, code procexec.ExitCode) *RecordingRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[key] = code
	return r
}

// Output sets the captured stdout returned for calls matching key.
func (r *RecordingRunner) Output(key, out string) *RecordingRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outputs[key] = out
	return r
}

// Absent makes LookPath fail for programs. Calls to them still succeed.
func (r *RecordingRunner) Absent(programs ...string) *RecordingRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range programs {
		r.absent[p] = true
	}
	return r
}

// Missing makes programs unavailable: LookPath fails and calls fail to start
// with exit code 127.
func (r *RecordingRunner) Missing(programs ...string) *RecordingRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range programs {
		r.absent[p] = true
		r.missing[p] = true
	}
	return r
}

// OnRun registers fn to be called with every recorded call before it returns.
func (r *RecordingRunner) OnRun(fn func(procexec.Call)) *RecordingRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onRun = fn
	return r
}

// Run records call and returns the scripted result.
func (r *RecordingRunner) Run(_ context.Context, call procexec.Call) (*procexec.Result, error) {
	if err := call.Validate(); err != nil {
		return procexec.NewErrorResult(procexec.ExitFailure, err),
			&procexec.StepError{Step: call.Name(), Argv: call.Argv(), Code: procexec.ExitFailure, Cause: err}
	}

	r.mu.Lock()
	r.calls = append(r.calls, call)
	code, hasCode := r.lookupCode(call)
	out := r.lookupOutput(call)
	missing := r.missing[call.Program]
	onRun := r.onRun
	r.mu.Unlock()

	if onRun != nil {
		onRun(call)
	}

	res := procexec.NewSuccessResult()
	if call.Capture {
		res.Output = out
	}
	switch {
	case missing:
		res.ExitCode = procexec.ExitNotFound
		res.Error = fmt.Errorf("%s not found in PATH: %w", call.Program, exec.ErrNotFound)
	case hasCode:
		res.ExitCode = code
	}
	return procexec.Settle(call, res)
}

// LookPath reports programs as installed under /usr/bin unless marked Absent.
func (r *RecordingRunner) LookPath(program string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.absent[program] {
		return "", &exec.Error{Name: program, Err: exec.ErrNotFound}
	}
	return "/usr/bin/" + program, nil
}

func (r *RecordingRunner) lookupCode(call procexec.Call) (procexec.ExitCode, bool) {
	if code, ok := r.codes[call.Label]; ok && call.Label != "" {
		return code, true
	}
	code, ok := r.codes[call.Program]
	return code, ok
}

func (r *RecordingRunner) lookupOutput(call procexec.Call) string {
	if out, ok := r.outputs[call.Label]; ok && call.Label != "" {
		return out
	}
	return r.outputs[call.Program]
}

// Calls returns the recorded calls in order.
func (r *RecordingRunner) Calls() []procexec.Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]procexec.Call(nil), r.calls...)
}

// Argvs returns the argv of every recorded call.
func (r *RecordingRunner) Argvs() [][]string {
	calls := r.Calls()
	out := make([][]string, len(calls))
	for i, c := range calls {
		out[i] = c.Argv()
	}
	return out
}

// Names returns the step name of every recorded call.
func (r *RecordingRunner) Names() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Name()
	}
	return out
}

// Find returns the first recorded call whose step name is name.
func (r *RecordingRunner) Find(name string) (procexec.Call, bool) {
	for _, c := range r.Calls() {
		if c.Name() == name {
			return c, true
		}
	}
	return procexec.Call{}, false
}
