// SPDX-License-Identifier: MPL-2.0

package procexec

// Result contains the outcome of a single Call.
type Result struct {
	// ExitCode is the exit status of the process.
	ExitCode ExitCode
	// Output is stdout when the call captured output.
	Output string
	// ErrOutput is stderr when the call captured output.
	ErrOutput string
	// Error is set when the process could not be started or was interrupted.
	// A plain non-zero exit leaves it nil.
	Error error
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Failed reports whether the call did not succeed.
func (r *Result) Failed() bool {
	return r.Error != nil || !r.ExitCode.IsSuccess()
}
