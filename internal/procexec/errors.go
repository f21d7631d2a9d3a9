// SPDX-License-Identifier: MPL-2.0

package procexec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStepFailed is matched by every StepError via errors.Is.
var ErrStepFailed = errors.New("step failed")

// StepError reports a Fatal call that did not succeed. Cause is nil when the
// process ran and exited non-zero, and set when it could not run at all.
type StepError struct {
	Step  string
	Argv  []string
	Code  ExitCode
	Cause error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Step, e.Cause)
	}
	return fmt.Sprintf("%s: exited with code %d (%s)", e.Step, e.Code, strings.Join(e.Argv, " "))
}

// Is reports ErrStepFailed as a match.
func (e *StepError) Is(target error) bool { return target == ErrStepFailed }

// Unwrap returns the start failure, if any.
func (e *StepError) Unwrap() error { return e.Cause }

// CodeOf extracts the exit code of a Run outcome.
func CodeOf(res *Result, err error) ExitCode {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Code
	}
	if res != nil && !res.ExitCode.IsSuccess() {
		return res.ExitCode
	}
	if err != nil {
		return ExitFailure
	}
	return ExitSuccess
}

// IsExitOnly reports whether err is a StepError for a process that ran and
// exited non-zero. Such failures have already been reported by the tool itself.
func IsExitOnly(err error) bool {
	var stepErr *StepError
	return errors.As(err, &stepErr) && stepErr.Cause == nil
}
