// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/docextract/devcmd/internal/procexec"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
// An ExitError without Err is silent: the tool that failed already reported why.
type ExitError struct {
	Code procexec.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitFor converts a handler result into the error returned from RunE.
func exitFor(code procexec.ExitCode, err error) error {
	code = code.Normalize()
	switch {
	case err != nil:
		if code.IsSuccess() {
			code = procexec.ExitFailure
		}
		return &ExitError{Code: code, Err: err}
	case !code.IsSuccess():
		return &ExitError{Code: code}
	default:
		return nil
	}
}
