// SPDX-License-Identifier: MPL-2.0

package procexec

import (
	"errors"
	"testing"
)

func TestExitCodeNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value ExitCode
		want  ExitCode
	}{
		{name: "zero", value: 0, want: ExitSuccess},
		{name: "pytest usage error", value: 4, want: 4},
		{name: "not found", value: ExitNotFound, want: ExitNotFound},
		{name: "255", value: 255, want: 255},
		{name: "signal", value: -1, want: ExitFailure},
		{name: "windows status", value: 256, want: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.value.Normalize(); got != tt.want {
				t.Errorf("ExitCode(%d).Normalize() = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestExitCodeIsSuccess(t *testing.T) {
	t.Parallel()

	if !ExitSuccess.IsSuccess() {
		t.Error("ExitSuccess.IsSuccess() = false")
	}
	if ExitFailure.IsSuccess() {
		t.Error("ExitFailure.IsSuccess() = true")
	}
	if got := ExitCode(42).String(); got != "42" {
		t.Errorf("ExitCode(42).String() = %q", got)
	}
}

func TestCodeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		res  *Result
		err  error
		want ExitCode
	}{
		{"success", NewSuccessResult(), nil, 0},
		{"best effort failure", NewExitCodeResult(3), nil, 3},
		{"step error", NewExitCodeResult(5), &StepError{Step: "pytest", Code: 5}, 5},
		{"plain error", nil, errors.New("boom"), 1},
		{"nil everything", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CodeOf(tt.res, tt.err); got != tt.want {
				t.Errorf("CodeOf() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStepError(t *testing.T) {
	t.Parallel()

	exitOnly := &StepError{Step: "black", Argv: []string{"black", "app"}, Code: 1}
	if !errors.Is(exitOnly, ErrStepFailed) {
		t.Error("StepError should match ErrStepFailed")
	}
	if !IsExitOnly(exitOnly) {
		t.Error("IsExitOnly() = false for a plain non-zero exit")
	}
	if want := "black: exited with code 1 (black app)"; exitOnly.Error() != want {
		t.Errorf("Error() = %q, want %q", exitOnly.Error(), want)
	}

	cause := errors.New("not found")
	startFailure := &StepError{Step: "sam", Code: ExitNotFound, Cause: cause}
	if IsExitOnly(startFailure) {
		t.Error("IsExitOnly() = true for a start failure")
	}
	if !errors.Is(startFailure, cause) {
		t.Error("StepError should unwrap to its cause")
	}
}
